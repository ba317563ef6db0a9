// Package problem loads Hamiltonian descriptions from YAML and builds the
// corresponding expressions. A problem file lists polynomial terms plus
// optional sub-Hamiltonian, constraint and penalty groups; placeholders
// keep coefficients symbolic until evaluation.
package problem

import (
	"fmt"
	"io"
	"os"

	goqubo "github.com/ising-lab/goqubo"
	"gopkg.in/yaml.v3"
)

// Term is one monomial: an optional numeric coefficient (default 1), an
// optional placeholder multiplier, binary and spin variables, and an
// optional power applied to the whole term.
type Term struct {
	Coeff       *float64 `yaml:"coeff"`
	Placeholder string   `yaml:"placeholder"`
	Vars        []string `yaml:"vars"`
	Spins       []string `yaml:"spins"`
	Power       int      `yaml:"power"`
}

// SubHSpec labels a group of terms as a sub-Hamiltonian.
type SubHSpec struct {
	Label string `yaml:"label"`
	Terms []Term `yaml:"terms"`
}

// ConstraintSpec labels a group of terms as a constraint. Exactly one of
// Equals or AtMost selects the predicate; with neither set the constraint
// requires energy zero.
type ConstraintSpec struct {
	Label  string   `yaml:"label"`
	Terms  []Term   `yaml:"terms"`
	Equals *float64 `yaml:"equals"`
	AtMost *float64 `yaml:"at_most"`
}

// PenaltySpec pairs a group of terms with a penalty added to the
// Hamiltonian before order reduction.
type PenaltySpec struct {
	Label   string `yaml:"label"`
	Terms   []Term `yaml:"terms"`
	Penalty []Term `yaml:"penalty"`
}

// Problem is a full problem description.
type Problem struct {
	Strength            float64          `yaml:"strength"`
	StrengthPlaceholder string           `yaml:"strength_placeholder"`
	Terms               []Term           `yaml:"terms"`
	SubH                []SubHSpec       `yaml:"subh"`
	Constraints         []ConstraintSpec `yaml:"constraints"`
	Penalties           []PenaltySpec    `yaml:"penalties"`
}

// Load reads a problem description from r.
func Load(r io.Reader) (*Problem, error) {
	var p Problem
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("could not parse problem: %w", err)
	}
	return &p, nil
}

// LoadFile reads a problem description from the named file.
func LoadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Expression builds the Hamiltonian described by the problem.
func (p *Problem) Expression() (goqubo.Expression, error) {
	parts := make([]goqubo.Expression, 0, len(p.Terms)+len(p.SubH)+len(p.Constraints)+len(p.Penalties))

	if len(p.Terms) > 0 {
		e, err := sumTerms(p.Terms)
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	for _, s := range p.SubH {
		if s.Label == "" {
			return nil, fmt.Errorf("subh group needs a label")
		}
		e, err := sumTerms(s.Terms)
		if err != nil {
			return nil, err
		}
		parts = append(parts, goqubo.SubH(e, s.Label))
	}
	for _, c := range p.Constraints {
		if c.Label == "" {
			return nil, fmt.Errorf("constraint group needs a label")
		}
		e, err := sumTerms(c.Terms)
		if err != nil {
			return nil, err
		}
		parts = append(parts, goqubo.Constraint(e, c.Label, c.condition()))
	}
	for _, pen := range p.Penalties {
		if pen.Label == "" {
			return nil, fmt.Errorf("penalty group needs a label")
		}
		e, err := sumTerms(pen.Terms)
		if err != nil {
			return nil, err
		}
		pe, err := sumTerms(pen.Penalty)
		if err != nil {
			return nil, err
		}
		parts = append(parts, goqubo.WithPenalty(e, pe, pen.Label))
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("problem has no terms")
	}
	return goqubo.Sum(parts...), nil
}

// Options returns the compile options selected by the problem: the
// strength placeholder when named, the numeric strength when set, the
// package default otherwise.
func (p *Problem) Options() goqubo.CompileOptions {
	opts := goqubo.DefaultCompileOptions()
	if p.StrengthPlaceholder != "" {
		opts.Strength = goqubo.PlaceholderCoeff(p.StrengthPlaceholder)
	} else if p.Strength != 0 {
		opts.Strength = goqubo.NumCoeff(p.Strength)
	}
	return opts
}

// Compile builds the expression and compiles it with the problem's
// strength settings.
func (p *Problem) Compile() (*goqubo.Model, error) {
	expr, err := p.Expression()
	if err != nil {
		return nil, err
	}
	return goqubo.CompileWithOptions(expr, p.Options())
}

func (c ConstraintSpec) condition() func(float64) bool {
	switch {
	case c.Equals != nil:
		want := *c.Equals
		return func(e float64) bool { return e == want }
	case c.AtMost != nil:
		limit := *c.AtMost
		return func(e float64) bool { return e <= limit }
	default:
		return func(e float64) bool { return e == 0 }
	}
}

func sumTerms(terms []Term) (goqubo.Expression, error) {
	if len(terms) == 0 {
		return goqubo.Num(0), nil
	}
	parts := make([]goqubo.Expression, 0, len(terms))
	for _, t := range terms {
		e, err := t.expression()
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	return goqubo.Sum(parts...), nil
}

func (t Term) expression() (goqubo.Expression, error) {
	var factors []goqubo.Expression
	if t.Placeholder != "" {
		factors = append(factors, goqubo.Placeholder(t.Placeholder))
	}
	for _, v := range t.Vars {
		factors = append(factors, goqubo.Binary(v))
	}
	for _, s := range t.Spins {
		factors = append(factors, goqubo.Spin(s))
	}

	coeff := 1.0
	if t.Coeff != nil {
		coeff = *t.Coeff
	}

	var expr goqubo.Expression
	if len(factors) == 0 {
		expr = goqubo.Num(coeff)
	} else {
		expr = factors[0]
		for _, f := range factors[1:] {
			expr = goqubo.Mul(expr, f)
		}
		expr = goqubo.MulNum(expr, coeff)
	}

	if t.Power != 0 && t.Power != 1 {
		var err error
		expr, err = goqubo.Pow(expr, t.Power)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}
