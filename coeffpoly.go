package goqubo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// A coeffProd is the placeholder part of a coefficient monomial: a multiset
// of placeholder labels with positive integer exponents, kept sorted by
// label so that equal multisets share one canonical key.
type coeffProd struct {
	factors []coeffFactor
}

type coeffFactor struct {
	label string
	exp   int
}

func (p coeffProd) key() string {
	if len(p.factors) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range p.factors {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(f.label)
		if f.exp != 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(f.exp))
		}
	}
	return b.String()
}

func (p coeffProd) mul(q coeffProd) coeffProd {
	if len(p.factors) == 0 {
		return q
	}
	if len(q.factors) == 0 {
		return p
	}
	exps := make(map[string]int, len(p.factors)+len(q.factors))
	for _, f := range p.factors {
		exps[f.label] += f.exp
	}
	for _, f := range q.factors {
		exps[f.label] += f.exp
	}
	factors := make([]coeffFactor, 0, len(exps))
	for label, exp := range exps {
		factors = append(factors, coeffFactor{label: label, exp: exp})
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].label < factors[j].label })
	return coeffProd{factors: factors}
}

func (p coeffProd) evaluate(feed map[string]float64) (float64, error) {
	result := 1.0
	for _, f := range p.factors {
		v, ok := feed[f.label]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownPlaceholder, f.label)
		}
		result *= math.Pow(v, float64(f.exp))
	}
	return result, nil
}

// A coeffPoly is a coefficient expression expanded into a sparse sum of
// placeholder monomials. Expanding once and evaluating the flat form lets
// the same coefficient shared by many polynomial terms be collapsed
// without re-walking its tree.
type coeffPoly map[string]coeffPolyTerm

type coeffPolyTerm struct {
	prod  coeffProd
	value float64
}

func (p coeffPoly) add(prod coeffProd, value float64) {
	key := prod.key()
	if t, ok := p[key]; ok {
		p[key] = coeffPolyTerm{prod: prod, value: t.value + value}
	} else {
		p[key] = coeffPolyTerm{prod: prod, value: value}
	}
}

func (p coeffPoly) evaluate(feed map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range p {
		v, err := t.prod.evaluate(feed)
		if err != nil {
			return 0, err
		}
		sum += v * t.value
	}
	return sum, nil
}

func expandCoeff(c Coeff) coeffPoly {
	switch c := c.(type) {
	case *numCoeff:
		return coeffPoly{"": {value: c.value}}
	case *placeholderCoeff:
		prod := coeffProd{factors: []coeffFactor{{label: c.label, exp: 1}}}
		return coeffPoly{prod.key(): {prod: prod, value: 1}}
	case *addCoeffNode:
		result := expandCoeff(c.lhs)
		for _, t := range expandCoeff(c.rhs) {
			result.add(t.prod, t.value)
		}
		return result
	case *mulCoeffNode:
		lhs := expandCoeff(c.lhs)
		rhs := expandCoeff(c.rhs)
		result := make(coeffPoly, len(lhs)*len(rhs))
		for _, lt := range lhs {
			for _, rt := range rhs {
				result.add(lt.prod.mul(rt.prod), lt.value*rt.value)
			}
		}
		return result
	default:
		panic(fmt.Sprintf("unknown coefficient kind %v", c.CoeffKind()))
	}
}

// coeffEvaluator collapses coefficient expressions against a binding map,
// memoizing by node identity so shared coefficients are expanded once.
type coeffEvaluator struct {
	feed  map[string]float64
	cache map[Coeff]float64
}

func newCoeffEvaluator(feed map[string]float64) *coeffEvaluator {
	return &coeffEvaluator{feed: feed, cache: make(map[Coeff]float64)}
}

func (e *coeffEvaluator) evaluate(c Coeff) (float64, error) {
	if v, ok := e.cache[c]; ok {
		return v, nil
	}
	v, err := expandCoeff(c).evaluate(e.feed)
	if err != nil {
		return 0, err
	}
	e.cache[c] = v
	return v, nil
}
