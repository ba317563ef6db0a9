package problem

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	goqubo "github.com/ising-lab/goqubo"
	"github.com/ising-lab/goqubo/bqm"
)

const simpleProblem = `
strength: 5
terms:
  - vars: [a]
  - vars: [b]
  - coeff: 2
`

func TestLoadAndCompileSimpleProblem(t *testing.T) {
	p, err := Load(strings.NewReader(simpleProblem))
	if err != nil {
		t.Fatal(err)
	}
	model, err := p.Compile()
	if err != nil {
		t.Fatal(err)
	}
	q, offset, err := model.ToQUBO(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[bqm.Pair[string]]float64{
		{A: "a", B: "a"}: 1,
		{A: "b", B: "b"}: 1,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("unexpected QUBO (-want +got):\n%s", diff)
	}
	if offset != 2 {
		t.Errorf("expected offset 2, got %v", offset)
	}
}

func TestTermWithPowerAndPlaceholder(t *testing.T) {
	doc := `
terms:
  - vars: [a, b]
    coeff: 1
    power: 2
  - placeholder: k
    vars: [a]
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	model, err := p.Compile()
	if err != nil {
		t.Fatal(err)
	}
	q, _, err := model.ToQUBO(map[string]float64{"k": 3})
	if err != nil {
		t.Fatal(err)
	}
	// (ab)^2 = ab for binary variables, plus k*a on the diagonal.
	want := map[bqm.Pair[string]]float64{
		{A: "a", B: "b"}: 1,
		{A: "a", B: "a"}: 3,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("unexpected QUBO (-want +got):\n%s", diff)
	}
}

func TestSpinTerms(t *testing.T) {
	doc := `
terms:
  - spins: [s]
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	model, err := p.Compile()
	if err != nil {
		t.Fatal(err)
	}
	q, offset, err := model.ToQUBO(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[bqm.Pair[string]]float64{{A: "s", B: "s"}: 2}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("unexpected QUBO (-want +got):\n%s", diff)
	}
	if offset != -1 {
		t.Errorf("expected offset -1, got %v", offset)
	}
}

func TestConstraintGroups(t *testing.T) {
	doc := `
constraints:
  - label: one_hot
    equals: 0
    terms:
      - vars: [a]
      - vars: [b]
      - coeff: -1
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	model, err := p.Compile()
	if err != nil {
		t.Fatal(err)
	}
	sol, err := model.DecodeSample(map[string]int{"a": 1, "b": 1}, bqm.Binary, nil)
	if err != nil {
		t.Fatal(err)
	}
	broken := sol.Constraints(true)
	if state, ok := broken["one_hot"]; !ok || state.Energy != 1 {
		t.Errorf("expected one_hot broken with energy 1, got %v", sol.Constraints(false))
	}
}

func TestSubHAndPenaltyGroups(t *testing.T) {
	doc := `
strength_placeholder: gamma
subh:
  - label: s1
    terms:
      - vars: [a]
penalties:
  - label: chain
    terms:
      - vars: [a]
    penalty:
      - vars: [p]
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	expr, err := p.Expression()
	if err != nil {
		t.Fatal(err)
	}
	model, err := goqubo.CompileWithOptions(expr, p.Options())
	if err != nil {
		t.Fatal(err)
	}
	sol, err := model.DecodeSample(map[string]int{"a": 1, "p": 1}, bqm.Binary, nil)
	if err != nil {
		t.Fatal(err)
	}
	// a counts twice (the s1 group and the penalty group's terms) and the
	// penalty variable once.
	if sol.Energy != 3 {
		t.Errorf("expected energy 3, got %v", sol.Energy)
	}
	if sol.SubHEnergies["s1"] != 1 {
		t.Errorf("expected subh s1 = 1, got %v", sol.SubHEnergies)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	if _, err := Load(strings.NewReader("bogus: 1\n")); err == nil {
		t.Error("unknown fields should be rejected")
	}
}

func TestMissingLabelsRejected(t *testing.T) {
	doc := `
subh:
  - terms:
      - vars: [a]
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Expression(); err == nil {
		t.Error("unlabelled subh groups should be rejected")
	}
}

func TestEmptyProblemRejected(t *testing.T) {
	p := &Problem{}
	if _, err := p.Expression(); err == nil {
		t.Error("a problem without terms should be rejected")
	}
}

func TestInvalidPowerRejected(t *testing.T) {
	doc := `
terms:
  - vars: [a]
    power: -1
`
	p, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Expression(); !errors.Is(err, goqubo.ErrInvalidExponent) {
		t.Errorf("expected ErrInvalidExponent, got %v", err)
	}
}

func TestLoadBindingsAndSamples(t *testing.T) {
	feed, err := LoadBindings(strings.NewReader("k: 3.5\ngamma: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]float64{"k": 3.5, "gamma": 2}, feed); diff != "" {
		t.Errorf("unexpected bindings (-want +got):\n%s", diff)
	}

	samples, err := LoadSamples(strings.NewReader("samples:\n  - {a: 1, b: 0}\n  - {a: 0, b: 1}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if samples.Vartype != "BINARY" {
		t.Errorf("vartype should default to BINARY, got %q", samples.Vartype)
	}
	if len(samples.Samples) != 2 || samples.Samples[0]["a"] != 1 {
		t.Errorf("unexpected samples: %v", samples.Samples)
	}
}
