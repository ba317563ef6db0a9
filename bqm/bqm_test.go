package bqm

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testModel() *Model[string] {
	return New(
		map[string]float64{"a": 1, "b": -2},
		map[Pair[string]]float64{{A: "a", B: "b"}: 4},
		0.5,
		Binary,
	)
}

func TestParseVartype(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Vartype
	}{
		{"BINARY", Binary}, {"binary", Binary}, {"SPIN", Spin}, {"spin", Spin},
	} {
		got, err := ParseVartype(tc.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("ParseVartype(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseVartype("ternary"); !errors.Is(err, ErrInvalidVartype) {
		t.Errorf("expected ErrInvalidVartype, got %v", err)
	}
}

func TestPairCanonicalOrder(t *testing.T) {
	if NewPair("b", "a") != (Pair[string]{A: "a", B: "b"}) {
		t.Error("pairs should be stored in canonical order")
	}
	m := New(nil, map[Pair[string]]float64{
		{A: "b", B: "a"}: 1,
		{A: "a", B: "b"}: 2,
	}, 0, Binary)
	if m.Quadratic[NewPair("a", "b")] != 3 {
		t.Errorf("duplicate interactions should fold, got %v", m.Quadratic)
	}
}

func TestEnergy(t *testing.T) {
	m := testModel()
	e, err := m.Energy(map[string]int{"a": 1, "b": 1})
	if err != nil {
		t.Fatal(err)
	}
	if e != 1-2+4+0.5 {
		t.Errorf("unexpected energy %v", e)
	}
	if _, err := m.Energy(map[string]int{"a": 1}); !errors.Is(err, ErrMissingVariable) {
		t.Errorf("expected ErrMissingVariable, got %v", err)
	}
}

func TestVariables(t *testing.T) {
	m := New(
		map[string]float64{"c": 1},
		map[Pair[string]]float64{{A: "a", B: "b"}: 1},
		0,
		Binary,
	)
	if diff := cmp.Diff([]string{"a", "b", "c"}, m.Variables()); diff != "" {
		t.Errorf("unexpected variables (-want +got):\n%s", diff)
	}
}

func TestVartypeRoundTrip(t *testing.T) {
	m := testModel()
	back := m.ChangeVartype(Spin).ChangeVartype(Binary)
	if diff := cmp.Diff(m.Linear, back.Linear); diff != "" {
		t.Errorf("linear changed in round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Quadratic, back.Quadratic); diff != "" {
		t.Errorf("quadratic changed in round trip (-want +got):\n%s", diff)
	}
	if m.Offset != back.Offset {
		t.Errorf("offset changed in round trip: %v vs %v", m.Offset, back.Offset)
	}
}

func TestVartypeConversionPreservesEnergy(t *testing.T) {
	m := testModel()
	s := m.ChangeVartype(Spin)
	for mask := 0; mask < 4; mask++ {
		binary := map[string]int{"a": mask & 1, "b": (mask >> 1) & 1}
		spin := ConvertSample(binary, Binary, Spin)
		eb, err := m.Energy(binary)
		if err != nil {
			t.Fatal(err)
		}
		es, err := s.Energy(spin)
		if err != nil {
			t.Fatal(err)
		}
		if eb != es {
			t.Errorf("assignment %02b: binary energy %v, spin energy %v", mask, eb, es)
		}
	}
}

func TestToQUBODiagonalCarriesLinear(t *testing.T) {
	q, offset := testModel().ToQUBO()
	want := map[Pair[string]]float64{
		{A: "a", B: "a"}: 1,
		{A: "b", B: "b"}: -2,
		{A: "a", B: "b"}: 4,
	}
	if diff := cmp.Diff(want, q); diff != "" {
		t.Errorf("unexpected QUBO (-want +got):\n%s", diff)
	}
	if offset != 0.5 {
		t.Errorf("expected offset 0.5, got %v", offset)
	}
}

func TestFromQUBO(t *testing.T) {
	q, offset := testModel().ToQUBO()
	m := FromQUBO(q, offset)
	if diff := cmp.Diff(testModel().Linear, m.Linear); diff != "" {
		t.Errorf("unexpected linear (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testModel().Quadratic, m.Quadratic); diff != "" {
		t.Errorf("unexpected quadratic (-want +got):\n%s", diff)
	}
}

func TestIsingRoundTrip(t *testing.T) {
	m := testModel()
	h, j, offset := m.ToIsing()
	back := FromIsing(h, j, offset).ChangeVartype(Binary)
	for mask := 0; mask < 4; mask++ {
		sample := map[string]int{"a": mask & 1, "b": (mask >> 1) & 1}
		e1, err := m.Energy(sample)
		if err != nil {
			t.Fatal(err)
		}
		e2, err := back.Energy(sample)
		if err != nil {
			t.Fatal(err)
		}
		if e1 != e2 {
			t.Errorf("assignment %02b: %v vs %v after round trip", mask, e1, e2)
		}
	}
}

func TestScale(t *testing.T) {
	m := testModel()
	m.Scale(2, ScaleOptions[string]{})
	if m.Linear["a"] != 2 || m.Linear["b"] != -4 {
		t.Errorf("unexpected linear after scale: %v", m.Linear)
	}
	if m.Quadratic[NewPair("a", "b")] != 8 {
		t.Errorf("unexpected quadratic after scale: %v", m.Quadratic)
	}
	if m.Offset != 1 {
		t.Errorf("unexpected offset after scale: %v", m.Offset)
	}
}

func TestScaleHonorsIgnoreLists(t *testing.T) {
	m := testModel()
	m.Scale(3, ScaleOptions[string]{
		IgnoredVariables:    []string{"a"},
		IgnoredInteractions: []Pair[string]{{A: "b", B: "a"}},
		IgnoreOffset:        true,
	})
	if m.Linear["a"] != 1 {
		t.Errorf("ignored variable was scaled: %v", m.Linear["a"])
	}
	if m.Linear["b"] != -6 {
		t.Errorf("unignored variable should scale: %v", m.Linear["b"])
	}
	if m.Quadratic[NewPair("a", "b")] != 4 {
		t.Errorf("ignored interaction was scaled: %v", m.Quadratic)
	}
	if m.Offset != 0.5 {
		t.Errorf("ignored offset was scaled: %v", m.Offset)
	}
}

func TestConvertSample(t *testing.T) {
	spin := map[string]int{"a": 1, "b": -1}
	binary := ConvertSample(spin, Spin, Binary)
	if binary["a"] != 1 || binary["b"] != 0 {
		t.Errorf("unexpected binary sample: %v", binary)
	}
	back := ConvertSample(binary, Binary, Spin)
	if diff := cmp.Diff(spin, back); diff != "" {
		t.Errorf("sample round trip failed (-want +got):\n%s", diff)
	}
}
