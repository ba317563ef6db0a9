package goqubo

import (
	"errors"
	"testing"
)

func evalCoeff(t *testing.T, c Coeff, feed map[string]float64) float64 {
	t.Helper()
	v, err := newCoeffEvaluator(feed).evaluate(c)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCoeffNumericFolding(t *testing.T) {
	c := addCoeff(NumCoeff(1), NumCoeff(2))
	if c.CoeffKind() != CoeffNum || !c.CoeffEquals(NumCoeff(3)) {
		t.Errorf("numeric addition should fold, got %s", c.String())
	}
	c = mulCoeff(NumCoeff(2), NumCoeff(4))
	if !c.CoeffEquals(NumCoeff(8)) {
		t.Errorf("numeric multiplication should fold, got %s", c.String())
	}
	c = addCoeff(PlaceholderCoeff("k"), NumCoeff(0))
	if c.CoeffKind() != CoeffAdd {
		t.Error("symbolic operands must keep their structure")
	}
}

func TestCoeffCompositionality(t *testing.T) {
	feed := map[string]float64{"k": 3, "m": -2}
	a := addCoeff(PlaceholderCoeff("k"), NumCoeff(1))
	b := mulCoeff(PlaceholderCoeff("m"), NumCoeff(4))

	va := evalCoeff(t, a, feed)
	vb := evalCoeff(t, b, feed)
	if got := evalCoeff(t, mulCoeff(a, b), feed); got != va*vb {
		t.Errorf("evaluate(a*b) = %v, want %v", got, va*vb)
	}
	if got := evalCoeff(t, addCoeff(a, b), feed); got != va+vb {
		t.Errorf("evaluate(a+b) = %v, want %v", got, va+vb)
	}
}

func TestCoeffUnknownPlaceholder(t *testing.T) {
	_, err := newCoeffEvaluator(nil).evaluate(PlaceholderCoeff("missing"))
	if !errors.Is(err, ErrUnknownPlaceholder) {
		t.Errorf("expected ErrUnknownPlaceholder, got %v", err)
	}
}

func TestCoeffMulEqualityCommutes(t *testing.T) {
	k, n := PlaceholderCoeff("k"), NumCoeff(2)
	if !mulCoeff(k, n).CoeffEquals(mulCoeff(n, k)) {
		t.Error("coefficient multiplication equality is commutative")
	}
	if mulCoeff(k, n).CoeffEquals(addCoeff(k, n)) {
		t.Error("different kinds must differ")
	}
}

func TestCoeffPolyExpansionSharesWork(t *testing.T) {
	// (k + 1) * (k + 1) = k^2 + 2k + 1.
	kp := addCoeff(PlaceholderCoeff("k"), NumCoeff(1))
	sq := mulCoeff(kp, kp)
	p := expandCoeff(sq)
	if len(p) != 3 {
		t.Fatalf("expected 3 placeholder monomials, got %d", len(p))
	}
	v, err := p.evaluate(map[string]float64{"k": 3})
	if err != nil {
		t.Fatal(err)
	}
	if v != 16 {
		t.Errorf("(3+1)^2 = 16, got %v", v)
	}
}

func TestCoeffEvaluatorCaches(t *testing.T) {
	ev := newCoeffEvaluator(map[string]float64{"k": 2})
	c := mulCoeff(PlaceholderCoeff("k"), NumCoeff(3))
	if _, err := ev.evaluate(c); err != nil {
		t.Fatal(err)
	}
	if _, ok := ev.cache[c]; !ok {
		t.Error("evaluated coefficients should be memoized by identity")
	}
}
