package goqubo

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned by the integer encoders when the value range
// is empty or inverted.
var ErrInvalidRange = errors.New("upper value should be larger than lower value")

// Integer is a bounded integer encoded over binary variables. Its
// expression is wrapped in a SubH named after the integer, so decoded
// samples report the integer's value under its label.
type Integer struct {
	Label string
	Lower int
	Upper int

	bits []Expression
	expr Expression
}

// Expression returns the encoded value as an expression usable in any
// Hamiltonian.
func (n *Integer) Expression() Expression { return n.expr }

// Bits returns the underlying binary variables, lowest position first.
// The returned slice must not be modified.
func (n *Integer) Bits() []Expression { return n.bits }

func bitLabel(label string, i int) string {
	return fmt.Sprintf("%s[%d]", label, i)
}

// LogEncInteger encodes a value in [lower, upper] in binary positional
// notation. The top bit's weight is clamped so that no assignment exceeds
// the range; no constraint is needed.
func LogEncInteger(label string, lower, upper int) (*Integer, error) {
	if upper <= lower {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lower, upper)
	}
	span := upper - lower
	n := 1
	for 1<<n <= span {
		n++
	}
	bits := make([]Expression, n)
	for i := range bits {
		bits[i] = Binary(bitLabel(label, i))
	}

	expr := Expression(Num(float64(lower)))
	for i := 0; i < n-1; i++ {
		expr = Add(expr, MulNum(bits[i], float64(int(1)<<i)))
	}
	top := span - (1<<(n-1) - 1)
	expr = Add(expr, MulNum(bits[n-1], float64(top)))

	return &Integer{
		Label: label,
		Lower: lower,
		Upper: upper,
		bits:  bits,
		expr:  SubH(expr, label),
	}, nil
}

// UnaryEncInteger encodes a value in [lower, upper] as lower plus a sum of
// upper-lower unweighted bits.
func UnaryEncInteger(label string, lower, upper int) (*Integer, error) {
	if upper <= lower {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lower, upper)
	}
	span := upper - lower
	bits := make([]Expression, span)
	for i := range bits {
		bits[i] = Binary(bitLabel(label, i))
	}

	expr := Expression(Num(float64(lower)))
	for _, bit := range bits {
		expr = Add(expr, bit)
	}

	return &Integer{
		Label: label,
		Lower: lower,
		Upper: upper,
		bits:  bits,
		expr:  SubH(expr, label),
	}, nil
}

// OneHotInteger is a one-hot encoded integer: exactly one of its bits is
// set in a feasible assignment, enforced by a penalty and reported through
// a companion constraint labelled "<label>_const".
type OneHotInteger struct {
	Integer
}

// OneHotEncInteger encodes a value in [lower, upper] one-hot. The penalty
// strength * (sum(bits) - 1)^2 joins the Hamiltonian through WithPenalty;
// strength must be a positive number or a placeholder, matching the
// compile strength rules.
func OneHotEncInteger(label string, lower, upper int, strength Expression) (*OneHotInteger, error) {
	if upper <= lower {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, lower, upper)
	}
	n := upper - lower + 1
	bits := make([]Expression, n)
	for i := range bits {
		bits[i] = Binary(bitLabel(label, i))
	}

	value := Expression(Num(float64(lower)))
	bitSum := Expression(Num(-1))
	for i, bit := range bits {
		value = Add(value, MulNum(bit, float64(i)))
		bitSum = Add(bitSum, bit)
	}

	oneHot, err := Pow(bitSum, 2)
	if err != nil {
		return nil, err
	}
	constraint := Constraint(oneHot, label+"_const", func(e float64) bool { return e == 0 })
	penalty := Mul(constraint, strength)

	return &OneHotInteger{Integer: Integer{
		Label: label,
		Lower: lower,
		Upper: upper,
		bits:  bits,
		expr:  WithPenalty(SubH(value, label), penalty, label),
	}}, nil
}

// EqualTo returns the bit that is set exactly when the integer's value is
// k. It only makes sense combined with the integer itself in a model.
func (n *OneHotInteger) EqualTo(k int) (Expression, error) {
	if k < n.Lower || k > n.Upper {
		return nil, fmt.Errorf("%w: value %d outside [%d, %d]", ErrInvalidRange, k, n.Lower, n.Upper)
	}
	return n.bits[k-n.Lower], nil
}
