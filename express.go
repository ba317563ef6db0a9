package goqubo

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpressionKind tags the variants of the expression tree.
type ExpressionKind int

const (
	KindNum ExpressionKind = iota
	KindBinary
	KindSpin
	KindPlaceholder
	KindAdd
	KindMul
	KindPow
	KindSubH
	KindConstraint
	KindWithPenalty
	KindUserDefined
)

func (k ExpressionKind) String() string {
	switch k {
	case KindNum:
		return "num"
	case KindBinary:
		return "binary"
	case KindSpin:
		return "spin"
	case KindPlaceholder:
		return "placeholder"
	case KindAdd:
		return "add"
	case KindMul:
		return "mul"
	case KindPow:
		return "pow"
	case KindSubH:
		return "subh"
	case KindConstraint:
		return "constraint"
	case KindWithPenalty:
		return "with_penalty"
	case KindUserDefined:
		return "user_defined"
	default:
		panic(k)
	}
}

// Expression is a node of the Hamiltonian expression tree. Nodes are
// immutable after construction and may be shared freely between
// expressions; sharing forms a DAG, never a cycle.
type Expression interface {
	Kind() ExpressionKind
	String() string

	// Equals reports structural equality. Addition is position-sensitive:
	// a+b and b+a are different expressions.
	Equals(other Expression) bool
}

// NumExpr is a numeric literal.
type NumExpr struct {
	Value float64
}

// BinaryExpr is a binary {0,1} decision variable.
type BinaryExpr struct {
	Label string
}

// SpinExpr is a spin {-1,+1} decision variable. It expands to 2b-1 over a
// binary variable with the same label.
type SpinExpr struct {
	Label string
}

// PlaceholderExpr is a named scalar whose value is deferred until the
// compiled model is evaluated against bindings.
type PlaceholderExpr struct {
	Label string
}

// AddExpr is an n-ary sum. Children are kept in construction order; the
// slice is owned by the node and must not be modified.
type AddExpr struct {
	children []Expression
}

// MulExpr is a binary product.
type MulExpr struct {
	Lhs Expression
	Rhs Expression
}

// PowExpr raises an expression to a positive integer power. The factory
// guarantees Exponent >= 2.
type PowExpr struct {
	Base     Expression
	Exponent int
}

// SubHExpr labels a sub-expression whose energy is reported separately
// when samples are decoded. It does not change the algebraic value.
type SubHExpr struct {
	Expr  Expression
	Label string
}

// ConstraintExpr is a labelled sub-expression paired with a predicate on
// its energy. Equality ignores the predicate.
type ConstraintExpr struct {
	Expr      Expression
	Label     string
	Condition func(float64) bool
}

// WithPenaltyExpr attaches a penalty expression that is added to the total
// Hamiltonian before order reduction. Penalties are deduplicated by label:
// a label contributes at most once per compile however many times the node
// is reachable.
type WithPenaltyExpr struct {
	Expr    Expression
	Penalty Expression
	Label   string
}

// UserDefinedExpr wraps an expression without altering it. It exists so
// higher-level constructs (logic gates, integer encoders) can present a
// distinct type while expanding transparently.
type UserDefinedExpr struct {
	Expr Expression
}

// Num returns a numeric literal.
func Num(v float64) Expression { return &NumExpr{Value: v} }

// Binary returns a binary {0,1} variable with the given label.
func Binary(label string) Expression { return &BinaryExpr{Label: label} }

// Spin returns a spin {-1,+1} variable with the given label.
func Spin(label string) Expression { return &SpinExpr{Label: label} }

// Placeholder returns a deferred scalar parameter with the given label.
func Placeholder(label string) Expression { return &PlaceholderExpr{Label: label} }

// Add returns lhs + rhs. Two numeric literals fold eagerly; when lhs is
// already a sum, rhs is appended so that repeated addition stays cheap and
// keeps left-to-right order.
func Add(lhs, rhs Expression) Expression {
	if ln, ok := lhs.(*NumExpr); ok {
		if rn, ok := rhs.(*NumExpr); ok {
			return Num(ln.Value + rn.Value)
		}
	}
	if la, ok := lhs.(*AddExpr); ok {
		children := make([]Expression, len(la.children), len(la.children)+1)
		copy(children, la.children)
		return &AddExpr{children: append(children, rhs)}
	}
	return &AddExpr{children: []Expression{lhs, rhs}}
}

// AddNum returns e + v. Adding zero returns e unchanged.
func AddNum(e Expression, v float64) Expression {
	if v == 0 {
		return e
	}
	return Add(e, Num(v))
}

// Sum folds the expressions into a single sum, left to right.
func Sum(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return Num(0)
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = Add(result, e)
	}
	return result
}

// Mul returns lhs * rhs. Two numeric literals fold eagerly; no other
// simplification is performed, so symbolic subtrees keep their structure.
func Mul(lhs, rhs Expression) Expression {
	if ln, ok := lhs.(*NumExpr); ok {
		if rn, ok := rhs.(*NumExpr); ok {
			return Num(ln.Value * rn.Value)
		}
	}
	return &MulExpr{Lhs: lhs, Rhs: rhs}
}

// MulNum returns e * v, with the identities e*1 = e and e*0 = 0 applied at
// the numeric layer.
func MulNum(e Expression, v float64) Expression {
	if v == 1 {
		return e
	}
	if v == 0 {
		return Num(0)
	}
	return Mul(e, Num(v))
}

// Sub returns lhs - rhs.
func Sub(lhs, rhs Expression) Expression { return Add(lhs, Neg(rhs)) }

// SubNum returns e - v.
func SubNum(e Expression, v float64) Expression { return AddNum(e, -v) }

// Neg returns -e.
func Neg(e Expression) Expression { return MulNum(e, -1) }

// Div returns e / v. A zero divisor is a construction error.
func Div(e Expression, v float64) (Expression, error) {
	if v == 0 {
		return nil, ErrDivideByZero
	}
	return MulNum(e, 1/v), nil
}

// Pow returns e raised to the k-th power. The exponent must be a positive
// integer literal; k = 1 returns e itself.
func Pow(e Expression, k int) (Expression, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidExponent, k)
	}
	if k == 1 {
		return e, nil
	}
	return &PowExpr{Base: e, Exponent: k}, nil
}

// SubH labels expr as a sub-Hamiltonian.
func SubH(expr Expression, label string) Expression {
	return &SubHExpr{Expr: expr, Label: label}
}

// Constraint labels expr as a constraint whose energy must satisfy
// condition for a sample to count as feasible.
func Constraint(expr Expression, label string, condition func(float64) bool) Expression {
	return &ConstraintExpr{Expr: expr, Label: label, Condition: condition}
}

// WithPenalty pairs expr with a penalty added to the Hamiltonian before
// reduction. Repeated labels contribute the penalty only once.
func WithPenalty(expr, penalty Expression, label string) Expression {
	return &WithPenaltyExpr{Expr: expr, Penalty: penalty, Label: label}
}

// UserDefined wraps expr transparently.
func UserDefined(expr Expression) Expression {
	return &UserDefinedExpr{Expr: expr}
}

// Children returns the summands in construction order. The returned slice
// is the node's own storage and must not be modified.
func (e *AddExpr) Children() []Expression { return e.children }

func (e *NumExpr) Kind() ExpressionKind         { return KindNum }
func (e *BinaryExpr) Kind() ExpressionKind      { return KindBinary }
func (e *SpinExpr) Kind() ExpressionKind        { return KindSpin }
func (e *PlaceholderExpr) Kind() ExpressionKind { return KindPlaceholder }
func (e *AddExpr) Kind() ExpressionKind         { return KindAdd }
func (e *MulExpr) Kind() ExpressionKind         { return KindMul }
func (e *PowExpr) Kind() ExpressionKind         { return KindPow }
func (e *SubHExpr) Kind() ExpressionKind        { return KindSubH }
func (e *ConstraintExpr) Kind() ExpressionKind  { return KindConstraint }
func (e *WithPenaltyExpr) Kind() ExpressionKind { return KindWithPenalty }
func (e *UserDefinedExpr) Kind() ExpressionKind { return KindUserDefined }

func (e *NumExpr) String() string         { return formatNum(e.Value) }
func (e *BinaryExpr) String() string      { return "Binary('" + e.Label + "')" }
func (e *SpinExpr) String() string        { return "Spin('" + e.Label + "')" }
func (e *PlaceholderExpr) String() string { return "Placeholder('" + e.Label + "')" }

func (e *AddExpr) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, child := range e.children {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(child.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (e *MulExpr) String() string {
	return "(" + e.Lhs.String() + " * " + e.Rhs.String() + ")"
}

func (e *PowExpr) String() string {
	return "Pow(" + e.Base.String() + ", " + strconv.Itoa(e.Exponent) + ")"
}

func (e *SubHExpr) String() string {
	return "SubH(" + e.Expr.String() + ", '" + e.Label + "')"
}

func (e *ConstraintExpr) String() string {
	return "Constraint(" + e.Expr.String() + ", '" + e.Label + "')"
}

func (e *WithPenaltyExpr) String() string {
	return "WithPenalty(" + e.Expr.String() + ", " + e.Penalty.String() + ", '" + e.Label + "')"
}

func (e *UserDefinedExpr) String() string { return e.Expr.String() }

func (e *NumExpr) Equals(other Expression) bool {
	o, ok := other.(*NumExpr)
	return ok && (e == o || e.Value == o.Value)
}

func (e *BinaryExpr) Equals(other Expression) bool {
	o, ok := other.(*BinaryExpr)
	return ok && (e == o || e.Label == o.Label)
}

func (e *SpinExpr) Equals(other Expression) bool {
	o, ok := other.(*SpinExpr)
	return ok && (e == o || e.Label == o.Label)
}

func (e *PlaceholderExpr) Equals(other Expression) bool {
	o, ok := other.(*PlaceholderExpr)
	return ok && (e == o || e.Label == o.Label)
}

func (e *AddExpr) Equals(other Expression) bool {
	o, ok := other.(*AddExpr)
	if !ok {
		return false
	}
	if e == o {
		return true
	}
	if len(e.children) != len(o.children) {
		return false
	}
	for i, child := range e.children {
		if !child.Equals(o.children[i]) {
			return false
		}
	}
	return true
}

func (e *MulExpr) Equals(other Expression) bool {
	o, ok := other.(*MulExpr)
	if !ok {
		return false
	}
	return e == o || (e.Lhs.Equals(o.Lhs) && e.Rhs.Equals(o.Rhs))
}

func (e *PowExpr) Equals(other Expression) bool {
	o, ok := other.(*PowExpr)
	if !ok {
		return false
	}
	return e == o || (e.Exponent == o.Exponent && e.Base.Equals(o.Base))
}

func (e *SubHExpr) Equals(other Expression) bool {
	o, ok := other.(*SubHExpr)
	if !ok {
		return false
	}
	return e == o || (e.Label == o.Label && e.Expr.Equals(o.Expr))
}

func (e *ConstraintExpr) Equals(other Expression) bool {
	o, ok := other.(*ConstraintExpr)
	if !ok {
		return false
	}
	return e == o || (e.Label == o.Label && e.Expr.Equals(o.Expr))
}

func (e *WithPenaltyExpr) Equals(other Expression) bool {
	o, ok := other.(*WithPenaltyExpr)
	if !ok {
		return false
	}
	return e == o || (e.Label == o.Label && e.Expr.Equals(o.Expr) && e.Penalty.Equals(o.Penalty))
}

func (e *UserDefinedExpr) Equals(other Expression) bool {
	o, ok := other.(*UserDefinedExpr)
	if !ok {
		return false
	}
	return e == o || e.Expr.Equals(o.Expr)
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
