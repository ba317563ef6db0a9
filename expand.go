package goqubo

import "fmt"

type compiledConstraint struct {
	poly      *poly
	condition func(float64) bool
}

// expander lowers an expression tree to a polynomial over binary
// variables. It owns the variable table for the compile and collects the
// side tables: sub-Hamiltonian polynomials, constraint polynomials with
// their predicates, and labelled penalty polynomials.
type expander struct {
	vars         *VariableTable
	subHs        map[string]*poly
	constraints  map[string]compiledConstraint
	penalties    map[string]*poly
	penaltyOrder []string
	logger       Logger
}

func newExpander(logger Logger) *expander {
	return &expander{
		vars:        newVariableTable(),
		subHs:       make(map[string]*poly),
		constraints: make(map[string]compiledConstraint),
		penalties:   make(map[string]*poly),
		logger:      logger,
	}
}

// run expands the expression and returns the total polynomial: the main
// expansion plus all accumulated penalties, each labelled penalty
// contributing exactly once.
func (x *expander) run(e Expression) *poly {
	main, penalty := x.expand(e)
	total := addPoly(main, penalty)
	for _, label := range x.penaltyOrder {
		total = addPoly(total, x.penalties[label])
	}
	x.logger.Debugf("expanded to %d terms, %d sub-hamiltonians, %d constraints, %d penalties",
		total.size(), len(x.subHs), len(x.constraints), len(x.penaltyOrder))
	return total
}

// expand returns the polynomial of e together with a penalty polynomial
// summed over its children. A WithPenalty node's own penalty polynomial is
// not part of that result: it is recorded in x.penalties, once per label,
// and run adds it to the total. Penalties sum across additions and
// multiplications alike: they are summands of the final Hamiltonian, never
// factors.
func (x *expander) expand(e Expression) (*poly, *poly) {
	switch e := e.(type) {
	case *NumExpr:
		return newMonoPoly(NumCoeff(e.Value), emptyProduct), newZeroPoly()

	case *BinaryExpr:
		i := x.vars.Index(e.Label)
		return newMonoPoly(NumCoeff(1), productOf(i)), newZeroPoly()

	case *SpinExpr:
		// s = 2b - 1 over a binary variable with the same label.
		i := x.vars.Index(e.Label)
		p := newZeroPoly()
		p.fold(productOf(i), NumCoeff(2))
		p.fold(emptyProduct, NumCoeff(-1))
		return p, newZeroPoly()

	case *PlaceholderExpr:
		return newMonoPoly(PlaceholderCoeff(e.Label), emptyProduct), newZeroPoly()

	case *AddExpr:
		children := e.Children()
		main, penalty := x.expand(children[0])
		for _, child := range children[1:] {
			childMain, childPenalty := x.expand(child)
			main = addPoly(main, childMain)
			penalty = addPoly(penalty, childPenalty)
		}
		return main, penalty

	case *MulExpr:
		lMain, lPenalty := x.expand(e.Lhs)
		rMain, rPenalty := x.expand(e.Rhs)
		return mulPoly(lMain, rMain), addPoly(lPenalty, rPenalty)

	case *PowExpr:
		base, penalty := x.expand(e.Base)
		result := base.copy()
		for i := 1; i < e.Exponent; i++ {
			result = mulPoly(result, base)
		}
		return result, penalty

	case *SubHExpr:
		main, penalty := x.expand(e.Expr)
		x.subHs[e.Label] = main.copy()
		return main, penalty

	case *ConstraintExpr:
		main, penalty := x.expand(e.Expr)
		x.constraints[e.Label] = compiledConstraint{poly: main.copy(), condition: e.Condition}
		return main, penalty

	case *WithPenaltyExpr:
		main, penalty := x.expand(e.Expr)
		penaltyMain, penaltyPenalty := x.expand(e.Penalty)
		if _, seen := x.penalties[e.Label]; !seen {
			x.penalties[e.Label] = penaltyMain
			x.penaltyOrder = append(x.penaltyOrder, e.Label)
		}
		return main, addPoly(penalty, penaltyPenalty)

	case *UserDefinedExpr:
		return x.expand(e.Expr)

	default:
		// Unreachable for expressions built through this package's
		// constructors.
		panic(fmt.Sprintf("unknown expression kind %v", e.Kind()))
	}
}
