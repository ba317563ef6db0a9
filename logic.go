package goqubo

// Logic gates over binary expressions. Each gate is an ordinary
// expression wrapped as UserDefined, so it composes with the rest of the
// algebra and expands transparently.

// Not returns 1 - bit, the logical negation of a binary expression.
func Not(bit Expression) Expression {
	return UserDefined(Sub(Num(1), bit))
}

// And returns bit_a * bit_b.
func And(bitA, bitB Expression) Expression {
	return UserDefined(Mul(bitA, bitB))
}

// Or returns the logical or, built as Not(And(Not(a), Not(b))).
func Or(bitA, bitB Expression) Expression {
	return UserDefined(Not(And(Not(bitA), Not(bitB))))
}

// Xor returns a + b - 2ab, which is 1 exactly when the inputs differ.
func Xor(bitA, bitB Expression) Expression {
	return UserDefined(Add(Add(bitA, bitB), MulNum(Mul(bitA, bitB), -2)))
}
