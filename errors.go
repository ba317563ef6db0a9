package goqubo

import "errors"

// Errors surfaced at the package boundary. Construction errors
// (ErrDivideByZero, ErrInvalidExponent, ErrInvalidStrength) are returned by
// the expression factories and Compile; evaluation errors
// (ErrUnknownPlaceholder, ErrMissingVariable, ErrIndexOutOfRange) only
// appear when a compiled model is evaluated against placeholder bindings or
// a sample. ErrInternal marks invariant violations that well-formed input
// can never reach.
var (
	ErrDivideByZero       = errors.New("division by zero")
	ErrInvalidExponent    = errors.New("exponent should be a positive integer")
	ErrInvalidStrength    = errors.New("strength should be a positive number or a placeholder")
	ErrUnknownPlaceholder = errors.New("unknown placeholder")
	ErrMissingVariable    = errors.New("missing variable in sample")
	ErrIndexOutOfRange    = errors.New("variable index out of range")
	ErrInternal           = errors.New("internal invariant violation")
)
