package goqubo

import "fmt"

// CompileOptions configures a compile.
type CompileOptions struct {
	// Strength multiplies the AND penalties introduced during order
	// reduction. It must be a positive numeric coefficient or a
	// placeholder resolved to a positive value at evaluation time.
	Strength Coeff

	// Logger receives compile tracing. Defaults to a no-op logger.
	Logger Logger
}

// DefaultCompileOptions returns the default configuration: numeric
// strength 5 and no logging.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		Strength: NumCoeff(5),
		Logger:   NewNoopLogger(),
	}
}

// Compile expands the expression into a polynomial over binary variables,
// reduces it to degree at most two, and returns the compiled model.
// strength multiplies the reduction penalties and must be positive.
func Compile(expr Expression, strength float64) (*Model, error) {
	opts := DefaultCompileOptions()
	opts.Strength = NumCoeff(strength)
	return CompileWithOptions(expr, opts)
}

// CompilePlaceholderStrength compiles with a strength deferred to the
// named placeholder, to be supplied in the binding map at evaluation time.
func CompilePlaceholderStrength(expr Expression, label string) (*Model, error) {
	opts := DefaultCompileOptions()
	opts.Strength = PlaceholderCoeff(label)
	return CompileWithOptions(expr, opts)
}

// CompileWithOptions compiles with explicit options.
func CompileWithOptions(expr Expression, opts CompileOptions) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = NewNoopLogger()
	}
	if opts.Strength == nil {
		opts.Strength = NumCoeff(5)
	}
	if err := validateStrength(opts.Strength); err != nil {
		return nil, err
	}

	x := newExpander(opts.Logger)
	total := x.run(expr)

	quadratic, err := convertToQuadratic(total, opts.Strength, x.vars, opts.Logger)
	if err != nil {
		return nil, err
	}
	opts.Logger.Infof("compiled %d variables, %d quadratic terms", x.vars.Len(), quadratic.size())

	return &Model{
		quadratic:   quadratic,
		subHs:       x.subHs,
		constraints: x.constraints,
		vars:        x.vars,
	}, nil
}

// validateStrength accepts a positive numeric literal or a placeholder. A
// zero or negative strength would make the AND penalty vacuous and admit
// infeasible auxiliary assignments.
func validateStrength(strength Coeff) error {
	switch c := strength.(type) {
	case *numCoeff:
		if c.value <= 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidStrength, c.value)
		}
		return nil
	case *placeholderCoeff:
		return nil
	default:
		return fmt.Errorf("%w: got a composite coefficient", ErrInvalidStrength)
	}
}
