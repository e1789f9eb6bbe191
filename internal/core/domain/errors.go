package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownComponent is returned when a component id is not in the Antoine table.
var ErrUnknownComponent = errors.New("unknown component")

// DomainError reports an input for which the property model is undefined
// (T = -C in Antoine's equation, a mole fraction outside [0, 1], ...).
type DomainError struct {
	Field  string
	Value  any
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// BracketingError reports that the closure residual does not change sign
// across [Lower, Upper].
type BracketingError struct {
	Lower  float64
	Upper  float64
	FLower float64
	FUpper float64
}

func (e *BracketingError) Error() string {
	return fmt.Sprintf("bracketing error: f(%g)=%g and f(%g)=%g have the same sign",
		e.Lower, e.FLower, e.Upper, e.FUpper)
}

// ConvergenceError reports that the solver ran out of iterations.
type ConvergenceError struct {
	MaxIter int
	Lower   float64
	Upper   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("convergence error: no root within tolerance after %d iterations, last bracket [%g, %g]",
		e.MaxIter, e.Lower, e.Upper)
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the solver.
func IsInputError(err error) bool {
	var de *DomainError
	return errors.As(err, &de) || errors.Is(err, ErrUnknownComponent)
}

// IsSolverError reports whether err came out of the equilibrium solver.
func IsSolverError(err error) bool {
	var be *BracketingError
	var ce *ConvergenceError
	return errors.As(err, &be) || errors.As(err, &ce)
}
