package eigen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidComponentCount indicates k outside 1..D.
	ErrInvalidComponentCount = errors.New("eigen: component count must be in 1..D")

	// ErrConvergenceFailure indicates that power iteration hit the iteration
	// cap or collapsed onto a zero vector.
	ErrConvergenceFailure = errors.New("eigen: power iteration did not converge")
)

// ConvergenceError carries the details of a failed power iteration.
// It matches ErrConvergenceFailure via errors.Is, and also its Cause when set
// (matrix.ErrZeroNorm for a collapsed iterate).
type ConvergenceError struct {
	Component   int     // zero-based index of the eigenpair being extracted
	Iterations  int     // iterations performed before giving up
	Correlation float64 // last |wPrev·w| observed (0 when degenerate)
	Degenerate  bool    // Rw·w had zero norm (zero or rank-deficient matrix)
	Cause       error   // underlying error, if any
}

func (e *ConvergenceError) Error() string {
	if e.Degenerate {
		return fmt.Sprintf("eigen: component %d collapsed to a zero vector after %d iterations: %v",
			e.Component, e.Iterations, e.Cause)
	}

	return fmt.Sprintf("eigen: component %d not converged after %d iterations (|corr|=%.12f)",
		e.Component, e.Iterations, e.Correlation)
}

// Unwrap exposes both the package sentinel and the underlying cause.
func (e *ConvergenceError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConvergenceFailure, e.Cause}
	}

	return []error{ErrConvergenceFailure}
}
