package ipca

import (
	"errors"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/matrix"
)

var (
	// ErrDimensionMismatch indicates a sample or reference vector whose
	// length differs from the estimator dimension, or a ragged batch.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrInvalidComponentCount indicates k outside 1..D.
	ErrInvalidComponentCount = eigen.ErrInvalidComponentCount

	// ErrConvergenceFailure indicates that the eigensolver gave up. The
	// concrete error is an *eigen.ConvergenceError.
	ErrConvergenceFailure = eigen.ErrConvergenceFailure

	// ErrInsufficientBatchSize indicates an initial batch with fewer than two rows.
	ErrInsufficientBatchSize = errors.New("ipca: initial batch needs at least two rows")

	// ErrInvalidWeight indicates an update weight outside (0, 1].
	ErrInvalidWeight = errors.New("ipca: update weight must be in (0, 1]")

	// ErrInvalidState indicates a State that cannot seed an estimator.
	ErrInvalidState = errors.New("ipca: invalid estimator state")
)
