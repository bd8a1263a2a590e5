package ipca

import (
	"fmt"
	"math"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/matrix"
)

const opNewFromState = "NewFromState"

// State is a point-in-time copy of an estimator. It lets callers clone an
// estimator or hand it to another goroutine; it is not a persistence format.
type State struct {
	Count      int
	Mean       []float64
	Covariance *matrix.Dense
}

// Snapshot returns a deep copy of the estimator state.
func (e *Estimator) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	mean := make([]float64, len(e.mean))
	copy(mean, e.mean)

	return State{Count: e.count, Mean: mean, Covariance: e.cov.CloneDense()}
}

// NewFromState builds an estimator from s. The state is copied, so s stays
// owned by the caller. Options are not part of the state and must be passed
// again.
//
// Errors: ErrInvalidState (Count < 2, empty mean), ErrDimensionMismatch,
// matrix.ErrNaNInf, matrix.ErrAsymmetry (all wrapped with "NewFromState").
func NewFromState(s State, opts ...Option) (*Estimator, error) {
	if s.Count < 2 || len(s.Mean) == 0 {
		return nil, fmt.Errorf("%s: count=%d dim=%d: %w", opNewFromState, s.Count, len(s.Mean), ErrInvalidState)
	}
	if err := matrix.ValidateSquare(s.Covariance); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromState, err)
	}
	if s.Covariance.Rows() != len(s.Mean) {
		return nil, fmt.Errorf("%s: covariance %d×%d, mean %d: %w",
			opNewFromState, s.Covariance.Rows(), s.Covariance.Cols(), len(s.Mean), ErrDimensionMismatch)
	}
	if err := matrix.ValidateFinite(s.Mean); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromState, err)
	}
	scale, err := matrix.MaxAbs(s.Covariance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromState, err)
	}
	tol := eigen.DefaultSymmetryTolerance * math.Max(1, scale)
	if err = matrix.ValidateSymmetric(s.Covariance, tol); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromState, err)
	}

	mean := make([]float64, len(s.Mean))
	copy(mean, s.Mean)

	return assemble(s.Count, mean, s.Covariance.CloneDense(), gatherOptions(opts...)), nil
}
