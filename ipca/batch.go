package ipca

import (
	"fmt"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/matrix"
)

const opPowerPCA = "PowerPCA"

// PowerPCA is the batch counterpart of an Estimator: it forms the sample
// covariance of all rows of X (÷ N−1) and extracts k eigenpairs from it.
// It returns the basis and the column means used for centring.
//
// Errors: ErrInsufficientBatchSize (fewer than two rows),
// ErrInvalidComponentCount, ErrConvergenceFailure, matrix.ErrNilMatrix.
func PowerPCA(X matrix.Matrix, k int, opts ...eigen.Option) (*eigen.Basis, []float64, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opPowerPCA, err)
	}
	if X.Rows() < 2 {
		return nil, nil, fmt.Errorf("%s: %d rows: %w", opPowerPCA, X.Rows(), ErrInsufficientBatchSize)
	}
	cov, means, err := matrix.Covariance(X)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opPowerPCA, err)
	}
	basis, err := eigen.ExtractTop(cov, k, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opPowerPCA, err)
	}

	return basis, means, nil
}
