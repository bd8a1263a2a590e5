// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms PCA needs (column means, centering,
//     sample covariance) as deterministic compositions over canonical kernels
//     (Transpose/Mul/Scale) and ew* micro-kernels.
//
// Exposed API:
//   - ColumnMeans(X)   -> means             // per-column arithmetic mean
//   - CenterColumns(X) -> (Xc, means)       // subtract per-column mean
//   - Covariance(X)    -> (Cov, means)      // sample covariance of columns: (Xcᵀ Xc)/(r-1)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At/Set and operate on row-major flat buffers.

package matrix

// Operation name constants for unified error wrapping.
const (
	opColumnMeans   = "ColumnMeans"
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// columnMeans computes Σ_i X[i,j] / r for every column j.
//
// Errors:
//   - ErrNilMatrix from validation; wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func columnMeans(X Matrix) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	if r == 0 || c == 0 {
		return means, nil
	}

	var i, j int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				means[j] += d.data[base+j]
			}
		}
	} else {
		var (
			v   float64
			err error
		)
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, matrixErrorf(opColumnMeans, err)
				}
				means[j] += v
			}
		}
	}

	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// centerColumns subtracts the per-column mean from every element.
//
// Implementation:
//   - Stage 1: columnMeans(X).
//   - Stage 2: ewBroadcastSubCols to produce a centered copy (X is not mutated).
//
// Returns:
//   - Matrix: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func centerColumns(X Matrix) (Matrix, []float64, error) {
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	Xc, err := ewBroadcastSubCols(X, means)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// covariance computes the sample covariance of columns: Cov = (Xcᵀ Xc)/(r−1).
//
// Implementation:
//   - Stage 1: require r ≥ 2 (ErrTooFewRows).
//   - Stage 2: CenterColumns → Transpose → Mul → Scale(1/(r−1)).
//
// Behavior highlights:
//   - The product XcᵀXc is symmetric up to summation order; the result is
//     mirrored from the upper triangle so that Cov is exactly symmetric.
//
// Complexity:
//   - Time O(r*c²), Space O(r*c + c²).
func covariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrTooFewRows)
	}

	Xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	XcT, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(XcT, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Scale(G, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	// Mirror the upper triangle (Scale always returns *Dense).
	d := cov.(*Dense)
	n := d.c
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.data[j*n+i] = d.data[i*n+j]
		}
	}

	return d, means, nil
}
