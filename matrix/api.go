// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

import "math"

// ---------- Constructors ----------

// NewIdentity returns I_n (ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewDiagonal returns the square matrix diag(d).
// Errors: ErrInvalidDimensions for empty d, ErrNaNInf for non-finite entries.
// Complexity: O(n^2).
func NewDiagonal(d []float64) (*Dense, error) {
	if err := ValidateFinite(d); err != nil {
		return nil, matrixErrorf("NewDiagonal", err)
	}
	n := len(d)
	D, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, v := range d {
		D.data[i*n+i] = v
	}

	return D, nil
}

// ---------- Conversions ----------

// ToDense returns m itself when it already is a *Dense, otherwise a Dense copy.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func ToDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToDense", err)
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("ToDense", err)
	}
	var v float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf("ToDense", err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// ---------- Convenience facades (compositions only) ----------

// Symmetrize returns (m + mᵀ)/2.
// Useful to repair asymmetry drift before spectral methods.
// Complexity: O(n²).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	d, err := ToDense(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	n := d.r
	out := d.clone()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := 0.5 * (d.data[i*n+j] + d.data[j*n+i])
			out.data[i*n+j] = avg
			out.data[j*n+i] = avg
		}
	}

	return out, nil
}

// MaxAbs returns max |m[i,j]|; 0 for an all-zero matrix.
// Complexity: O(r*c).
func MaxAbs(m Matrix) (float64, error) {
	d, err := ToDense(m)
	if err != nil {
		return 0, matrixErrorf("MaxAbs", err)
	}
	mx := 0.0
	for _, v := range d.data {
		if a := math.Abs(v); a > mx {
			mx = a
		}
	}

	return mx, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Time: O(r*c). Space: O(1). Deterministic.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// ---------- Statistics (public surface → internal implementations) ----------

// ColumnMeans returns the per-column arithmetic mean of X.
// Time: O(r*c). Space: O(c).
func ColumnMeans(X Matrix) ([]float64, error) { return columnMeans(X) }

// CenterColumns returns a centered copy Xc = X − mean(X, by columns) and the column means.
// Time: O(r*c). Space: O(r*c).
func CenterColumns(X Matrix) (Matrix, []float64, error) { return centerColumns(X) }

// Covariance computes sample covariance of columns: Cov = (Xcᵀ Xc)/(n-1).
// Returns Cov (exactly symmetric) and column means.
//
// Notes:
//   - Requires n >= 2; else ErrTooFewRows.
func Covariance(X Matrix) (Matrix, []float64, error) { return covariance(X) }
