// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// subtraction, matrix multiplication, transpose, scaling, matrix-vector
// products and the in-place rank-1 kernels used by the eigensolver (deflation)
// and the incremental estimator (covariance update).
//
// Purpose:
//   - Declare canonical linear-algebra kernels used across streampca.
//   - Define operation tags for determinism and uniform error reporting.
//
// Notes:
//   - Every kernel validates through validators.go and wraps via matrixErrorf.
//   - Allocating kernels never mutate their operands; in-place kernels say so in their name.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for dot-product style accumulators.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opSub           = "Sub"
	opMul           = "Mul"
	opTranspose     = "Transpose"
	opScale         = "Scale"
	opMatVec        = "MatVec"
	opVecMat        = "VecMat"
	opRankOneUpdate = "RankOneUpdate"
	opBlendOuter    = "BlendOuter"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Sub computes the element-wise difference a − b into a fresh Dense.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Sub").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opSub, err)
	}
	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opSub, err)
	}

	// Fast-path: flat slices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] - db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: fixed i→j traversal through the interface.
	var av, bv float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opSub, err)
			}
			res.data[i*cols+j] = av - bv
		}
	}

	return res, nil
}

// Mul returns the matrix product a × b.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate Dense(a.Rows, b.Cols).
//   - Stage 2: *Dense×*Dense uses the i-k-j loop over flat buffers (row-major
//     friendly, zero entries of a skipped); otherwise the generic i-j-k loop.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(aRows, bCols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var (
		i, j, k int
		av, bv  float64
		acc     float64
	)
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowA, rowB, rowR int
			for i = 0; i < aRows; i++ {
				rowA = i * aCols
				rowR = i * bCols
				for k = 0; k < aCols; k++ {
					av = da.data[rowA+k]
					if av == 0 {
						continue
					}
					rowB = k * bCols
					for j = 0; j < bCols; j++ {
						res.data[rowR+j] += av * db.data[rowB+j]
					}
				}
			}

			return res, nil
		}
	}

	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			acc = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				acc += av * bv
			}
			res.data[i*bCols+j] = acc
		}
	}

	return res, nil
}

// Transpose returns a new matrix mᵀ; m is never mutated.
//
// Errors:
//   - ErrNilMatrix (wrapped with "Transpose").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[i*cols+j]
			}
		}

		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns α·m as a fresh Dense.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf when α is not finite (wrapped with "Scale").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			res.data[idx] = alpha * v
		}

		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = alpha * v
		}
	}

	return res, nil
}

// MatVec computes y = m·x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		matVecDense(d, x, y)

		return y, nil
	}

	var (
		mv  float64
		err error
	)
	for i := 0; i < rows; i++ {
		y[i] = ZeroSum
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// matVecDense writes d·x into y without validation or allocation.
// Callers guarantee len(x) == d.c and len(y) == d.r.
func matVecDense(d *Dense, x, y []float64) {
	var (
		i, j, base int
		acc        float64
	)
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}
}

// MatVecInto computes y = m·x into a caller-provided buffer (no allocation).
// Intended for tight loops such as power iteration where y is reused.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols or len(y) != Rows).
// Complexity: Time O(r*c), Space O(1).
func MatVecInto(m *Dense, x, y []float64) error {
	if m == nil {
		return matrixErrorf(opMatVec, ErrNilMatrix)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(y, m.r); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	matVecDense(m, x, y)

	return nil
}

// VecMat computes the row vector u = xᵀ·m (len(u) == m.Cols()).
//
// Contract: m non-nil; len(x) == m.Rows().
// Complexity: Time O(r*c), Space O(c).
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	rows, cols := m.Rows(), m.Cols()
	u := make([]float64, cols)

	if d, ok := m.(*Dense); ok {
		var base int
		for i := 0; i < rows; i++ {
			if x[i] == 0 {
				continue
			}
			base = i * cols
			for j := 0; j < cols; j++ {
				u[j] += x[i] * d.data[base+j]
			}
		}

		return u, nil
	}

	var (
		mv  float64
		err error
	)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opVecMat, err)
			}
			u[j] += x[i] * mv
		}
	}

	return u, nil
}

// RankOneUpdate applies A ← A + α·x·yᵀ in place (BLAS "ger").
//
// Implementation:
//   - Stage 1: validate A non-nil, len(x) == Rows, len(y) == Cols, α finite.
//   - Stage 2: one row-major pass; rows with x[i] == 0 are skipped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (wrapped with "RankOneUpdate").
//
// Complexity:
//   - Time O(r*c), Space O(1).
//
// Notes:
//   - Deflation Rw ← Rw − w(wᵀRw) is RankOneUpdate(Rw, −1, w, VecMat(w, Rw)).
func RankOneUpdate(a *Dense, alpha float64, x, y []float64) error {
	if a == nil {
		return matrixErrorf(opRankOneUpdate, ErrNilMatrix)
	}
	if err := ValidateVecLen(x, a.r); err != nil {
		return matrixErrorf(opRankOneUpdate, err)
	}
	if err := ValidateVecLen(y, a.c); err != nil {
		return matrixErrorf(opRankOneUpdate, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return matrixErrorf(opRankOneUpdate, ErrNaNInf)
	}

	var (
		i, j, base int
		ax         float64
	)
	for i = 0; i < a.r; i++ {
		ax = alpha * x[i]
		if ax == 0 {
			continue
		}
		base = i * a.c
		for j = 0; j < a.c; j++ {
			a.data[base+j] += ax * y[j]
		}
	}

	return nil
}

// BlendOuter applies the exponential-moving-average update
//
//	A ← A + γ·(x·xᵀ − A) = (1−γ)·A + γ·x·xᵀ
//
// in place on a square Dense.
//
// Implementation:
//   - Stage 1: validate A square, len(x) == n, γ finite.
//   - Stage 2: single row-major pass. x[i]*x[j] and x[j]*x[i] are bitwise
//     identical, so a symmetric A stays exactly symmetric.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (wrapped with "BlendOuter").
//
// Complexity:
//   - Time O(n²), Space O(1).
func BlendOuter(a *Dense, gamma float64, x []float64) error {
	if a == nil {
		return matrixErrorf(opBlendOuter, ErrNilMatrix)
	}
	if a.r != a.c {
		return matrixErrorf(opBlendOuter, ErrDimensionMismatch)
	}
	if err := ValidateVecLen(x, a.r); err != nil {
		return matrixErrorf(opBlendOuter, err)
	}
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return matrixErrorf(opBlendOuter, ErrNaNInf)
	}

	var (
		i, j, base int
		keep       = 1 - gamma
	)
	for i = 0; i < a.r; i++ {
		base = i * a.c
		for j = 0; j < a.c; j++ {
			a.data[base+j] = keep*a.data[base+j] + gamma*(x[i]*x[j])
		}
	}

	return nil
}
