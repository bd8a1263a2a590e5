// SPDX-License-Identifier: MIT
// Package: matrix
//
// Element-wise micro-kernels shared by the statistics and facade layers.
// Each kernel validates its input, allocates exactly one result and keeps a
// *Dense fast-path next to a bounds-safe fallback.

package matrix

import "math"

// ewBroadcastSubCols returns X − 1·meansᵀ (subtract colMeans[j] from column j).
// Errors: ErrNilMatrix, ErrDimensionMismatch when len(colMeans) != Cols.
// Complexity: Time O(r*c), Space O(r*c).
func ewBroadcastSubCols(X Matrix, colMeans []float64) (Matrix, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf("BroadcastSubCols", err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(colMeans, c); err != nil {
		return nil, matrixErrorf("BroadcastSubCols", err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("BroadcastSubCols", err)
	}

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] - colMeans[j]
			}
		}

		return out, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf("BroadcastSubCols", err)
			}
			out.data[i*c+j] = v - colMeans[j]
		}
	}

	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything. Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf("AllClose", ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	within := func(av, bv float64) bool {
		// NaN fails the comparison below, which is what we want.
		return math.Abs(av-bv) <= atol+rtol*math.Abs(bv)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !within(da.data[idx], db.data[idx]) {
					return false, nil // early-exit on first violation
				}
			}

			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j) // shapes validated above
			bv, _ = b.At(i, j)
			if !within(av, bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
