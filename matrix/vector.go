// SPDX-License-Identifier: MIT
// Package: matrix
//
// Dense vector helpers ([]float64) used by power iteration and the estimator.
// Lengths are validated; helpers never mutate their inputs unless the name
// says so (NormalizeInPlace).

package matrix

import "math"

const (
	opDot       = "Dot"
	opNormalize = "Normalize"
	opMean      = "Mean"
)

// Dot returns Σ x[i]·y[i].
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(n).
func Dot(x, y []float64) (float64, error) {
	if err := ValidateVecLen(x, len(y)); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	if y == nil {
		return 0, matrixErrorf(opDot, ErrNilMatrix)
	}

	return dot(x, y), nil
}

// dot is the unchecked kernel behind Dot.
func dot(x, y []float64) float64 {
	acc := ZeroSum
	for i := range x {
		acc += x[i] * y[i]
	}

	return acc
}

// Norm2 returns the Euclidean norm ‖x‖₂. An empty vector has norm 0.
//
// Notes:
//   - Uses a scaled sum of squares (LAPACK dnrm2 style) so that very large or
//     very small entries neither overflow nor underflow.
//
// Complexity: O(n).
func Norm2(x []float64) float64 {
	var scale, ssq float64 = 0, 1
	for _, v := range x {
		if v == 0 {
			continue
		}
		if math.IsNaN(v) {
			return math.NaN()
		}
		a := math.Abs(v)
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}
	if scale == 0 {
		return 0
	}

	return scale * math.Sqrt(ssq)
}

// Normalize returns x/‖x‖₂ as a fresh slice together with the original norm.
// Errors: ErrZeroNorm when ‖x‖₂ == 0, ErrNaNInf when the norm is not finite.
// Complexity: O(n).
func Normalize(x []float64) ([]float64, float64, error) {
	out := make([]float64, len(x))
	copy(out, x)
	norm, err := NormalizeInPlace(out)
	if err != nil {
		return nil, 0, err
	}

	return out, norm, nil
}

// NormalizeInPlace scales x to unit length and returns its previous norm.
// On error x is left untouched.
// Errors: ErrZeroNorm, ErrNaNInf.
func NormalizeInPlace(x []float64) (float64, error) {
	norm := Norm2(x)
	if math.IsNaN(norm) || math.IsInf(norm, 0) {
		return 0, matrixErrorf(opNormalize, ErrNaNInf)
	}
	if norm == 0 {
		return 0, matrixErrorf(opNormalize, ErrZeroNorm)
	}
	inv := 1 / norm
	for i := range x {
		x[i] *= inv
	}

	return norm, nil
}

// Mean returns the arithmetic mean of x.
// Errors: ErrInvalidDimensions for an empty vector.
func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, matrixErrorf(opMean, ErrInvalidDimensions)
	}
	s := ZeroSum
	for _, v := range x {
		s += v
	}

	return s / float64(len(x)), nil
}
