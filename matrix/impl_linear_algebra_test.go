// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/streampca/matrix"
)

func TestSub_FastAndFallbackAgree(t *testing.T) {
	t.Parallel()

	a := RandomDense(t, 4, 3, 1)
	b := RandomDense(t, 4, 3, 2)

	fast, err := matrix.Sub(a, b)
	require.NoError(t, err)
	slow, err := matrix.Sub(hide{a}, hide{b})
	require.NoError(t, err)
	CompareClose(t, fast, slow, 0, 0)

	want := MustAt(t, a, 3, 2) - MustAt(t, b, 3, 2)
	require.Equal(t, want, MustAt(t, fast, 3, 2))

	_, err = matrix.Sub(a, MustDense(t, 3, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_KnownProduct(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})
	want := NewFilledDense(t, 2, 2, []float64{58, 64, 139, 154})

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareClose(t, got, want, 0, 0)

	got, err = matrix.Mul(hide{a}, b)
	require.NoError(t, err)
	CompareClose(t, got, want, 0, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTranspose_Involution(t *testing.T) {
	t.Parallel()

	a := RandomDense(t, 3, 5, 3)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 5, at.Rows())
	require.Equal(t, MustAt(t, a, 2, 4), MustAt(t, at, 4, 2))

	att, err := matrix.Transpose(hide{at})
	require.NoError(t, err)
	CompareClose(t, att, a, 0, 0)
}

func TestScale(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 1, 3, []float64{1, -2, 3})
	got, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	CompareClose(t, got, NewFilledDense(t, 1, 3, []float64{-2, 4, -6}), 0, 0)

	_, err = matrix.Scale(a, math.Inf(1))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestMatVecAndVecMat(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	ys, err := matrix.MatVec(hide{a}, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, y, ys)

	u, err := matrix.VecMat([]float64{1, -1}, a)
	require.NoError(t, err)
	require.Equal(t, []float64{-3, -3, -3}, u)

	us, err := matrix.VecMat([]float64{1, -1}, hide{a})
	require.NoError(t, err)
	require.Equal(t, u, us)

	_, err = matrix.MatVec(a, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	buf := make([]float64, 2)
	require.NoError(t, matrix.MatVecInto(a, []float64{1, 1, 1}, buf))
	require.Equal(t, []float64{6, 15}, buf)
	require.ErrorIs(t, matrix.MatVecInto(a, []float64{1, 1, 1}, make([]float64, 3)), matrix.ErrDimensionMismatch)
}

func TestRankOneUpdate_Deflation(t *testing.T) {
	t.Parallel()

	// Deflating diag(5,3,1) along e1 must zero the first row and keep the rest.
	R, err := matrix.NewDiagonal([]float64{5, 3, 1})
	require.NoError(t, err)
	w := []float64{1, 0, 0}
	u, err := matrix.VecMat(w, R)
	require.NoError(t, err)
	require.NoError(t, matrix.RankOneUpdate(R, -1, w, u))

	want, err := matrix.NewDiagonal([]float64{0, 3, 1})
	require.NoError(t, err)
	CompareClose(t, R, want, 0, 1e-15)

	require.ErrorIs(t, matrix.RankOneUpdate(R, 1, []float64{1}, u), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.RankOneUpdate(nil, 1, w, u), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.RankOneUpdate(R, math.NaN(), w, u), matrix.ErrNaNInf)
}

func TestBlendOuter_KeepsExactSymmetry(t *testing.T) {
	t.Parallel()

	A, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	x := []float64{0.3, -1.7, 2.9}
	for k := 0; k < 50; k++ {
		x[k%3] += 0.123
		require.NoError(t, matrix.BlendOuter(A, 1/float64(k+2), x))
	}
	require.NoError(t, matrix.ValidateSymmetric(A, 0))

	// One step with gamma=1 replaces A with x·xᵀ.
	require.NoError(t, matrix.BlendOuter(A, 1, []float64{1, 2, 3}))
	require.Equal(t, 6.0, MustAt(t, A, 1, 2))
	require.Equal(t, 9.0, MustAt(t, A, 2, 2))

	require.ErrorIs(t, matrix.BlendOuter(MustDense(t, 2, 3), 0.5, []float64{1, 2}), matrix.ErrDimensionMismatch)
}
