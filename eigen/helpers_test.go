package eigen_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/streampca/matrix"
)

// hide masks *matrix.Dense so ExtractTop takes its generic input path.
type hide struct{ matrix.Matrix }

// householder returns H = I − 2vvᵀ/(vᵀv) for a random v (symmetric, orthogonal).
func householder(t testing.TB, n int, rng *rand.Rand) *matrix.Dense {
	t.Helper()
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	vv, err := matrix.Dot(v, v)
	require.NoError(t, err)
	H, err := matrix.NewIdentity(n)
	require.NoError(t, err)
	require.NoError(t, matrix.RankOneUpdate(H, -2/vv, v, v))

	return H
}

// withSpectrum builds Q·diag(lambdas)·Qᵀ for a random orthogonal Q.
func withSpectrum(t testing.TB, lambdas []float64, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	n := len(lambdas)
	Q, err := matrix.Mul(householder(t, n, rng), householder(t, n, rng))
	require.NoError(t, err)
	L, err := matrix.NewDiagonal(lambdas)
	require.NoError(t, err)
	QL, err := matrix.Mul(Q, L)
	require.NoError(t, err)
	Qt, err := matrix.Transpose(Q)
	require.NoError(t, err)
	A, err := matrix.Mul(QL, Qt)
	require.NoError(t, err)
	S, err := matrix.Symmetrize(A)
	require.NoError(t, err)

	return S
}

// gonumEigen returns eigenvalues in descending order and the matching vectors.
func gonumEigen(t *testing.T, A *matrix.Dense) ([]float64, [][]float64) {
	t.Helper()
	n := A.Rows()
	data := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		row, err := A.Row(i)
		require.NoError(t, err)
		data = append(data, row...)
	}
	var es mat.EigenSym
	require.True(t, es.Factorize(mat.NewSymDense(n, data), true))
	vals := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] > vals[idx[b]] })

	outVals := make([]float64, n)
	outVecs := make([][]float64, n)
	for r, i := range idx {
		outVals[r] = vals[i]
		outVecs[r] = mat.Col(nil, i, &ev)
	}

	return outVals, outVecs
}
