package ipca_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/streampca/ipca"
	"github.com/katalvlaran/streampca/matrix"
)

// pairedRows returns n rows (n even) of offset ± scale⊙u with u ~ U(−1,1)^d.
// Each draw is emitted as an adjacent ± pair, so the sample mean is offset
// to the last bit and the covariance is diag(scale²)/3 in expectation.
func pairedRows(n int, offset, scale []float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	d := len(scale)
	rows := make([][]float64, 0, n)
	for len(rows) < n {
		plus := make([]float64, d)
		minus := make([]float64, d)
		for j := 0; j < d; j++ {
			u := scale[j] * (2*rng.Float64() - 1)
			o := 0.0
			if offset != nil {
				o = offset[j]
			}
			plus[j] = o + u
			minus[j] = o - u
		}
		rows = append(rows, plus, minus)
	}

	return rows
}

// diagState seeds an estimator whose covariance is exactly diag(d).
func diagState(t *testing.T, d []float64, opts ...ipca.Option) *ipca.Estimator {
	t.Helper()
	R, err := matrix.NewDiagonal(d)
	require.NoError(t, err)
	est, err := ipca.NewFromState(ipca.State{Count: 10, Mean: make([]float64, len(d)), Covariance: R}, opts...)
	require.NoError(t, err)

	return est
}

// requireDenseClose asserts |a−b| ≤ atol element-wise.
func requireDenseClose(t *testing.T, a, b matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, 0, atol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ by more than %g:\n%v\n%v", atol, a, b)
}

// outer returns a + x·xᵀ as a new matrix.
func outer(t *testing.T, a *matrix.Dense, x []float64) *matrix.Dense {
	t.Helper()
	out := a.CloneDense()
	require.NoError(t, matrix.RankOneUpdate(out, 1, x, x))

	return out
}
