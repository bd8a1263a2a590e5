package ipca_test

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/streampca/ipca"
	"github.com/katalvlaran/streampca/matrix"
)

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := ipca.New([][]float64{{1, 2}})
	require.ErrorIs(t, err, ipca.ErrInsufficientBatchSize)

	_, err = ipca.New(nil)
	require.ErrorIs(t, err, ipca.ErrInsufficientBatchSize)

	_, err = ipca.New([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ipca.ErrDimensionMismatch)

	_, err = ipca.New([][]float64{{1, 2}, {3, math.NaN()}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	one, err := matrix.NewDense(1, 3)
	require.NoError(t, err)
	_, err = ipca.NewFromMatrix(one)
	require.ErrorIs(t, err, ipca.ErrInsufficientBatchSize)

	_, err = ipca.NewFromMatrix(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestNew_MatchesGonum checks the initial mean and sample covariance.
func TestNew_MatchesGonum(t *testing.T) {
	t.Parallel()

	rows := pairedRows(40, []float64{1, -2, 0.5, 3}, []float64{3, 1, 2, 0.5}, 5)
	rows = append(rows, []float64{0.3, 0.1, -0.7, 2}) // break the exact pairing
	est, err := ipca.New(rows)
	require.NoError(t, err)
	require.Equal(t, 4, est.Dim())
	require.Equal(t, len(rows), est.Count())

	data := make([]float64, 0, len(rows)*4)
	for _, r := range rows {
		data = append(data, r...)
	}
	X := mat.NewDense(len(rows), 4, data)
	var want mat.SymDense
	stat.CovarianceMatrix(&want, X, nil)

	got := est.Covariance()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v, err := got.At(i, j)
			require.NoError(t, err)
			require.InDelta(t, want.At(i, j), v, 1e-12)
		}
	}
	mean := est.Mean()
	for j := 0; j < 4; j++ {
		require.InDelta(t, stat.Mean(mat.Col(nil, j, X), nil), mean[j], 1e-12)
	}
}

// TestIncrementality streams a dataset row by row (γ = 1/n) and compares the
// result with the covariance computed from all rows at once.
func TestIncrementality(t *testing.T) {
	t.Parallel()

	rows := pairedRows(10000, nil, []float64{1, 1, 1}, 17)
	est, err := ipca.New(rows[:2])
	require.NoError(t, err)
	for _, x := range rows[2:] {
		require.NoError(t, est.Update(x))
	}
	require.Equal(t, len(rows), est.Count())

	full, err := ipca.New(rows)
	require.NoError(t, err)
	requireDenseClose(t, est.Covariance(), full.Covariance(), 1e-3)
	require.InDeltaSlice(t, full.Mean(), est.Mean(), 1e-12)
}

// TestCenteredUpdate_TracksCovariance feeds data with a large mean: the
// centred rule converges to the covariance, the default rule to the
// covariance plus m·mᵀ.
func TestCenteredUpdate_TracksCovariance(t *testing.T) {
	t.Parallel()

	offset := []float64{5, -3, 2}
	rows := pairedRows(10000, offset, []float64{1, 1.5, 0.5}, 23)
	full, err := ipca.New(rows)
	require.NoError(t, err)
	C := full.Covariance()

	centred, err := ipca.New(rows[:2], ipca.WithCenteredUpdate())
	require.NoError(t, err)
	plain, err := ipca.New(rows[:2])
	require.NoError(t, err)
	for _, x := range rows[2:] {
		require.NoError(t, centred.Update(x))
		require.NoError(t, plain.Update(x))
	}

	requireDenseClose(t, centred.Covariance(), C, 1e-3)
	require.InDeltaSlice(t, offset, centred.Mean(), 1e-9)

	ok, err := matrix.AllClose(plain.Covariance(), C, 0, 1e-3)
	require.NoError(t, err)
	require.False(t, ok, "uncentred estimate should carry the mean")
	requireDenseClose(t, plain.Covariance(), outer(t, C, offset), 2e-2)
	require.InDeltaSlice(t, offset, plain.Mean(), 1e-9)
}

func TestUpdateWeighted_FullWeightReplacesState(t *testing.T) {
	t.Parallel()

	est := diagState(t, []float64{5, 3, 1})
	x := []float64{1, 2, -1}
	require.NoError(t, est.UpdateWeighted(x, 1))

	zero, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	requireDenseClose(t, est.Covariance(), outer(t, zero, x), 0)
	require.Equal(t, x, est.Mean())
	require.Equal(t, 11, est.Count())

	// Centred rule with γ = 1 forgets everything, spread included.
	c := diagState(t, []float64{5, 3, 1}, ipca.WithCenteredUpdate())
	require.NoError(t, c.UpdateWeighted(x, 1))
	requireDenseClose(t, c.Covariance(), zero, 0)
	require.Equal(t, x, c.Mean())
}

func TestWithGamma_FixedWeight(t *testing.T) {
	t.Parallel()

	est := diagState(t, []float64{4, 2}, ipca.WithGamma(0.5))
	require.NoError(t, est.Update([]float64{2, 0}))
	require.NoError(t, est.Update([]float64{0, 2}))

	// R = 0.5·(0.5·diag(4,2) + 0.5·diag(4,0)) + 0.5·diag(0,4) = diag(2, 2.5)
	want, err := matrix.NewDiagonal([]float64{2, 2.5})
	require.NoError(t, err)
	requireDenseClose(t, est.Covariance(), want, 1e-15)
	require.InDeltaSlice(t, []float64{0.5, 1}, est.Mean(), 1e-15)
}

func TestUpdate_RejectsWithoutMutation(t *testing.T) {
	t.Parallel()

	est := diagState(t, []float64{5, 3, 1})
	before := est.Snapshot()

	require.ErrorIs(t, est.Update([]float64{1, 2}), ipca.ErrDimensionMismatch)
	require.ErrorIs(t, est.Update([]float64{1, math.Inf(1), 0}), matrix.ErrNaNInf)
	for _, g := range []float64{0, -0.1, 1.5, math.NaN()} {
		require.ErrorIs(t, est.UpdateWeighted([]float64{1, 2, 3}, g), ipca.ErrInvalidWeight, "gamma=%v", g)
	}
	require.ErrorIs(t, est.UpdateWeighted([]float64{1}, 0.5), ipca.ErrDimensionMismatch)

	after := est.Snapshot()
	require.Equal(t, before.Count, after.Count)
	require.Equal(t, before.Mean, after.Mean)
	requireDenseClose(t, after.Covariance, before.Covariance, 0)
}

func TestCovarianceStaysSymmetric(t *testing.T) {
	t.Parallel()

	rows := pairedRows(500, []float64{1, 2, 3, 4, 5}, []float64{1, 0.3, 2, 0.7, 1.1}, 31)
	for _, opts := range [][]ipca.Option{nil, {ipca.WithCenteredUpdate()}, {ipca.WithGamma(0.05)}} {
		est, err := ipca.New(rows[:4], opts...)
		require.NoError(t, err)
		for _, x := range rows[4:] {
			require.NoError(t, est.Update(x))
		}
		require.NoError(t, matrix.ValidateSymmetric(est.Covariance(), 0))
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	est := diagState(t, []float64{2, 1})
	m := est.Mean()
	m[0] = 99
	R := est.Covariance()
	require.NoError(t, R.Set(0, 0, 99))

	require.Equal(t, []float64{0, 0}, est.Mean())
	v, err := est.Covariance().At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 2.0, v)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	rows := pairedRows(20, []float64{1, 1, 1}, []float64{2, 1, 0.5}, 3)
	a, err := ipca.New(rows[:10])
	require.NoError(t, err)

	s := a.Snapshot()
	b, err := ipca.NewFromState(s)
	require.NoError(t, err)
	s.Mean[0] = 1e6 // the clone owns its own copy

	for _, x := range rows[10:] {
		require.NoError(t, a.Update(x))
		require.NoError(t, b.Update(x))
	}
	require.Equal(t, a.Count(), b.Count())
	require.Equal(t, a.Mean(), b.Mean())
	requireDenseClose(t, a.Covariance(), b.Covariance(), 0)
}

func TestNewFromState_Errors(t *testing.T) {
	t.Parallel()

	R, err := matrix.NewIdentity(2)
	require.NoError(t, err)

	_, err = ipca.NewFromState(ipca.State{Count: 1, Mean: []float64{0, 0}, Covariance: R})
	require.ErrorIs(t, err, ipca.ErrInvalidState)

	_, err = ipca.NewFromState(ipca.State{Count: 5, Mean: []float64{0, 0}})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = ipca.NewFromState(ipca.State{Count: 5, Mean: []float64{0, 0, 0}, Covariance: R})
	require.ErrorIs(t, err, ipca.ErrDimensionMismatch)

	_, err = ipca.NewFromState(ipca.State{Count: 5, Mean: []float64{0, math.NaN()}, Covariance: R})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	asym, err := matrix.NewDenseFromRows([][]float64{{1, 0.5}, {0, 1}})
	require.NoError(t, err)
	_, err = ipca.NewFromState(ipca.State{Count: 5, Mean: []float64{0, 0}, Covariance: asym})
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { ipca.WithGamma(0) })
	require.Panics(t, func() { ipca.WithGamma(1.01) })
	require.Panics(t, func() { ipca.WithGamma(math.NaN()) })
	require.Panics(t, func() { ipca.WithThreshold(0) })
	require.Panics(t, func() { ipca.WithMaxIter(-1) })
	require.NotPanics(t, func() { ipca.WithGamma(1) })
}

func TestWithLogger_ReportsRejectedUpdates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	est := diagState(t, []float64{2, 1}, ipca.WithLogger(log))

	require.Error(t, est.Update([]float64{1, 2, 3}))
	assert.Contains(t, buf.String(), "update rejected")
	assert.Contains(t, buf.String(), `"reason":"dimension"`)

	buf.Reset()
	_, err := est.CurrentBasis(1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "basis extracted")
}

// TestConcurrentUpdatesAndExtraction must stay clean under -race.
func TestConcurrentUpdatesAndExtraction(t *testing.T) {
	t.Parallel()

	rows := pairedRows(2000, nil, []float64{3, 2, 1}, 41)
	const n0, writers = 20, 4
	est, err := ipca.New(rows[:n0], ipca.WithSeed(1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	chunk := (len(rows) - n0) / writers
	for w := 0; w < writers; w++ {
		part := rows[n0+w*chunk : n0+(w+1)*chunk]
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, x := range part {
				assert.NoError(t, est.Update(x))
			}
		}()
	}
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				_, err := est.CurrentBasis(2)
				assert.NoError(t, err)
				_ = est.Snapshot()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, n0+writers*chunk, est.Count())
}
