package ipca

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/matrix"
)

const (
	opNew              = "New"
	opNewFromMatrix    = "NewFromMatrix"
	opUpdate           = "Update"
	opUpdateWeighted   = "UpdateWeighted"
	opCurrentBasis     = "CurrentBasis"
	opCompareDirection = "CompareDirection"
)

// Estimator holds a running mean and covariance estimate of D-dimensional
// samples. The zero value is not usable; construct with New, NewFromMatrix
// or NewFromState.
type Estimator struct {
	mu    sync.RWMutex  // guards count, mean, cov
	count int           // samples absorbed, batch included
	mean  []float64     // running mean, length D
	cov   *matrix.Dense // D×D, symmetric at all times
	dx    []float64     // scratch for the centred rule, guarded by mu

	rngMu sync.Mutex // guards rng
	rng   *rand.Rand // hands out one solver seed per extraction

	opts Options
}

// New seeds an estimator from the rows of batch: mean = column means,
// R = XcᵀXc/(N0−1), count = N0.
//
// Errors: ErrInsufficientBatchSize (N0 < 2), ErrDimensionMismatch (ragged
// rows), matrix.ErrNaNInf (non-finite values), matrix.ErrInvalidDimensions
// (empty rows).
func New(batch [][]float64, opts ...Option) (*Estimator, error) {
	if len(batch) < 2 {
		return nil, fmt.Errorf("%s: %d rows: %w", opNew, len(batch), ErrInsufficientBatchSize)
	}
	X, err := matrix.NewDenseFromRows(batch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return newFromDense(opNew, X, opts)
}

// NewFromMatrix is New for a batch already held in a matrix (rows = samples).
func NewFromMatrix(X matrix.Matrix, opts ...Option) (*Estimator, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("%s: %w", opNewFromMatrix, err)
	}
	if X.Rows() < 2 {
		return nil, fmt.Errorf("%s: %d rows: %w", opNewFromMatrix, X.Rows(), ErrInsufficientBatchSize)
	}

	return newFromDense(opNewFromMatrix, X, opts)
}

func newFromDense(op string, X matrix.Matrix, opts []Option) (*Estimator, error) {
	cov, means, err := matrix.Covariance(X)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	R, err := matrix.ToDense(cov)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return assemble(X.Rows(), means, R, gatherOptions(opts...)), nil
}

// assemble takes ownership of mean and cov.
func assemble(count int, mean []float64, cov *matrix.Dense, o Options) *Estimator {
	seed := o.seed
	if !o.seeded {
		seed = time.Now().UnixNano()
	}
	e := &Estimator{
		count: count,
		mean:  mean,
		cov:   cov,
		dx:    make([]float64, len(mean)),
		rng:   rand.New(rand.NewSource(seed)),
		opts:  o,
	}
	e.opts.logger.Debug().
		Int("dim", len(mean)).
		Int("count", count).
		Bool("centered", o.centered).
		Float64("gamma", o.gamma).
		Msg("ipca: estimator initialised")

	return e
}

// Dim returns the sample dimension D.
func (e *Estimator) Dim() int { return len(e.mean) }

// Count returns the number of samples absorbed so far, initial batch included.
func (e *Estimator) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.count
}

// Mean returns a copy of the running mean.
func (e *Estimator) Mean() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]float64, len(e.mean))
	copy(out, e.mean)

	return out
}

// Covariance returns a copy of the current estimate R.
func (e *Estimator) Covariance() *matrix.Dense {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.cov.CloneDense()
}

// Update absorbs x with weight γ = WithGamma value, or 1/n where n is the
// sample count after this update.
//
// Errors: ErrDimensionMismatch, matrix.ErrNaNInf. On error nothing changes.
func (e *Estimator) Update(x []float64) error {
	if err := e.validateSample(opUpdate, x); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	gamma := e.opts.gamma
	if gamma == 0 {
		gamma = 1 / float64(e.count+1)
	}

	return e.apply(opUpdate, x, gamma)
}

// UpdateWeighted absorbs x with an explicit weight γ ∈ (0, 1].
//
// Errors: ErrInvalidWeight, ErrDimensionMismatch, matrix.ErrNaNInf.
// On error nothing changes.
func (e *Estimator) UpdateWeighted(x []float64, gamma float64) error {
	if math.IsNaN(gamma) || gamma <= 0 || gamma > 1 {
		e.opts.logger.Debug().Float64("gamma", gamma).Str("reason", "weight").Msg("ipca: update rejected")

		return fmt.Errorf("%s: gamma=%g: %w", opUpdateWeighted, gamma, ErrInvalidWeight)
	}
	if err := e.validateSample(opUpdateWeighted, x); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.apply(opUpdateWeighted, x, gamma)
}

func (e *Estimator) validateSample(op string, x []float64) error {
	if err := matrix.ValidateVecLen(x, len(e.mean)); err != nil {
		e.opts.logger.Debug().Int("len", len(x)).Int("dim", len(e.mean)).Str("reason", "dimension").
			Msg("ipca: update rejected")

		return fmt.Errorf("%s: %w", op, err)
	}
	if err := matrix.ValidateFinite(x); err != nil {
		e.opts.logger.Debug().Str("reason", "non-finite").Msg("ipca: update rejected")

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// apply folds a validated sample into the state. Caller holds mu.
func (e *Estimator) apply(op string, x []float64, gamma float64) error {
	var err error
	if e.opts.centered {
		// d = x − m; m ← m + γd; R ← (1−γ)R + γ·(√(1−γ)d)(√(1−γ)d)ᵀ
		s := math.Sqrt(1 - gamma)
		for i, v := range x {
			d := v - e.mean[i]
			e.mean[i] += gamma * d
			e.dx[i] = s * d
		}
		err = matrix.BlendOuter(e.cov, gamma, e.dx)
	} else {
		for i, v := range x {
			e.mean[i] += gamma * (v - e.mean[i])
		}
		err = matrix.BlendOuter(e.cov, gamma, x)
	}
	if err != nil {
		// unreachable after validation; the state is left as is
		return fmt.Errorf("%s: %w", op, err)
	}
	e.count++

	return nil
}

// CurrentBasis extracts the k leading eigenpairs of the current estimate.
// R is copied under the read lock; the solver runs on the copy, so repeated
// calls without intervening updates see identical input.
//
// Errors: ErrInvalidComponentCount, ErrConvergenceFailure (*eigen.ConvergenceError).
func (e *Estimator) CurrentBasis(k int) (*eigen.Basis, error) {
	d := len(e.mean)
	if k < 1 || k > d {
		return nil, fmt.Errorf("%s: k=%d with D=%d: %w", opCurrentBasis, k, d, ErrInvalidComponentCount)
	}

	e.mu.RLock()
	R := e.cov.CloneDense()
	n := e.count
	e.mu.RUnlock()

	opts := make([]eigen.Option, 0, len(e.opts.solver)+1)
	opts = append(opts, e.opts.solver...)
	opts = append(opts, eigen.WithSeed(e.nextSeed()))

	start := time.Now()
	basis, err := eigen.ExtractTop(R, k, opts...)
	if err != nil {
		e.opts.logger.Debug().Err(err).Int("k", k).Int("count", n).Msg("ipca: extraction failed")

		return nil, fmt.Errorf("%s: %w", opCurrentBasis, err)
	}
	e.opts.logger.Debug().
		Int("k", k).
		Int("count", n).
		Ints("iterations", basis.Iterations).
		Floats64("eigenvalues", basis.Values).
		Dur("took", time.Since(start)).
		Msg("ipca: basis extracted")

	return basis, nil
}

func (e *Estimator) nextSeed() int64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	return e.rng.Int63()
}

// CompareDirection extracts the leading eigenvector e1 and returns the
// unnormalised centred inner product
//
//	Σ_i (e1[i] − mean(e1))·(reference[i] − mean(reference))
//
// The sign of e1 is arbitrary, so only |result| is meaningful across calls.
//
// Errors: ErrDimensionMismatch, matrix.ErrNaNInf, ErrConvergenceFailure.
func (e *Estimator) CompareDirection(reference []float64) (float64, error) {
	if err := matrix.ValidateVecLen(reference, len(e.mean)); err != nil {
		return 0, fmt.Errorf("%s: %w", opCompareDirection, err)
	}
	if err := matrix.ValidateFinite(reference); err != nil {
		return 0, fmt.Errorf("%s: %w", opCompareDirection, err)
	}

	basis, err := e.CurrentBasis(1)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opCompareDirection, err)
	}
	e1, err := basis.Vector(0)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opCompareDirection, err)
	}

	return centredDot(e1, reference), nil
}

// centredDot returns Σ (a[i]−ā)(b[i]−b̄) for equal-length, non-empty a and b.
func centredDot(a, b []float64) float64 {
	ma, _ := matrix.Mean(a)
	mb, _ := matrix.Mean(b)
	var s float64
	for i := range a {
		s += (a[i] - ma) * (b[i] - mb)
	}

	return s
}
