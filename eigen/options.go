package eigen

import (
	"math"
	"math/rand"
	"time"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultThreshold is the convergence threshold: iteration stops once
	// |wPrev·w| > 1 − DefaultThreshold.
	DefaultThreshold = 1e-10

	// DefaultMaxIter caps power-iteration steps per component.
	DefaultMaxIter = 10000

	// DefaultSymmetryTolerance bounds |R[i,j] − R[j,i]| relative to max(1, max|R|).
	DefaultSymmetryTolerance = 1e-9
)

const (
	panicThresholdInvalid = "eigen: WithThreshold: threshold must be in (0, 1)"
	panicMaxIterInvalid   = "eigen: WithMaxIter: maxIter must be > 0"
	panicSymTolInvalid    = "eigen: WithSymmetryTolerance: tol must be finite and >= 0"
	panicRandNil          = "eigen: WithRand: nil *rand.Rand"
)

// Option mutates solver options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options is the effective solver configuration.
type Options struct {
	threshold float64
	maxIter   int
	symTol    float64
	rng       *rand.Rand
}

// Threshold reports the effective convergence threshold.
func (o Options) Threshold() float64 { return o.threshold }

// MaxIter reports the effective iteration cap.
func (o Options) MaxIter() int { return o.maxIter }

// WithThreshold sets the convergence threshold t ∈ (0, 1).
// Smaller values give more accurate vectors at the cost of more iterations;
// the vector error at stop is roughly √(2t)/(1 − λ₂/λ₁).
func WithThreshold(t float64) Option {
	if math.IsNaN(t) || t <= 0 || t >= 1 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = t }
}

// WithMaxIter sets the per-component iteration cap.
func WithMaxIter(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

// WithSymmetryTolerance sets the relative symmetry tolerance used to validate R.
func WithSymmetryTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymTolInvalid)
	}

	return func(o *Options) { o.symTol = tol }
}

// WithSeed makes starting vectors reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand uses r for starting vectors. r is not safe for concurrent use, so
// do not share it between concurrent ExtractTop calls.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicRandNil)
	}

	return func(o *Options) { o.rng = r }
}

// NewOptions resolves opts on top of the defaults.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies setters in order (last-writer-wins) and falls back to
// a time-seeded source when none was supplied.
func gatherOptions(user ...Option) Options {
	o := Options{
		threshold: DefaultThreshold,
		maxIter:   DefaultMaxIter,
		symTol:    DefaultSymmetryTolerance,
	}
	for _, set := range user {
		set(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return o
}
