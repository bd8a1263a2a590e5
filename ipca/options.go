package ipca

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/streampca/eigen"
)

const (
	panicGammaInvalid = "ipca: WithGamma: gamma must be in (0, 1]"
)

// Option configures an Estimator. Constructors panic only on nonsensical
// values (programmer error); runtime input errors are returned instead.
type Option func(*Options)

// Options is the effective estimator configuration.
type Options struct {
	gamma    float64 // 0 means 1/n
	centered bool
	seeded   bool
	seed     int64
	solver   []eigen.Option
	logger   zerolog.Logger
}

// WithGamma makes Update weight every new sample by gamma ∈ (0, 1] instead
// of 1/n. Larger values forget the past faster.
func WithGamma(gamma float64) Option {
	if math.IsNaN(gamma) || gamma <= 0 || gamma > 1 {
		panic(panicGammaInvalid)
	}

	return func(o *Options) { o.gamma = gamma }
}

// WithCenteredUpdate switches to the mean-centred update rule (see package doc).
func WithCenteredUpdate() Option {
	return func(o *Options) { o.centered = true }
}

// WithSeed makes every extraction reproducible: the estimator draws the
// solver seed for each call from a source seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.seeded = true
		o.seed = seed
	}
}

// WithThreshold forwards eigen.WithThreshold to every extraction.
func WithThreshold(t float64) Option {
	set := eigen.WithThreshold(t) // panics early on nonsense

	return func(o *Options) { o.solver = append(o.solver, set) }
}

// WithMaxIter forwards eigen.WithMaxIter to every extraction.
func WithMaxIter(n int) Option {
	set := eigen.WithMaxIter(n)

	return func(o *Options) { o.solver = append(o.solver, set) }
}

// WithLogger sets the logger used for debug events. Default: zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(user ...Option) Options {
	o := Options{logger: zerolog.Nop()}
	for _, set := range user {
		set(&o)
	}

	return o
}
