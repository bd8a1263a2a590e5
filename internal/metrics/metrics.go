// Package metrics holds the Prometheus collectors of a streampca run.
//
// The CLI is batch-style, so metrics are written once at the end in the
// node-exporter textfile format instead of being served over HTTP.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/streampca/eigen"
	"github.com/katalvlaran/streampca/ipca"
	"github.com/katalvlaran/streampca/matrix"
)

const namespace = "streampca"

// Rejection reasons used as the "reason" label.
const (
	ReasonDimension = "dimension"
	ReasonNonFinite = "non_finite"
	ReasonWeight    = "weight"
	ReasonOther     = "other"
)

// Recorder owns a private registry and the run's collectors.
type Recorder struct {
	reg *prometheus.Registry

	samples        prometheus.Counter
	rejected       *prometheus.CounterVec
	extractions    prometheus.Counter
	failures       prometheus.Counter
	extractSeconds prometheus.Histogram
	iterations     *prometheus.GaugeVec
	eigenvalues    *prometheus.GaugeVec
	drift          prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Samples absorbed by the estimator, initial batch included.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_updates_total",
			Help:      "Samples rejected by Update, by reason.",
		}, []string{"reason"}),
		extractions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Eigenbasis extractions attempted.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "convergence_failures_total",
			Help:      "Extractions that ended in a convergence failure.",
		}),
		extractSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Wall time of one eigenbasis extraction.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		iterations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "power_iterations",
			Help:      "Power-iteration steps of the latest extraction, by component.",
		}, []string{"component"}),
		eigenvalues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "eigenvalue",
			Help:      "Latest eigenvalue estimate, by component.",
		}, []string{"component"}),
		drift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "direction_drift",
			Help:      "Latest centred inner product of the leading eigenvector with the reference direction.",
		}),
	}
	r.reg.MustRegister(r.samples, r.rejected, r.extractions, r.failures,
		r.extractSeconds, r.iterations, r.eigenvalues, r.drift)

	return r
}

// Registry exposes the private registry (for tests and exporters).
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// AddSamples counts n absorbed samples.
func (r *Recorder) AddSamples(n int) { r.samples.Add(float64(n)) }

// Rejected counts one rejected update, classified from err.
func (r *Recorder) Rejected(err error) {
	r.rejected.WithLabelValues(Reason(err)).Inc()
}

// Reason maps an Update error onto a rejection label.
func Reason(err error) string {
	switch {
	case errors.Is(err, ipca.ErrDimensionMismatch):
		return ReasonDimension
	case errors.Is(err, ipca.ErrInvalidWeight):
		return ReasonWeight
	case errors.Is(err, matrix.ErrNaNInf):
		return ReasonNonFinite
	default:
		return ReasonOther
	}
}

// Extraction records one extraction attempt. basis is nil on failure.
func (r *Recorder) Extraction(basis *eigen.Basis, took time.Duration, err error) {
	r.extractions.Inc()
	r.extractSeconds.Observe(took.Seconds())
	if err != nil {
		if errors.Is(err, ipca.ErrConvergenceFailure) {
			r.failures.Inc()
		}

		return
	}
	for i, v := range basis.Values {
		c := strconv.Itoa(i)
		r.eigenvalues.WithLabelValues(c).Set(v)
		r.iterations.WithLabelValues(c).Set(float64(basis.Iterations[i]))
	}
}

// Drift records the latest direction comparison.
func (r *Recorder) Drift(v float64) { r.drift.Set(v) }

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
