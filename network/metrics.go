// SPDX-License-Identifier: MIT

package network

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records pipeline counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	aboveOne prometheus.Counter
	errors   *prometheus.CounterVec
	stages   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered (useful in tests).
// Panics if the names are already registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// aboveOne counts normalized TOM entries greater than 1.
		aboveOne: f.NewCounter(prometheus.CounterOpts{
			Namespace: "wgcna",
			Subsystem: "tom",
			Name:      "entries_above_one_total",
			Help:      "Normalized TOM entries greater than 1",
		}),
		// errors counts failed calls by error code.
		// Labels: code (zero_variance, unrecognized_correlation, ..., other)
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wgcna",
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Failed pipeline calls by error code",
		}, []string{"code"}),
		// stages measures wall time per pipeline stage.
		// Labels: stage (adjacency, connectivity, multiply, normalize)
		stages: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wgcna",
			Subsystem: "stage",
			Name:      "duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage"}),
	}
}

func (m *Metrics) observeStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stages.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) addAboveOne(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.aboveOne.Add(float64(n))
}

// recordError counts err under its ErrorCode, or "other" outside the taxonomy.
func (m *Metrics) recordError(err error) {
	if m == nil || err == nil {
		return
	}
	label := "other"
	if code := CodeOf(err); code != CodeNone {
		label = code.String()
	}
	m.errors.WithLabelValues(label).Inc()
}
