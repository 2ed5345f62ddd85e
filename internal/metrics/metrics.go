// Package metrics exports Prometheus instruments for engine dispatches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the dispatch instruments. A nil *Metrics records nothing.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	elements   *prometheus.CounterVec
}

// New registers the instruments with reg. Passing nil registers nothing,
// which lets tests build engines without a registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		// Labels: op (take, where, copy), device, result (ok, error)
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndview",
			Subsystem: "engine",
			Name:      "dispatches_total",
			Help:      "Backend dispatches by operation, device and result",
		}, []string{"op", "device", "result"}),

		// Labels: op, device
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ndview",
			Subsystem: "engine",
			Name:      "dispatch_duration_seconds",
			Help:      "Wall time of backend dispatches",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "device"}),

		// Labels: op, device
		elements: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ndview",
			Subsystem: "engine",
			Name:      "elements_total",
			Help:      "Output elements produced by successful dispatches",
		}, []string{"op", "device"}),
	}
}

// Observe records one dispatch.
func (m *Metrics) Observe(op, device string, elapsed time.Duration, elements int, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.dispatches.WithLabelValues(op, device, result).Inc()
	m.duration.WithLabelValues(op, device).Observe(elapsed.Seconds())
	if err == nil {
		m.elements.WithLabelValues(op, device).Add(float64(elements))
	}
}
