package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the registry-level metrics shared by every named sequence.
// Per-sequence counters live in package sequence and are opt-in.
type Metrics struct {
	SequencesActive   *prometheus.GaugeVec
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ErrorsTotal       *prometheus.CounterVec
	RegistryEvents    *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		SequencesActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "seqstreams",
				Subsystem: "registry",
				Name:      "sequences",
				Help:      "Number of named sequences by backing kind and value kind",
			},
			[]string{"kind", "value_kind"},
		),

		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seqstreams",
				Subsystem: "registry",
				Name:      "operations_total",
				Help:      "Total number of registry operations",
			},
			[]string{"operation", "status"},
		),

		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "seqstreams",
				Subsystem: "registry",
				Name:      "operation_duration_seconds",
				Help:      "Registry operation duration in seconds",
				Buckets:   []float64{.000001, .00001, .0001, .001, .01, .1, 1},
			},
			[]string{"operation"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seqstreams",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of rejected operations by error class",
			},
			[]string{"operation", "class"},
		),

		RegistryEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seqstreams",
				Subsystem: "registry",
				Name:      "events_total",
				Help:      "Total number of registry lifecycle events",
			},
			[]string{"event"},
		),
	}
}

// RecordSequenceCount sets the number of live sequences for a kind pair
func (c *Metrics) RecordSequenceCount(kind, valueKind string, count int) {
	c.SequencesActive.WithLabelValues(kind, valueKind).Set(float64(count))
}

// RecordOperation increments the operation counter and observes its duration
func (c *Metrics) RecordOperation(operation string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.OperationsTotal.WithLabelValues(operation, status).Inc()
	c.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordError increments the error counter
func (c *Metrics) RecordError(operation, class string) {
	c.ErrorsTotal.WithLabelValues(operation, class).Inc()
}

// RecordEvent increments the lifecycle event counter
func (c *Metrics) RecordEvent(event string) {
	c.RegistryEvents.WithLabelValues(event).Inc()
}
