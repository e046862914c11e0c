package sequence

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/seqstreams/metric"
)

// sequenceMetrics holds the Prometheus collectors of one metrics label.
type sequenceMetrics struct {
	reads         prometheus.Counter
	mutations     prometheus.Counter
	persistentOps prometheus.Counter
	errors        prometheus.Counter
	length        prometheus.Gauge
}

func newSequenceMetrics(registry *metric.MetricsRegistry, label string) (*sequenceMetrics, error) {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "seqstreams",
			Subsystem:   "sequence",
			Name:        name,
			ConstLabels: prometheus.Labels{"component": label},
			Help:        help,
		})
	}

	m := &sequenceMetrics{
		reads:         counter("reads_total", "Total number of positional reads"),
		mutations:     counter("mutations_total", "Total number of in-place modifications"),
		persistentOps: counter("persistent_ops_total", "Total number of persistent operations"),
		errors:        counter("errors_total", "Total number of rejected operations"),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "seqstreams",
			Subsystem:   "sequence",
			Name:        "length",
			ConstLabels: prometheus.Labels{"component": label},
			Help:        "Length of the most recently modified sequence",
		}),
	}

	counters := []struct {
		name      string
		collector prometheus.Counter
	}{
		{"sequence_reads", m.reads},
		{"sequence_mutations", m.mutations},
		{"sequence_persistent_ops", m.persistentOps},
		{"sequence_errors", m.errors},
	}

	var registered []string
	rollback := func() {
		for _, name := range registered {
			registry.Unregister(label, name)
		}
	}

	for _, c := range counters {
		if err := registry.RegisterCounter(label, c.name, c.collector); err != nil {
			rollback()
			return nil, err
		}
		registered = append(registered, c.name)
	}
	if err := registry.RegisterGauge(label, "sequence_length", m.length); err != nil {
		rollback()
		return nil, err
	}

	return m, nil
}

func (m *sequenceMetrics) recordRead() {
	m.reads.Inc()
}

func (m *sequenceMetrics) recordMutation(length int) {
	m.mutations.Inc()
	m.length.Set(float64(length))
}

func (m *sequenceMetrics) recordPersistent(length int) {
	m.persistentOps.Inc()
	m.length.Set(float64(length))
}

func (m *sequenceMetrics) recordError() {
	m.errors.Inc()
}
