package sequence

import (
	"log/slog"

	"github.com/c360/seqstreams/metric"
)

// Option configures a sequence using the functional options pattern.
type Option[T any] func(*sequenceOptions[T])

// sequenceOptions is shared by a sequence and every sequence derived from it.
// Statistics are not part of it: each sequence gets its own.
type sequenceOptions[T any] struct {
	logger *slog.Logger
	name   string

	// metricsReg is optional - if provided, operations are also exported as Prometheus metrics
	metricsReg   *metric.MetricsRegistry
	metricsLabel string

	// resolved once in applyOptions
	metrics *sequenceMetrics
}

// WithLogger sets the logger used to report rejected operations.
// Defaults to slog.Default().
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(opts *sequenceOptions[T]) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

// WithName attaches a name that is added to every log record.
func WithName[T any](name string) Option[T] {
	return func(opts *sequenceOptions[T]) {
		opts.name = name
	}
}

// WithMetrics enables Prometheus metrics, using label as the component const label.
// A label can be registered once per registry; ignored if registry is nil or label is empty.
func WithMetrics[T any](registry *metric.MetricsRegistry, label string) Option[T] {
	return func(opts *sequenceOptions[T]) {
		if registry != nil && label != "" {
			opts.metricsReg = registry
			opts.metricsLabel = label
		}
	}
}

func applyOptions[T any](options ...Option[T]) *sequenceOptions[T] {
	opts := &sequenceOptions[T]{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	if opts.logger == nil {
		opts.logger = slog.Default()
	}
	if opts.name != "" {
		opts.logger = opts.logger.With("sequence", opts.name)
	}

	if opts.metricsReg != nil {
		m, err := newSequenceMetrics(opts.metricsReg, opts.metricsLabel)
		if err != nil {
			// Constructors do not fail; the sequence runs without metrics instead
			opts.logger.Warn("sequence metrics disabled",
				"label", opts.metricsLabel, "error", err)
		} else {
			opts.metrics = m
		}
	}

	return opts
}
