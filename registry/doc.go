// Package registry keeps named sequences of int64 or float64 elements and
// routes operations to them by name.
//
// Each name holds zero or one sequence. The backing (array or list) and the
// value kind (int or double) are fixed when the sequence is created:
//
//	reg := registry.New(registry.WithLogger(logger))
//	_ = reg.Create("scores", sequence.KindArray, registry.ValueInt)
//	_ = reg.Append("scores", registry.IntValue(10))
//	_ = reg.AppendImmutable("scores", registry.IntValue(20), "scores-v2")
//
// Persistent operations store their result under a new name and leave the
// original untouched. The new name must be non-empty and unused.
//
// Values are passed as Value. Ints are accepted by double sequences; doubles
// are rejected by int sequences with errors.ErrTypeMismatch, as is Concat
// between sequences of different value kinds or backings.
//
// Every write operation publishes an Event to the optional Listener after the lock
// is released and is logged through slog. WithMetrics records operations in
// the core metrics of a metric.MetricsRegistry.
package registry
