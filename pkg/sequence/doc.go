// Package sequence provides a backing-agnostic ordered collection with two
// interchangeable implementations: ArraySequence over a growable array and
// ListSequence over a singly linked list.
//
// Both satisfy Sequence[T] and behave identically apart from complexity.
// Code that holds a Sequence[T] never needs to know which backing it has.
//
// # Mutating and Persistent Operations
//
// Append, Prepend, InsertAt, Set and Concat modify the receiver and return it:
//
//	seq := sequence.NewArraySequence[int]()
//	seq.Append(2).Append(3).Prepend(1) // [1 2 3]
//
// Each has an *Immutable counterpart that deep-copies the store, applies the
// change to the copy and returns a new sequence of the same backing. The
// receiver is never touched:
//
//	next, err := seq.InsertAtImmutable(99, 1) // next = [1 99 2 3], seq = [1 2 3]
//
// Element types with reference semantics can implement cloner.Cloner[T] so
// copies do not share state.
//
// # Errors
//
// Index errors wrap errors.ErrOutOfRange, a nil concat argument or negative
// size wraps errors.ErrInvalidArgument, and concatenating different backings
// wraps errors.ErrTypeMismatch. All are classified as invalid. Arguments are
// checked before any change, so a failed call leaves the receiver as it was.
//
// # Observability
//
// Every sequence keeps a Statistics value (reads, mutations, persistent ops,
// failures, max length). WithMetrics additionally exports these counters to a
// metric.MetricsRegistry under a component label; sequences derived from one
// another share the label's collectors. Rejected operations are logged at
// debug level through the logger given with WithLogger.
//
// Sequences are not safe for concurrent use.
package sequence
