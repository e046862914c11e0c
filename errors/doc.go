// Package errors provides standardized error handling patterns for seqstreams.
//
// # Overview
//
// The errors package implements a three-class error classification system: Transient
// (temporary, retryable), Invalid (bad input, non-retryable), and Fatal (unrecoverable,
// stop processing). Stores, sequences and the registry only ever raise Invalid errors:
// every failure they report is a contract violation by the caller, detected before any
// state is modified.
//
// # Sequence Errors
//
// Positional access uses a small, fixed set of sentinels:
//
//   - ErrOutOfRange: index or inclusive range outside valid bounds, empty-collection access,
//     invalid insertion position
//   - ErrInvalidArgument: nil collaborator (concat target) or negative size
//   - ErrTypeMismatch: concat between different backing kinds or value kinds
//   - ErrSequenceNotFound, ErrSequenceExists: registry name bookkeeping
//
// Callers match them with the standard library:
//
//	if _, err := seq.Get(10); errors.Is(err, errors.ErrOutOfRange) {
//	    // recover
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// OutOfRange, OutOfRangeSpan and InvalidArgument are shorthands for the sequence sentinels:
//
//	return errors.OutOfRange("DynamicArray", "Get", index, a.size)
//
// # Integration with errors.As/Is
//
//	var ce *errors.ClassifiedError
//	if errors.As(err, &ce) {
//	    slog.Warn("operation rejected", "component", ce.Component, "class", ce.Class)
//	}
//
// # Thread Safety
//
// All classification and wrapping operations are thread-safe. Error variables are
// immutable and the ClassifiedError type is safe to share across goroutines after creation.
package errors
