package sequence

import (
	"fmt"
	"io"
	"strings"

	"github.com/c360/seqstreams/errors"
)

// Kind identifies the store backing a Sequence.
type Kind int

const (
	// KindArray is backed by a dynarray.DynamicArray
	KindArray Kind = iota
	// KindList is backed by a linkedlist.LinkedList
	KindList
)

// String returns the lower-case name used in config files and the shell.
func (k Kind) String() string {
	switch k {
	case KindArray:
		return "array"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts "array" or "list" (any case) into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "array":
		return KindArray, nil
	case "list":
		return KindList, nil
	default:
		return 0, errors.InvalidArgument("Sequence", "ParseKind", fmt.Sprintf("unknown kind %q", s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Sequence is an ordered collection with positional access, implemented by
// ArraySequence and ListSequence.
//
// Mutating operations (Append, Prepend, InsertAt, Set, Concat) change the
// receiver and return it so calls can be chained. The *Immutable forms return
// a new sequence with the same backing and never modify the receiver.
// A call that fails validation leaves the receiver unchanged.
//
// Sequences are not safe for concurrent use.
type Sequence[T any] interface {
	First() (T, error)
	Last() (T, error)
	Get(index int) (T, error)
	Len() int
	Kind() Kind

	// Subsequence returns a new sequence holding the inclusive range [start, end].
	Subsequence(start, end int) (Sequence[T], error)

	Append(item T) Sequence[T]
	Prepend(item T) Sequence[T]
	InsertAt(item T, index int) (Sequence[T], error)
	Set(index int, item T) (Sequence[T], error)
	Concat(other Sequence[T]) (Sequence[T], error)

	AppendImmutable(item T) Sequence[T]
	PrependImmutable(item T) Sequence[T]
	InsertAtImmutable(item T, index int) (Sequence[T], error)
	SetImmutable(index int, item T) (Sequence[T], error)
	ConcatImmutable(other Sequence[T]) (Sequence[T], error)

	Clone() Sequence[T]
	Items() []T
	Print(w io.Writer) error
	String() string
	Stats() *Statistics
}

// New builds a sequence of the given kind holding copies of items.
func New[T any](kind Kind, items []T, opts ...Option[T]) (Sequence[T], error) {
	switch kind {
	case KindArray:
		return NewArraySequenceFrom(items, opts...), nil
	case KindList:
		return NewListSequenceFrom(items, opts...), nil
	default:
		return nil, errors.InvalidArgument("Sequence", "New", fmt.Sprintf("unknown kind %s", kind))
	}
}

// checkConcat validates the argument of Concat and ConcatImmutable.
func checkConcat[T any](kind Kind, other Sequence[T], component, method string) error {
	if isNil(other) {
		return errors.InvalidArgument(component, method, "nil sequence")
	}
	if other.Kind() != kind {
		return errors.WrapInvalid(errors.ErrTypeMismatch, component, method,
			fmt.Sprintf("cannot concat %s onto %s", other.Kind(), kind))
	}
	return nil
}

func isNil[T any](s Sequence[T]) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *ArraySequence[T]:
		return v == nil || v.store == nil
	case *ListSequence[T]:
		return v == nil || v.store == nil
	default:
		return false
	}
}
