package sequence

import (
	"io"

	"github.com/c360/seqstreams/pkg/linkedlist"
)

const listComponent = "ListSequence"

// ListSequence is a Sequence backed by a singly linked list.
// Append, Prepend, First and Last are O(1); positional access walks from the head.
// The zero value is an empty sequence with default options.
type ListSequence[T any] struct {
	tracker[T]
	store *linkedlist.LinkedList[T]
}

// NewListSequence creates an empty list-backed sequence.
func NewListSequence[T any](opts ...Option[T]) *ListSequence[T] {
	return newListSequence(linkedlist.New[T](), applyOptions(opts...))
}

// NewListSequenceFrom creates a list-backed sequence holding copies of items.
func NewListSequenceFrom[T any](items []T, opts ...Option[T]) *ListSequence[T] {
	return newListSequence(linkedlist.FromSlice(items), applyOptions(opts...))
}

// NewListSequenceWithSize creates a sequence of size zero values.
func NewListSequenceWithSize[T any](size int, opts ...Option[T]) (*ListSequence[T], error) {
	store, err := linkedlist.NewWithSize[T](size)
	if err != nil {
		return nil, err
	}
	return newListSequence(store, applyOptions(opts...)), nil
}

// WrapList creates a sequence from a deep copy of list.
func WrapList[T any](list *linkedlist.LinkedList[T], opts ...Option[T]) *ListSequence[T] {
	return newListSequence(list.Clone(), applyOptions(opts...))
}

func newListSequence[T any](store *linkedlist.LinkedList[T], opts *sequenceOptions[T]) *ListSequence[T] {
	if store == nil {
		store = linkedlist.New[T]()
	}
	return &ListSequence[T]{tracker: newTracker(opts, store.Len()), store: store}
}

// derive wraps store in a new sequence sharing this sequence's options.
func (s *ListSequence[T]) derive(store *linkedlist.LinkedList[T]) *ListSequence[T] {
	s.init()
	return newListSequence(store, s.opts)
}

// data returns the backing store, creating an empty one for a zero ListSequence.
func (s *ListSequence[T]) data() *linkedlist.LinkedList[T] {
	if s.store == nil {
		s.store = linkedlist.New[T]()
	}
	return s.store
}

// Kind returns KindList.
func (s *ListSequence[T]) Kind() Kind {
	return KindList
}

// Len returns the number of elements.
func (s *ListSequence[T]) Len() int {
	return s.data().Len()
}

// First returns the first element.
func (s *ListSequence[T]) First() (T, error) {
	v, err := s.data().First()
	if err != nil {
		return v, s.fail("First", err)
	}
	s.read()
	return v, nil
}

// Last returns the last element.
func (s *ListSequence[T]) Last() (T, error) {
	v, err := s.data().Last()
	if err != nil {
		return v, s.fail("Last", err)
	}
	s.read()
	return v, nil
}

// Get returns the element at index.
func (s *ListSequence[T]) Get(index int) (T, error) {
	v, err := s.data().Get(index)
	if err != nil {
		return v, s.fail("Get", err)
	}
	s.read()
	return v, nil
}

// Subsequence returns a new sequence holding elements start through end inclusive.
func (s *ListSequence[T]) Subsequence(start, end int) (Sequence[T], error) {
	sub, err := s.data().SubList(start, end)
	if err != nil {
		return nil, s.fail("Subsequence", err)
	}
	s.read()
	return s.derive(sub), nil
}

// Append adds item at the end and returns the receiver.
func (s *ListSequence[T]) Append(item T) Sequence[T] {
	s.data().Append(item)
	s.mutated(s.data().Len())
	return s
}

// Prepend adds item at the front and returns the receiver.
func (s *ListSequence[T]) Prepend(item T) Sequence[T] {
	s.data().Prepend(item)
	s.mutated(s.data().Len())
	return s
}

// InsertAt places item at index, 0 <= index <= Len().
func (s *ListSequence[T]) InsertAt(item T, index int) (Sequence[T], error) {
	if err := s.data().InsertAt(item, index); err != nil {
		return nil, s.fail("InsertAt", err)
	}
	s.mutated(s.data().Len())
	return s, nil
}

// Set replaces the element at index.
func (s *ListSequence[T]) Set(index int, item T) (Sequence[T], error) {
	if err := s.data().Set(index, item); err != nil {
		return nil, s.fail("Set", err)
	}
	s.mutated(s.data().Len())
	return s, nil
}

// Concat appends copies of other's elements to the receiver.
// other must be a non-nil list-backed sequence; it may be the receiver itself.
func (s *ListSequence[T]) Concat(other Sequence[T]) (Sequence[T], error) {
	merged, err := s.concat(other, "Concat")
	if err != nil {
		return nil, s.fail("Concat", err)
	}
	s.store = merged
	s.mutated(s.data().Len())
	return s, nil
}

// AppendImmutable returns a copy with item appended.
func (s *ListSequence[T]) AppendImmutable(item T) Sequence[T] {
	out := s.data().Clone()
	out.Append(item)
	s.persisted(out.Len())
	return s.derive(out)
}

// PrependImmutable returns a copy with item at the front.
func (s *ListSequence[T]) PrependImmutable(item T) Sequence[T] {
	out := s.data().Clone()
	out.Prepend(item)
	s.persisted(out.Len())
	return s.derive(out)
}

// InsertAtImmutable returns a copy with item placed at index.
func (s *ListSequence[T]) InsertAtImmutable(item T, index int) (Sequence[T], error) {
	out, err := s.data().InsertAtImmutable(item, index)
	if err != nil {
		return nil, s.fail("InsertAtImmutable", err)
	}
	s.persisted(out.Len())
	return s.derive(out), nil
}

// SetImmutable returns a copy with the element at index replaced.
func (s *ListSequence[T]) SetImmutable(index int, item T) (Sequence[T], error) {
	out := s.data().Clone()
	if err := out.Set(index, item); err != nil {
		return nil, s.fail("SetImmutable", err)
	}
	s.persisted(out.Len())
	return s.derive(out), nil
}

// ConcatImmutable returns a new sequence holding the receiver followed by other.
func (s *ListSequence[T]) ConcatImmutable(other Sequence[T]) (Sequence[T], error) {
	merged, err := s.concat(other, "ConcatImmutable")
	if err != nil {
		return nil, s.fail("ConcatImmutable", err)
	}
	s.persisted(merged.Len())
	return s.derive(merged), nil
}

func (s *ListSequence[T]) concat(other Sequence[T], method string) (*linkedlist.LinkedList[T], error) {
	if err := checkConcat(KindList, other, listComponent, method); err != nil {
		return nil, err
	}
	if o, ok := other.(*ListSequence[T]); ok {
		return s.data().Concat(o.data())
	}
	return s.data().Concat(linkedlist.FromSlice(other.Items()))
}

// Clone returns a deep copy with fresh statistics.
func (s *ListSequence[T]) Clone() Sequence[T] {
	return s.derive(s.data().Clone())
}

// Items returns a copy of the elements in order.
func (s *ListSequence[T]) Items() []T {
	return s.data().Items()
}

// List returns a deep copy of the backing store.
func (s *ListSequence[T]) List() *linkedlist.LinkedList[T] {
	return s.data().Clone()
}

// Print writes the elements joined by " -> ", followed by a newline.
func (s *ListSequence[T]) Print(w io.Writer) error {
	s.read()
	return s.data().Print(w)
}

// String formats the sequence as [a b c].
func (s *ListSequence[T]) String() string {
	return s.data().String()
}
