package sequence

import (
	"io"

	"github.com/c360/seqstreams/pkg/dynarray"
)

const arrayComponent = "ArraySequence"

// ArraySequence is a Sequence backed by a growable array.
// Positional access is O(1); Prepend and InsertAt shift elements.
// The zero value is an empty sequence with default options.
type ArraySequence[T any] struct {
	tracker[T]
	store *dynarray.DynamicArray[T]
}

// NewArraySequence creates an empty array-backed sequence.
func NewArraySequence[T any](opts ...Option[T]) *ArraySequence[T] {
	return newArraySequence(dynarray.New[T](), applyOptions(opts...))
}

// NewArraySequenceFrom creates an array-backed sequence holding copies of items.
func NewArraySequenceFrom[T any](items []T, opts ...Option[T]) *ArraySequence[T] {
	return newArraySequence(dynarray.FromSlice(items), applyOptions(opts...))
}

// NewArraySequenceWithSize creates a sequence of size zero values.
func NewArraySequenceWithSize[T any](size int, opts ...Option[T]) (*ArraySequence[T], error) {
	store, err := dynarray.NewWithSize[T](size)
	if err != nil {
		return nil, err
	}
	return newArraySequence(store, applyOptions(opts...)), nil
}

// WrapArray creates a sequence from a deep copy of array.
func WrapArray[T any](array *dynarray.DynamicArray[T], opts ...Option[T]) *ArraySequence[T] {
	return newArraySequence(array.Clone(), applyOptions(opts...))
}

func newArraySequence[T any](store *dynarray.DynamicArray[T], opts *sequenceOptions[T]) *ArraySequence[T] {
	if store == nil {
		store = dynarray.New[T]()
	}
	return &ArraySequence[T]{tracker: newTracker(opts, store.Len()), store: store}
}

// derive wraps store in a new sequence sharing this sequence's options.
func (s *ArraySequence[T]) derive(store *dynarray.DynamicArray[T]) *ArraySequence[T] {
	s.init()
	return newArraySequence(store, s.opts)
}

// data returns the backing store, creating an empty one for a zero ArraySequence.
func (s *ArraySequence[T]) data() *dynarray.DynamicArray[T] {
	if s.store == nil {
		s.store = dynarray.New[T]()
	}
	return s.store
}

// Kind returns KindArray.
func (s *ArraySequence[T]) Kind() Kind {
	return KindArray
}

// Len returns the number of elements.
func (s *ArraySequence[T]) Len() int {
	return s.data().Len()
}

// First returns the first element.
func (s *ArraySequence[T]) First() (T, error) {
	v, err := s.data().First()
	if err != nil {
		return v, s.fail("First", err)
	}
	s.read()
	return v, nil
}

// Last returns the last element.
func (s *ArraySequence[T]) Last() (T, error) {
	v, err := s.data().Last()
	if err != nil {
		return v, s.fail("Last", err)
	}
	s.read()
	return v, nil
}

// Get returns the element at index.
func (s *ArraySequence[T]) Get(index int) (T, error) {
	v, err := s.data().Get(index)
	if err != nil {
		return v, s.fail("Get", err)
	}
	s.read()
	return v, nil
}

// Subsequence returns a new sequence holding elements start through end inclusive.
func (s *ArraySequence[T]) Subsequence(start, end int) (Sequence[T], error) {
	sub, err := s.data().SubArray(start, end)
	if err != nil {
		return nil, s.fail("Subsequence", err)
	}
	s.read()
	return s.derive(sub), nil
}

// Append adds item at the end and returns the receiver.
func (s *ArraySequence[T]) Append(item T) Sequence[T] {
	s.data().Append(item)
	s.mutated(s.data().Len())
	return s
}

// Prepend adds item at the front and returns the receiver.
func (s *ArraySequence[T]) Prepend(item T) Sequence[T] {
	s.data().Prepend(item)
	s.mutated(s.data().Len())
	return s
}

// InsertAt places item at index, 0 <= index <= Len().
func (s *ArraySequence[T]) InsertAt(item T, index int) (Sequence[T], error) {
	if err := s.data().InsertAt(item, index); err != nil {
		return nil, s.fail("InsertAt", err)
	}
	s.mutated(s.data().Len())
	return s, nil
}

// Set replaces the element at index.
func (s *ArraySequence[T]) Set(index int, item T) (Sequence[T], error) {
	if err := s.data().Set(index, item); err != nil {
		return nil, s.fail("Set", err)
	}
	s.mutated(s.data().Len())
	return s, nil
}

// Concat appends copies of other's elements to the receiver.
// other must be a non-nil array-backed sequence; it may be the receiver itself.
func (s *ArraySequence[T]) Concat(other Sequence[T]) (Sequence[T], error) {
	merged, err := s.concat(other, "Concat")
	if err != nil {
		return nil, s.fail("Concat", err)
	}
	s.store = merged
	s.mutated(s.data().Len())
	return s, nil
}

// AppendImmutable returns a copy with item appended.
func (s *ArraySequence[T]) AppendImmutable(item T) Sequence[T] {
	out := s.data().Clone()
	out.Append(item)
	s.persisted(out.Len())
	return s.derive(out)
}

// PrependImmutable returns a copy with item at the front.
func (s *ArraySequence[T]) PrependImmutable(item T) Sequence[T] {
	out := s.data().Clone()
	out.Prepend(item)
	s.persisted(out.Len())
	return s.derive(out)
}

// InsertAtImmutable returns a copy with item placed at index.
func (s *ArraySequence[T]) InsertAtImmutable(item T, index int) (Sequence[T], error) {
	out := s.data().Clone()
	if err := out.InsertAt(item, index); err != nil {
		return nil, s.fail("InsertAtImmutable", err)
	}
	s.persisted(out.Len())
	return s.derive(out), nil
}

// SetImmutable returns a copy with the element at index replaced.
func (s *ArraySequence[T]) SetImmutable(index int, item T) (Sequence[T], error) {
	out := s.data().Clone()
	if err := out.Set(index, item); err != nil {
		return nil, s.fail("SetImmutable", err)
	}
	s.persisted(out.Len())
	return s.derive(out), nil
}

// ConcatImmutable returns a new sequence holding the receiver followed by other.
func (s *ArraySequence[T]) ConcatImmutable(other Sequence[T]) (Sequence[T], error) {
	merged, err := s.concat(other, "ConcatImmutable")
	if err != nil {
		return nil, s.fail("ConcatImmutable", err)
	}
	s.persisted(merged.Len())
	return s.derive(merged), nil
}

func (s *ArraySequence[T]) concat(other Sequence[T], method string) (*dynarray.DynamicArray[T], error) {
	if err := checkConcat(KindArray, other, arrayComponent, method); err != nil {
		return nil, err
	}
	if o, ok := other.(*ArraySequence[T]); ok {
		return s.data().Concat(o.data())
	}
	return s.data().Concat(dynarray.FromSlice(other.Items()))
}

// Clone returns a deep copy with fresh statistics.
func (s *ArraySequence[T]) Clone() Sequence[T] {
	return s.derive(s.data().Clone())
}

// Items returns a copy of the elements in order.
func (s *ArraySequence[T]) Items() []T {
	return s.data().Items()
}

// Array returns a deep copy of the backing store.
func (s *ArraySequence[T]) Array() *dynarray.DynamicArray[T] {
	return s.data().Clone()
}

// Print writes the elements separated by spaces, followed by a newline.
func (s *ArraySequence[T]) Print(w io.Writer) error {
	s.read()
	return s.data().Print(w)
}

// String formats the sequence as [a b c].
func (s *ArraySequence[T]) String() string {
	return s.data().String()
}
