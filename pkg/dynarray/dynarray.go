// Package dynarray provides DynamicArray, a contiguous growable array store.
//
// A DynamicArray owns one buffer of length Cap() holding Len() logically valid
// elements at indices [0, Len()). When an append, prepend or insert finds the
// buffer full, the capacity doubles (starting at 1), so a run of mutations costs
// amortized O(1) per call. Capacity never shrinks on its own.
//
// Every operation validates all of its arguments before touching the buffer: a
// failed call leaves the array exactly as it was. Failures are classified
// errors wrapping errors.ErrOutOfRange or errors.ErrInvalidArgument.
//
// DynamicArray is not safe for concurrent use.
package dynarray

import (
	"fmt"
	"io"
	"strings"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/pkg/cloner"
)

const component = "DynamicArray"

// DynamicArray is a contiguous growable array of T.
// The zero value is an empty array ready to use.
type DynamicArray[T any] struct {
	data []T // len(data) is the capacity
	size int
}

// New returns an empty array.
func New[T any]() *DynamicArray[T] {
	return &DynamicArray[T]{}
}

// NewWithSize returns an array of size zero-valued elements.
func NewWithSize[T any](size int) (*DynamicArray[T], error) {
	if size < 0 {
		return nil, errors.InvalidArgument(component, "NewWithSize",
			fmt.Sprintf("negative size %d", size))
	}
	return &DynamicArray[T]{data: make([]T, size), size: size}, nil
}

// FromSlice returns an array holding copies of items. A nil or empty slice
// gives an empty array.
func FromSlice[T any](items []T) *DynamicArray[T] {
	if len(items) == 0 {
		return New[T]()
	}
	return &DynamicArray[T]{data: cloner.Slice(items, cloner.For[T]()), size: len(items)}
}

// Len returns the number of elements.
func (a *DynamicArray[T]) Len() int {
	return a.size
}

// Cap returns the number of elements the buffer can hold before growing.
func (a *DynamicArray[T]) Cap() int {
	return len(a.data)
}

// First returns the element at index 0.
func (a *DynamicArray[T]) First() (T, error) {
	if a.size == 0 {
		var zero T
		return zero, errors.OutOfRange(component, "First", 0, a.size)
	}
	return a.data[0], nil
}

// Last returns the element at index Len()-1.
func (a *DynamicArray[T]) Last() (T, error) {
	if a.size == 0 {
		var zero T
		return zero, errors.OutOfRange(component, "Last", -1, a.size)
	}
	return a.data[a.size-1], nil
}

// Get returns the element at index.
func (a *DynamicArray[T]) Get(index int) (T, error) {
	if index < 0 || index >= a.size {
		var zero T
		return zero, errors.OutOfRange(component, "Get", index, a.size)
	}
	return a.data[index], nil
}

// Set replaces the element at index.
func (a *DynamicArray[T]) Set(index int, value T) error {
	if index < 0 || index >= a.size {
		return errors.OutOfRange(component, "Set", index, a.size)
	}
	a.data[index] = value
	return nil
}

// Append places value at index Len(), growing the buffer first when it is full.
func (a *DynamicArray[T]) Append(value T) {
	a.ensureSpare()
	a.data[a.size] = value
	a.size++
}

// Prepend shifts every element one position right and places value at index 0.
func (a *DynamicArray[T]) Prepend(value T) {
	a.ensureSpare()
	copy(a.data[1:a.size+1], a.data[:a.size])
	a.data[0] = value
	a.size++
}

// InsertAt places value at index, shifting the elements at and after index right.
// index may equal Len(), which is the same as Append.
func (a *DynamicArray[T]) InsertAt(value T, index int) error {
	if index < 0 || index > a.size {
		return errors.OutOfRange(component, "InsertAt", index, a.size)
	}
	a.ensureSpare()
	copy(a.data[index+1:a.size+1], a.data[index:a.size])
	a.data[index] = value
	a.size++
	return nil
}

// Resize changes the logical size. Growing exposes zero-valued slots,
// shrinking zeroes the dropped slots but keeps the capacity.
func (a *DynamicArray[T]) Resize(newSize int) error {
	if newSize < 0 {
		return errors.InvalidArgument(component, "Resize",
			fmt.Sprintf("negative size %d", newSize))
	}
	if newSize > len(a.data) {
		a.grow(newSize)
	}
	if newSize < a.size {
		clear(a.data[newSize:a.size])
	}
	a.size = newSize
	return nil
}

// Clear sets the size to zero without releasing the buffer.
func (a *DynamicArray[T]) Clear() {
	clear(a.data[:a.size])
	a.size = 0
}

// SubArray returns a new array holding copies of the elements in the
// inclusive range [startIndex, endIndex]. It requires
// 0 <= startIndex <= endIndex <= Len()-1, so it always fails on an empty array.
func (a *DynamicArray[T]) SubArray(startIndex, endIndex int) (*DynamicArray[T], error) {
	if startIndex < 0 || endIndex >= a.size || startIndex > endIndex {
		return nil, errors.OutOfRangeSpan(component, "SubArray", startIndex, endIndex, a.size)
	}
	return FromSlice(a.data[startIndex : endIndex+1]), nil
}

// Concat returns a new array holding this array's elements followed by
// other's. Neither input is modified. a.Concat(a) is allowed.
func (a *DynamicArray[T]) Concat(other *DynamicArray[T]) (*DynamicArray[T], error) {
	if other == nil {
		return nil, errors.InvalidArgument(component, "Concat", "nil other")
	}
	copyFn := cloner.For[T]()
	out := &DynamicArray[T]{data: make([]T, a.size+other.size), size: a.size + other.size}
	for i := 0; i < a.size; i++ {
		out.data[i] = copyFn(a.data[i])
	}
	for i := 0; i < other.size; i++ {
		out.data[a.size+i] = copyFn(other.data[i])
	}
	return out, nil
}

// Clone returns a deep, independently owned copy with the same capacity.
func (a *DynamicArray[T]) Clone() *DynamicArray[T] {
	if a == nil {
		return nil
	}
	out := &DynamicArray[T]{data: make([]T, len(a.data)), size: a.size}
	copyFn := cloner.For[T]()
	for i := 0; i < a.size; i++ {
		out.data[i] = copyFn(a.data[i])
	}
	return out
}

// CopyFrom replaces the contents of a with deep copies of other's elements.
// Copying an array onto itself is a no-op.
func (a *DynamicArray[T]) CopyFrom(other *DynamicArray[T]) error {
	if other == nil {
		return errors.InvalidArgument(component, "CopyFrom", "nil other")
	}
	if a == other {
		return nil
	}
	clone := other.Clone()
	a.data, a.size = clone.data, clone.size
	return nil
}

// Items returns a copy of the logical contents. The result is never nil.
func (a *DynamicArray[T]) Items() []T {
	out := make([]T, a.size)
	copyFn := cloner.For[T]()
	for i := 0; i < a.size; i++ {
		out[i] = copyFn(a.data[i])
	}
	return out
}

// Print writes the elements to w, space separated, followed by a newline.
func (a *DynamicArray[T]) Print(w io.Writer) error {
	_, err := fmt.Fprintln(w, a.join(" "))
	return err
}

// String returns the elements in brackets, e.g. "[1 2 3]".
func (a *DynamicArray[T]) String() string {
	return "[" + a.join(" ") + "]"
}

func (a *DynamicArray[T]) join(sep string) string {
	var sb strings.Builder
	for i := 0; i < a.size; i++ {
		if i > 0 {
			sb.WriteString(sep)
		}
		fmt.Fprint(&sb, a.data[i])
	}
	return sb.String()
}

// ensureSpare makes room for one more element.
func (a *DynamicArray[T]) ensureSpare() {
	if a.size < len(a.data) {
		return
	}
	a.grow(max(1, len(a.data)*2))
}

// grow reallocates the buffer to exactly capacity elements.
func (a *DynamicArray[T]) grow(capacity int) {
	data := make([]T, capacity)
	copy(data, a.data[:a.size])
	a.data = data
}
