// Package linkedlist provides LinkedList, a singly linked node store.
//
// Each node is reachable only through its predecessor (or the list head), so a
// node belongs to exactly one list. Copies and concatenations always build new
// nodes; two lists never share a node. A cached tail pointer makes Append, Last
// and Prepend O(1); positional access walks from the head in O(index).
//
// Error contracts match package dynarray: ErrOutOfRange for bad positions and
// ranges, ErrInvalidArgument for nil collaborators and negative sizes. All
// checks happen before any node is touched.
//
// LinkedList is not safe for concurrent use.
package linkedlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/c360/seqstreams/errors"
	"github.com/c360/seqstreams/pkg/cloner"
)

const component = "LinkedList"

type node[T any] struct {
	value T
	next  *node[T]
}

// LinkedList is a singly linked list of T.
// The zero value is an empty list ready to use.
type LinkedList[T any] struct {
	head   *node[T]
	tail   *node[T] // last node, nil when length == 0
	length int
}

// New returns an empty list.
func New[T any]() *LinkedList[T] {
	return &LinkedList[T]{}
}

// NewWithSize returns a list of count zero-valued nodes.
func NewWithSize[T any](count int) (*LinkedList[T], error) {
	if count < 0 {
		return nil, errors.InvalidArgument(component, "NewWithSize",
			fmt.Sprintf("negative count %d", count))
	}
	l := New[T]()
	var zero T
	for i := 0; i < count; i++ {
		l.Append(zero)
	}
	return l, nil
}

// FromSlice returns a list holding copies of items, in order.
func FromSlice[T any](items []T) *LinkedList[T] {
	l := New[T]()
	copyFn := cloner.For[T]()
	for _, v := range items {
		l.Append(copyFn(v))
	}
	return l
}

// Len returns the number of nodes.
func (l *LinkedList[T]) Len() int {
	return l.length
}

// First returns the head value.
func (l *LinkedList[T]) First() (T, error) {
	if l.length == 0 {
		var zero T
		return zero, errors.OutOfRange(component, "First", 0, l.length)
	}
	return l.head.value, nil
}

// Last returns the tail value.
func (l *LinkedList[T]) Last() (T, error) {
	if l.length == 0 {
		var zero T
		return zero, errors.OutOfRange(component, "Last", -1, l.length)
	}
	return l.tail.value, nil
}

// Get returns the value at index.
func (l *LinkedList[T]) Get(index int) (T, error) {
	if index < 0 || index >= l.length {
		var zero T
		return zero, errors.OutOfRange(component, "Get", index, l.length)
	}
	return l.nodeAt(index).value, nil
}

// Set replaces the value at index.
func (l *LinkedList[T]) Set(index int, value T) error {
	if index < 0 || index >= l.length {
		return errors.OutOfRange(component, "Set", index, l.length)
	}
	l.nodeAt(index).value = value
	return nil
}

// Append adds value after the tail.
func (l *LinkedList[T]) Append(value T) {
	n := &node[T]{value: value}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.length++
}

// Prepend adds value before the head.
func (l *LinkedList[T]) Prepend(value T) {
	l.head = &node[T]{value: value, next: l.head}
	if l.tail == nil {
		l.tail = l.head
	}
	l.length++
}

// InsertAt links value in at index. index may equal Len(), which is the same
// as Append.
func (l *LinkedList[T]) InsertAt(value T, index int) error {
	if index < 0 || index > l.length {
		return errors.OutOfRange(component, "InsertAt", index, l.length)
	}
	switch index {
	case 0:
		l.Prepend(value)
	case l.length:
		l.Append(value)
	default:
		prev := l.nodeAt(index - 1)
		prev.next = &node[T]{value: value, next: prev.next}
		l.length++
	}
	return nil
}

// InsertAtImmutable returns a copy of the list with value inserted at index.
// The receiver is not modified, even when the index is rejected.
func (l *LinkedList[T]) InsertAtImmutable(value T, index int) (*LinkedList[T], error) {
	if index < 0 || index > l.length {
		return nil, errors.OutOfRange(component, "InsertAtImmutable", index, l.length)
	}
	out := l.Clone()
	if err := out.InsertAt(value, index); err != nil {
		return nil, err
	}
	return out, nil
}

// Resize appends zero-valued nodes or cuts the chain after newSize nodes.
func (l *LinkedList[T]) Resize(newSize int) error {
	if newSize < 0 {
		return errors.InvalidArgument(component, "Resize",
			fmt.Sprintf("negative size %d", newSize))
	}
	switch {
	case newSize == 0:
		l.Clear()
	case newSize < l.length:
		last := l.nodeAt(newSize - 1)
		last.next = nil
		l.tail = last
		l.length = newSize
	default:
		var zero T
		for l.length < newSize {
			l.Append(zero)
		}
	}
	return nil
}

// Clear drops every node.
func (l *LinkedList[T]) Clear() {
	l.head, l.tail, l.length = nil, nil, 0
}

// SubList returns a new list holding copies of the values in the inclusive
// range [startIndex, endIndex]. It requires 0 <= startIndex <= endIndex <= Len()-1.
func (l *LinkedList[T]) SubList(startIndex, endIndex int) (*LinkedList[T], error) {
	if startIndex < 0 || endIndex >= l.length || startIndex > endIndex {
		return nil, errors.OutOfRangeSpan(component, "SubList", startIndex, endIndex, l.length)
	}
	out := New[T]()
	copyFn := cloner.For[T]()
	n := l.nodeAt(startIndex)
	for i := startIndex; i <= endIndex; i++ {
		out.Append(copyFn(n.value))
		n = n.next
	}
	return out, nil
}

// Concat returns a new list holding copies of this list's values followed by
// copies of other's. Neither input is modified or relinked.
func (l *LinkedList[T]) Concat(other *LinkedList[T]) (*LinkedList[T], error) {
	if other == nil {
		return nil, errors.InvalidArgument(component, "Concat", "nil other")
	}
	out := l.Clone()
	copyFn := cloner.For[T]()
	for n := other.head; n != nil; n = n.next {
		out.Append(copyFn(n.value))
	}
	return out, nil
}

// Clone returns a deep copy built node by node.
func (l *LinkedList[T]) Clone() *LinkedList[T] {
	if l == nil {
		return nil
	}
	out := New[T]()
	copyFn := cloner.For[T]()
	for n := l.head; n != nil; n = n.next {
		out.Append(copyFn(n.value))
	}
	return out
}

// CopyFrom replaces the contents of l with copies of other's values.
// Copying a list onto itself is a no-op.
func (l *LinkedList[T]) CopyFrom(other *LinkedList[T]) error {
	if other == nil {
		return errors.InvalidArgument(component, "CopyFrom", "nil other")
	}
	if l == other {
		return nil
	}
	clone := other.Clone()
	l.head, l.tail, l.length = clone.head, clone.tail, clone.length
	return nil
}

// Items returns the values in order as a new slice. The result is never nil.
func (l *LinkedList[T]) Items() []T {
	out := make([]T, 0, l.length)
	copyFn := cloner.For[T]()
	for n := l.head; n != nil; n = n.next {
		out = append(out, copyFn(n.value))
	}
	return out
}

// Print writes the values to w, separated by " -> ", followed by a newline.
func (l *LinkedList[T]) Print(w io.Writer) error {
	_, err := fmt.Fprintln(w, l.join(" -> "))
	return err
}

// String returns the values in brackets, e.g. "[1 2 3]".
func (l *LinkedList[T]) String() string {
	return "[" + l.join(" ") + "]"
}

func (l *LinkedList[T]) join(sep string) string {
	var sb strings.Builder
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			sb.WriteString(sep)
		}
		fmt.Fprint(&sb, n.value)
	}
	return sb.String()
}

// nodeAt walks to index; callers have already bounds-checked it.
func (l *LinkedList[T]) nodeAt(index int) *node[T] {
	if index == l.length-1 {
		return l.tail
	}
	n := l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}
