// Package cloner defines the deep-copy hook used by the sequence stores.
//
// Stores copy elements by assignment. That is a true copy for value types, but an element
// type holding pointers, maps or slices would be shared between the original and any
// persistent copy. Such types implement Cloner[T] and the stores call Clone instead.
package cloner

import "reflect"

// Cloner is implemented by element types that need deep copying.
type Cloner[T any] interface {
	Clone() T
}

// Func copies a single element.
type Func[T any] func(T) T

// For returns the copy function for T: Value when T implements Cloner[T],
// Copy otherwise. The check is done once per call, not per element.
// Interface types always get Value, which checks each dynamic element.
func For[T any]() Func[T] {
	if reflect.TypeFor[T]().Kind() == reflect.Interface {
		return Value[T]
	}
	var zero T
	// you can't assert directly on a type parameter
	if _, ok := any(zero).(Cloner[T]); ok {
		return Value[T]
	}
	return Copy[T]
}

// Value returns a deep clone of val when it implements Cloner[T].
// A nil Cloner (e.g. a typed nil pointer) is returned unchanged.
func Value[T any](val T) T {
	c, ok := any(val).(Cloner[T])
	if !ok || c == nil {
		return val
	}
	return c.Clone()
}

// Copy just copies the value.
func Copy[T any](val T) T {
	return val
}

// Slice returns a new slice holding copies of items made with fn.
func Slice[T any](items []T, fn Func[T]) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, v := range items {
		out[i] = fn(v)
	}
	return out
}
