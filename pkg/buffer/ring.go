// Package buffer provides a fixed-capacity, thread-safe ring of recent items.
// The shell keeps its command history and the latest registry events in one.
package buffer

import (
	"sync"
)

// OverflowPolicy defines how the ring behaves when it reaches capacity.
type OverflowPolicy int

const (
	// DropOldest removes the oldest item to make room for new items.
	DropOldest OverflowPolicy = iota

	// DropNewest drops new items when the ring is full.
	DropNewest
)

// String returns a human-readable representation of the overflow policy.
func (p OverflowPolicy) String() string {
	switch p {
	case DropOldest:
		return "DropOldest"
	case DropNewest:
		return "DropNewest"
	default:
		return "Unknown"
	}
}

// DropCallback is called outside the lock with each item lost to overflow.
type DropCallback[T any] func(item T)

// Option configures a Ring.
type Option[T any] func(*Ring[T])

// WithOverflowPolicy sets the overflow behavior. Defaults to DropOldest.
func WithOverflowPolicy[T any](policy OverflowPolicy) Option[T] {
	return func(r *Ring[T]) {
		r.policy = policy
	}
}

// WithDropCallback sets a callback function that is called when items are dropped.
func WithDropCallback[T any](callback DropCallback[T]) Option[T] {
	return func(r *Ring[T]) {
		r.onDrop = callback
	}
}

// Ring holds up to Capacity items in insertion order.
type Ring[T any] struct {
	mu      sync.RWMutex
	items   []T
	head    int // next write position
	size    int
	dropped int64
	policy  OverflowPolicy
	onDrop  DropCallback[T]
}

// NewRing creates a ring holding at most capacity items. Capacity below one is raised to one.
func NewRing[T any](capacity int, options ...Option[T]) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	r := &Ring[T]{items: make([]T, capacity)}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Write adds item, applying the overflow policy when the ring is full.
func (r *Ring[T]) Write(item T) {
	r.mu.Lock()

	capacity := len(r.items)
	if r.size == capacity {
		r.dropped++
		var lost T
		if r.policy == DropNewest {
			lost = item
		} else {
			lost = r.items[r.head] // oldest sits at the write position when full
			r.items[r.head] = item
			r.head = (r.head + 1) % capacity
		}
		onDrop := r.onDrop
		r.mu.Unlock()

		if onDrop != nil {
			onDrop(lost)
		}
		return
	}

	r.items[r.head] = item
	r.head = (r.head + 1) % capacity
	r.size++
	r.mu.Unlock()
}

// Snapshot returns the held items from oldest to newest.
func (r *Ring[T]) Snapshot() []T {
	return r.Last(-1)
}

// Last returns up to n of the newest items, oldest first. A negative n returns all items.
func (r *Ring[T]) Last(n int) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n < 0 || n > r.size {
		n = r.size
	}
	out := make([]T, n)
	capacity := len(r.items)
	start := (r.head - n + capacity) % capacity
	for i := 0; i < n; i++ {
		out[i] = r.items[(start+i)%capacity]
	}
	return out
}

// Size returns the current number of items.
func (r *Ring[T]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Capacity returns the maximum number of items the ring can hold.
func (r *Ring[T]) Capacity() int {
	return len(r.items)
}

// Dropped returns how many items were lost to overflow.
func (r *Ring[T]) Dropped() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dropped
}

// Clear removes all items. The drop count is kept.
func (r *Ring[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head = 0
	r.size = 0
}
