// Package bounded provides an ordered, capacity-bounded list. Push beyond
// capacity fails with ErrFull instead of growing or truncating; deduplication
// is the caller's concern via Contains with a domain equality function.
package bounded

import "fmt"

// ErrFull is returned by Push when the list is at capacity.
var ErrFull = fmt.Errorf("bounded list is full")

// List is an ordered sequence with a hard maximum length.
type List[T any] struct {
	items []T
	cap   int
}

// New returns an empty list with the given capacity.
func New[T any](capacity int) *List[T] {
	return &List[T]{items: make([]T, 0, capacity), cap: capacity}
}

// From wraps existing items in a list with the given capacity. Items beyond
// capacity are not truncated; the caller is expected to have stored them
// through a bounded list in the first place.
func From[T any](items []T, capacity int) *List[T] {
	return &List[T]{items: items, cap: capacity}
}

// Push appends an item, failing with ErrFull at capacity.
func (l *List[T]) Push(item T) error {
	if len(l.items) >= l.cap {
		return ErrFull
	}
	l.items = append(l.items, item)
	return nil
}

// Contains reports whether any stored item equals the candidate under eq.
func (l *List[T]) Contains(candidate T, eq func(a, b T) bool) bool {
	for _, item := range l.items {
		if eq(item, candidate) {
			return true
		}
	}
	return false
}

// Find returns the first stored item equal to the candidate under eq.
func (l *List[T]) Find(candidate T, eq func(a, b T) bool) (T, bool) {
	for _, item := range l.items {
		if eq(item, candidate) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the current length.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Full reports whether the list is at capacity.
func (l *List[T]) Full() bool {
	return len(l.items) >= l.cap
}

// Items returns the backing slice in insertion order.
func (l *List[T]) Items() []T {
	return l.items
}
