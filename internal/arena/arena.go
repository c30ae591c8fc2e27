// Package arena provides a fixed-capacity bump allocator for a single element type.
//
// Allocations are released in LIFO order by rewinding to a Marker, which makes it a
// good fit for recursive searches that need scratch nodes per stack frame.
package arena

import (
	"errors"
	"fmt"
)

var ErrExhausted = errors.New("arena capacity exceeded")

// Marker is a saved allocation cursor.
type Marker int

// Arena is not safe for concurrent use. Each goroutine should own its own instance.
type Arena[T any] struct {
	slots []T
	head  int
}

func New[T any](capacity int) *Arena[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Arena[T]{slots: make([]T, capacity)}
}

// Allocate hands out the next free element. The element keeps whatever a previous
// allocation left in it; callers overwrite what they use.
func (a *Arena[T]) Allocate() (*T, error) {
	if a.head >= len(a.slots) {
		return nil, fmt.Errorf("%w: %d of %d in use", ErrExhausted, a.head, len(a.slots))
	}
	next := &a.slots[a.head]
	a.head++
	return next, nil
}

func (a *Arena[T]) Mark() Marker {
	return Marker(a.head)
}

// Reset releases every allocation made since m was taken.
func (a *Arena[T]) Reset(m Marker) {
	if int(m) < 0 || int(m) > a.head {
		panic(fmt.Sprintf("arena: reset to marker %d with cursor at %d", m, a.head))
	}
	a.head = int(m)
}

func (a *Arena[T]) Capacity() int {
	return len(a.slots)
}

func (a *Arena[T]) Used() int {
	return a.head
}

func (a *Arena[T]) Remaining() int {
	return len(a.slots) - a.head
}
