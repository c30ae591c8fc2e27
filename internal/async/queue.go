package async

import (
	"container/list"
	"sync"
)

// Queue is a mutex guarded FIFO shared by any number of producers and consumers.
// A positive bound makes Enqueue wait for space; otherwise the queue grows freely.
//
// Blocked callers sleep on a condition variable and are woken by the operation that
// changes the queue, so nobody spins while waiting.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    *list.List
	bound    int
}

func NewQueue[T any](bound int) *Queue[T] {
	q := &Queue[T]{
		items: list.New(),
		bound: bound,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

func (q *Queue[T]) Enqueue(item T) {
	q.mu.Lock()
	for q.bound > 0 && q.items.Len() >= q.bound {
		q.notFull.Wait()
	}
	q.items.PushBack(item)
	q.mu.Unlock()
	q.notEmpty.Signal()
}

// TryDequeue pops the front item if there is one.
func (q *Queue[T]) TryDequeue() (T, bool) {
	q.mu.Lock()
	item, ok := q.popLocked()
	q.mu.Unlock()
	if ok {
		q.notFull.Signal()
	}
	return item, ok
}

// Dequeue waits until an item is available and pops it.
func (q *Queue[T]) Dequeue() T {
	q.mu.Lock()
	for q.items.Len() == 0 {
		q.notEmpty.Wait()
	}
	item, _ := q.popLocked()
	q.mu.Unlock()
	q.notFull.Signal()
	return item
}

// Len is a snapshot only. It may be stale by the time the caller reads it.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

func (q *Queue[T]) popLocked() (T, bool) {
	front := q.items.Front()
	if front == nil {
		var zero T
		return zero, false
	}
	return q.items.Remove(front).(T), true
}
