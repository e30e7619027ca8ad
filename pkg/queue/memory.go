package queue

import "sync"

const (
	// DefaultBufferSize is the capacity used when none is given.
	DefaultBufferSize = 1024
)

// InMemoryQueue implements Queue on top of a buffered channel. When full,
// the oldest item is dropped so producers never block.
type InMemoryQueue[T any] struct {
	ch   chan T
	lock sync.Mutex
}

// NewInMemoryQueue creates a new queue holding at most size items.
func NewInMemoryQueue[T any](size int) *InMemoryQueue[T] {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &InMemoryQueue[T]{
		ch: make(chan T, size),
	}
}

func (q *InMemoryQueue[T]) Enqueue(item T) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	for {
		select {
		case q.ch <- item:
			return true
		default:
		}
		select {
		case <-q.ch:
			// only producers send and they hold the lock, so there is room now
			q.ch <- item
			return false
		default:
		}
	}
}

func (q *InMemoryQueue[T]) Dequeue() T {
	return <-q.ch
}

func (q *InMemoryQueue[T]) C() <-chan T {
	return q.ch
}

func (q *InMemoryQueue[T]) Size() int {
	return len(q.ch)
}

func (q *InMemoryQueue[T]) Drain() []T {
	q.lock.Lock()
	defer q.lock.Unlock()

	var items []T
	for {
		select {
		case item := <-q.ch:
			items = append(items, item)
		default:
			return items
		}
	}
}
