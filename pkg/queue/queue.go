package queue

// Queue is a bounded FIFO shared between a producer and a consumer.
type Queue[T any] interface {
	// Enqueue adds an item to the end of the queue. It reports false when
	// the oldest item had to be dropped to make room.
	Enqueue(item T) bool
	// Dequeue blocks until an item is available.
	Dequeue() T
	// C exposes the underlying channel for use in select statements.
	C() <-chan T
	Size() int
	// Drain removes and returns all pending items.
	Drain() []T
}
