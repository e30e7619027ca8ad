package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue[int](3)

	assert.True(t, q.Enqueue(1))
	assert.True(t, q.Enqueue(2))
	assert.True(t, q.Enqueue(3))
	assert.Equal(t, 3, q.Size())

	// full, so the oldest item is dropped
	assert.False(t, q.Enqueue(4))
	assert.Equal(t, 3, q.Size())

	assert.Equal(t, 2, q.Dequeue())
	assert.Equal(t, []int{3, 4}, q.Drain())
	assert.Equal(t, 0, q.Size())
	assert.Nil(t, q.Drain())
}

func TestNewInMemoryQueue_DefaultSize(t *testing.T) {
	q := NewInMemoryQueue[string](0)
	assert.Equal(t, DefaultBufferSize, cap(q.ch))
}
