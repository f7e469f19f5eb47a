package queue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/chord/queue"
)

func TestQueueFIFO(t *testing.T) {
	q := queue.New(4)
	assert.Equal(t, 4, q.Cap())

	for i := 0; i < 4; i++ {
		assert.True(t, q.TryEnqueue(float32(i)))
	}
	assert.False(t, q.TryEnqueue(4))

	dst := make([]float32, 4)
	assert.Equal(t, 4, q.TryDequeueBulk(dst))
	assert.Equal(t, []float32{0, 1, 2, 3}, dst)

	assert.Equal(t, 0, q.TryDequeueBulk(dst))
}

func TestQueuePartialDequeue(t *testing.T) {
	q := queue.New(8)
	q.TryEnqueue(1)
	q.TryEnqueue(2)

	dst := make([]float32, 8)
	assert.Equal(t, 2, q.TryDequeueBulk(dst))
	assert.Equal(t, []float32{1, 2}, dst[:2])
}

func TestQueueWrapAround(t *testing.T) {
	q := queue.New(3)
	dst := make([]float32, 3)

	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			assert.True(t, q.TryEnqueue(float32(round*3+i)))
		}
		assert.Equal(t, 3, q.TryDequeueBulk(dst))
		assert.Equal(t, []float32{float32(round * 3), float32(round*3 + 1), float32(round*3 + 2)}, dst)
	}
}

func TestQueueConcurrent(t *testing.T) {
	const total = 100000
	q := queue.New(64)

	go func() {
		for i := 0; i < total; i++ {
			q.Enqueue(float32(i))
		}
	}()

	received := 0
	dst := make([]float32, 48)
	for received < total {
		n := q.TryDequeueBulk(dst)
		for i := 0; i < n; i++ {
			assert.Equal(t, float32(received), dst[i])
			received++
		}
	}
}
