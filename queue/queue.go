// Package queue provides a bounded single-producer single-consumer queue
// of interleaved samples. It bridges the computation thread and the
// hardware callback: the producer spins on a full queue instead of
// dropping samples, the consumer never blocks.
package queue

import (
	"runtime"
	"sync/atomic"
)

// Queue is a fixed-capacity FIFO of scalar samples. One goroutine may
// enqueue and one may dequeue concurrently.
type Queue struct {
	buf []float32

	// wrapped ring indices, head owned by the consumer, tail by the
	// producer; the ring keeps one slot free to distinguish full from
	// empty
	head uint32
	tail uint32
}

// New returns a queue holding up to capacity samples.
func New(capacity int) *Queue {
	return &Queue{buf: make([]float32, capacity+1)}
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return len(q.buf) - 1
}

// TryEnqueue appends v if the queue is not full and reports whether it did.
func (q *Queue) TryEnqueue(v float32) bool {
	tail := atomic.LoadUint32(&q.tail)
	next := tail + 1
	if next == uint32(len(q.buf)) {
		next = 0
	}
	if next == atomic.LoadUint32(&q.head) {
		return false
	}
	q.buf[tail] = v
	atomic.StoreUint32(&q.tail, next)
	return true
}

// Enqueue appends v, spinning until the consumer makes room. The producer
// trades CPU for zero dropped samples, it must not be called from a
// realtime thread.
func (q *Queue) Enqueue(v float32) {
	for !q.TryEnqueue(v) {
		runtime.Gosched()
	}
}

// TryDequeueBulk moves up to len(dst) samples into dst without blocking
// and returns how many were moved.
func (q *Queue) TryDequeueBulk(dst []float32) int {
	head := atomic.LoadUint32(&q.head)
	tail := atomic.LoadUint32(&q.tail)

	size := uint32(len(q.buf))
	available := int((tail + size - head) % size)
	n := len(dst)
	if available < n {
		n = available
	}

	for i := 0; i < n; i++ {
		dst[i] = q.buf[head]
		head++
		if head == size {
			head = 0
		}
	}

	atomic.StoreUint32(&q.head, head)
	return n
}
