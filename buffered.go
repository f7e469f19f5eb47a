package chord

import (
	"time"
)

// DefaultBufferFrames is the buffer capacity used when none is given.
const DefaultBufferFrames = 1024

// Buffered reads ahead from input in batches and serves cached samples one
// at a time. It amortizes the cost of pulling through deeply nested
// transform chains. A short refill is still served before end-of-stream
// is signaled.
type Buffered struct {
	input    Source
	capacity int
	buffer   []float64
	idx      int
}

// NewBuffered returns a buffered source reading up to frames frames ahead.
// If frames is not positive, DefaultBufferFrames is used.
func NewBuffered(input Source, frames int) *Buffered {
	if frames <= 0 {
		frames = DefaultBufferFrames
	}
	b := &Buffered{
		input:    input,
		capacity: frames * input.ChannelCount(),
	}
	b.buffer = make([]float64, 0, b.capacity)
	b.advance()
	return b
}

// SampleRate returns the sample rate of the input.
func (b *Buffered) SampleRate() int {
	return b.input.SampleRate()
}

// ChannelCount returns the channel count of the input.
func (b *Buffered) ChannelCount() int {
	return b.input.ChannelCount()
}

// NextSample returns the next cached sample, refilling the cache when it
// is exhausted.
func (b *Buffered) NextSample() (float64, bool) {
	if len(b.buffer) == 0 {
		return 0, false
	}

	sample := b.buffer[b.idx]
	b.idx++
	if b.idx >= len(b.buffer) {
		b.advance()
	}
	return sample, true
}

// TotalDuration returns the total duration of the input.
func (b *Buffered) TotalDuration() (time.Duration, bool) {
	return b.input.TotalDuration()
}

func (b *Buffered) advance() {
	b.buffer = b.buffer[:0]
	b.idx = 0
	for i := 0; i < b.capacity; i++ {
		sample, ok := b.input.NextSample()
		if !ok {
			break
		}
		b.buffer = append(b.buffer, sample)
	}
}
