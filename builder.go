package chord

import (
	"time"
)

// SourceBuilder chains transforms over a source. Each method wraps the
// current source and returns the builder for further chaining.
type SourceBuilder struct {
	source Source
}

// Build returns the built source chain.
func (b *SourceBuilder) Build() Source {
	return b.source
}

// NewSourceBuilder returns a builder starting from source.
func NewSourceBuilder(source Source) *SourceBuilder {
	return &SourceBuilder{source: source}
}

// Amplify wraps the chain with a gain transform.
func (b *SourceBuilder) Amplify(amp float64) *SourceBuilder {
	b.source = NewAmplify(b.source, amp)
	return b
}

// Duration caps the chain to a total duration.
func (b *SourceBuilder) Duration(duration time.Duration) *SourceBuilder {
	b.source = NewDuration(b.source, duration)
	return b
}

// Delay prepends silence to the chain.
func (b *SourceBuilder) Delay(delay time.Duration) *SourceBuilder {
	b.source = NewDelay(b.source, delay)
	return b
}

// Filter applies a callback to every sample of the chain.
func (b *SourceBuilder) Filter(callback FilterFunc) *SourceBuilder {
	b.source = NewFilter(b.source, callback)
	return b
}

// Buffered wraps the chain with a read-ahead cache of frames frames.
func (b *SourceBuilder) Buffered(frames int) *SourceBuilder {
	b.source = NewBuffered(b.source, frames)
	return b
}
