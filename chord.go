// Package chord provides a pull-based audio synthesis chain. A Source
// produces one sample per call and sources compose into single-owner trees
// of transforms which are consumed sample by sample by a driver.
package chord

import (
	"time"
)

// Source is a pull-based producer of samples. Sample rate and channel count
// are fixed for the lifetime of a source. Multi-channel sources produce
// interleaved samples in channel order.
type Source interface {
	// SampleRate returns the sample rate of produced samples.
	SampleRate() int

	// ChannelCount returns the number of interleaved channels.
	ChannelCount() int

	// NextSample returns the next sample value. The bool result reports
	// whether a value was produced. Once it is false the source is
	// exhausted and must never produce a value again.
	NextSample() (float64, bool)

	// TotalDuration returns the total duration of the source, if known.
	TotalDuration() (time.Duration, bool)
}

// samples are not clamped anywhere in the chain, saturation is applied
// once by the consumer at the very end.

// nanosPerSample returns the duration of a single interleaved sample.
func nanosPerSample(s Source) int64 {
	return int64(time.Second) / int64(s.SampleRate()*s.ChannelCount())
}
