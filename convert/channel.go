package convert

import (
	"time"

	"github.com/dudk/chord"
)

// ChannelConverter converts a source to a fixed target channel count.
// Upmixing duplicates the last input channel into the extra output
// channels, downmixing passes the first output channels through and
// discards the rest of each input frame.
type ChannelConverter struct {
	input chord.Source
	from  int
	to    int

	repeatSample float64
	hasRepeat    bool
	nextPos      int
}

// NewChannelConverter returns a converter producing toChannels channels.
func NewChannelConverter(input chord.Source, toChannels int) *ChannelConverter {
	return &ChannelConverter{
		input: input,
		from:  input.ChannelCount(),
		to:    toChannels,
	}
}

// ChannelCount returns the target channel count.
func (c *ChannelConverter) ChannelCount() int {
	return c.to
}

// SampleRate returns the sample rate of the input.
func (c *ChannelConverter) SampleRate() int {
	return c.input.SampleRate()
}

// NextSample returns the next sample of the converted stream.
func (c *ChannelConverter) NextSample() (float64, bool) {
	if c.from == c.to {
		return c.input.NextSample()
	}

	var result float64
	var ok bool

	switch {
	case c.nextPos == c.from-1:
		// last real input channel, cache it for the extra channels
		result, ok = c.input.NextSample()
		c.repeatSample, c.hasRepeat = result, ok
	case c.nextPos < c.from:
		result, ok = c.input.NextSample()
	default:
		result, ok = c.repeatSample, c.hasRepeat
	}

	c.nextPos++

	if c.nextPos == c.to {
		c.nextPos = 0

		// keep frame alignment when downmixing
		if c.from > c.to {
			for i := c.to; i < c.from; i++ {
				c.input.NextSample()
			}
		}
	}

	return result, ok
}

// TotalDuration returns the total duration of the input.
func (c *ChannelConverter) TotalDuration() (time.Duration, bool) {
	return c.input.TotalDuration()
}
