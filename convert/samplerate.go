package convert

import (
	"time"

	"github.com/dudk/chord"
)

// SampleRateConverter resamples a source to a fixed target sample rate
// with two-point linear interpolation walked at the reduced from/to ratio.
// Integer exactness of the reduced ratio keeps the timing free of floating
// point drift.
type SampleRateConverter struct {
	input      chord.Source
	sampleRate int
	from       int
	to         int
	channels   int

	current []float64
	next    []float64
	output  []float64

	currentFrameIdx int
	nextFrameIdx    int
}

// NewSampleRateConverter returns a converter producing samples at
// toSampleRate.
func NewSampleRateConverter(input chord.Source, toSampleRate int) *SampleRateConverter {
	from := input.SampleRate()
	to := toSampleRate
	g := gcd(from, to)

	c := &SampleRateConverter{
		input:      input,
		sampleRate: toSampleRate,
		from:       from / g,
		to:         to / g,
		channels:   input.ChannelCount(),
	}

	if c.from != c.to {
		c.current = make([]float64, 0, c.channels)
		c.next = make([]float64, 0, c.channels)
		c.output = make([]float64, 0, c.channels)
		for i := 0; i < c.channels; i++ {
			if sample, ok := input.NextSample(); ok {
				c.current = append(c.current, sample)
			}
		}
		for i := 0; i < c.channels; i++ {
			if sample, ok := input.NextSample(); ok {
				c.next = append(c.next, sample)
			}
		}
	}

	return c
}

// ChannelCount returns the channel count of the input.
func (c *SampleRateConverter) ChannelCount() int {
	return c.channels
}

// SampleRate returns the target sample rate.
func (c *SampleRateConverter) SampleRate() int {
	return c.sampleRate
}

// NextSample returns the next resampled sample.
func (c *SampleRateConverter) NextSample() (float64, bool) {
	if c.from == c.to {
		return c.input.NextSample()
	}

	// serve the remaining channels of an interpolated frame first
	if len(c.output) > 0 {
		sample := c.output[0]
		c.output = c.output[1:]
		return sample, true
	}

	if c.nextFrameIdx == c.to {
		c.nextFrameIdx = 0
		for {
			c.nextInputFrame()
			if c.currentFrameIdx == c.from {
				break
			}
		}
		c.currentFrameIdx = 0
	} else {
		leftSampleIdx := (c.from * c.nextFrameIdx / c.to) % c.from
		for c.currentFrameIdx != leftSampleIdx {
			c.nextInputFrame()
		}
	}

	var result float64
	var hasResult bool
	lerp := float64((c.from*c.nextFrameIdx)%c.to) / float64(c.to)

	n := len(c.current)
	if len(c.next) < n {
		n = len(c.next)
	}
	for i := 0; i < n; i++ {
		sample := c.current[i]*(1-lerp) + c.next[i]*lerp
		if i == 0 {
			result, hasResult = sample, true
		} else {
			c.output = append(c.output, sample)
		}
	}

	c.nextFrameIdx++

	if hasResult {
		return result, true
	}

	// the input ended mid-frame, drain what is left of the current frame
	if len(c.current) > 0 {
		result = c.current[0]
		c.output = append(c.output[:0], c.current[1:]...)
		c.current = c.current[:0]
		return result, true
	}

	return 0, false
}

// TotalDuration returns the total duration of the input.
func (c *SampleRateConverter) TotalDuration() (time.Duration, bool) {
	return c.input.TotalDuration()
}

func (c *SampleRateConverter) nextInputFrame() {
	c.currentFrameIdx++
	c.current, c.next = c.next, c.current[:0]

	for i := 0; i < c.channels; i++ {
		sample, ok := c.input.NextSample()
		if !ok {
			break
		}
		c.next = append(c.next, sample)
	}
}
