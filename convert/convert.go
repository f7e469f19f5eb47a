// Package convert normalizes sources to a target channel count and sample
// rate so that arbitrary sources become commensurable before mixing.
package convert

import (
	"time"

	"github.com/dudk/chord"
)

// Converter normalizes a source to a target channel count and sample rate.
// It resamples first, then converts channels.
type Converter struct {
	input *ChannelConverter
}

// New returns a converter producing numChannels channels at sampleRate.
func New(input chord.Source, numChannels, sampleRate int) *Converter {
	return &Converter{
		input: NewChannelConverter(NewSampleRateConverter(input, sampleRate), numChannels),
	}
}

// SampleRate returns the target sample rate.
func (c *Converter) SampleRate() int {
	return c.input.SampleRate()
}

// ChannelCount returns the target channel count.
func (c *Converter) ChannelCount() int {
	return c.input.ChannelCount()
}

// NextSample returns the next converted sample.
func (c *Converter) NextSample() (float64, bool) {
	return c.input.NextSample()
}

// TotalDuration returns the total duration of the input.
func (c *Converter) TotalDuration() (time.Duration, bool) {
	return c.input.TotalDuration()
}

func gcd(a, b int) int {
	if b == 0 {
		return a
	}
	return gcd(b, a%b)
}
