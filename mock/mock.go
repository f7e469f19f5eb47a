// Package mock provides fake sources and devices for tests.
package mock

import (
	"time"
)

const (
	defaultSampleRate  = 44100
	defaultNumChannels = 1
)

// Source produces a predefined sequence of samples and then ends.
type Source struct {
	Rate     int
	Channels int
	Values   []float64
	Total    time.Duration
	HasTotal bool

	// Pulls counts NextSample calls, including calls after end-of-stream.
	Pulls int

	pos int
}

// SampleRate returns the configured sample rate or a default.
func (s *Source) SampleRate() int {
	if s.Rate == 0 {
		return defaultSampleRate
	}
	return s.Rate
}

// ChannelCount returns the configured channel count or a default.
func (s *Source) ChannelCount() int {
	if s.Channels == 0 {
		return defaultNumChannels
	}
	return s.Channels
}

// NextSample returns the next predefined value.
func (s *Source) NextSample() (float64, bool) {
	s.Pulls++
	if s.pos >= len(s.Values) {
		return 0, false
	}
	v := s.Values[s.pos]
	s.pos++
	return v, true
}

// TotalDuration returns the configured duration, if set.
func (s *Source) TotalDuration() (time.Duration, bool) {
	return s.Total, s.HasTotal
}

// Repeat returns a slice with value repeated n times.
func Repeat(value float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = value
	}
	return values
}

// Sequence returns a slice counting up from start by step, n values long.
func Sequence(start, step float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return values
}
