package chord

import (
	"time"
)

// Amplify multiplies every sample of input by a constant gain.
type Amplify struct {
	input Source
	amp   float64
}

// NewAmplify returns a new amplify transform over input.
func NewAmplify(input Source, amp float64) *Amplify {
	return &Amplify{input: input, amp: amp}
}

// SampleRate returns the sample rate of the input.
func (a *Amplify) SampleRate() int {
	return a.input.SampleRate()
}

// ChannelCount returns the channel count of the input.
func (a *Amplify) ChannelCount() int {
	return a.input.ChannelCount()
}

// NextSample returns the next input sample multiplied by gain.
func (a *Amplify) NextSample() (float64, bool) {
	if sample, ok := a.input.NextSample(); ok {
		return sample * a.amp, true
	}
	return 0, false
}

// TotalDuration returns the total duration of the input.
func (a *Amplify) TotalDuration() (time.Duration, bool) {
	return a.input.TotalDuration()
}

// Duration caps the total output of input to a requested wall time.
// It stops once the remaining duration is not longer than a single sample,
// even if the input has more data.
type Duration struct {
	input       Source
	requested   int64
	remaining   int64
	nsPerSample int64
}

// NewDuration returns a new duration cap over input.
func NewDuration(input Source, duration time.Duration) *Duration {
	return &Duration{
		input:       input,
		requested:   duration.Nanoseconds(),
		remaining:   duration.Nanoseconds(),
		nsPerSample: nanosPerSample(input),
	}
}

// SampleRate returns the sample rate of the input.
func (d *Duration) SampleRate() int {
	return d.input.SampleRate()
}

// ChannelCount returns the channel count of the input.
func (d *Duration) ChannelCount() int {
	return d.input.ChannelCount()
}

// NextSample returns the next input sample until the requested duration
// is exhausted.
func (d *Duration) NextSample() (float64, bool) {
	if d.remaining <= d.nsPerSample {
		return 0, false
	}
	sample, ok := d.input.NextSample()
	d.remaining -= d.nsPerSample
	return sample, ok
}

// TotalDuration returns the requested duration.
func (d *Duration) TotalDuration() (time.Duration, bool) {
	return time.Duration(d.requested), true
}

// Delay emits silence for a requested wall time before passing the input
// through unmodified.
type Delay struct {
	input       Source
	requested   int64
	remaining   int64
	nsPerSample int64
}

// NewDelay returns a new delay over input.
func NewDelay(input Source, delay time.Duration) *Delay {
	return &Delay{
		input:       input,
		requested:   delay.Nanoseconds(),
		remaining:   delay.Nanoseconds(),
		nsPerSample: nanosPerSample(input),
	}
}

// SampleRate returns the sample rate of the input.
func (d *Delay) SampleRate() int {
	return d.input.SampleRate()
}

// ChannelCount returns the channel count of the input.
func (d *Delay) ChannelCount() int {
	return d.input.ChannelCount()
}

// NextSample returns zero until the delay elapses, then input samples.
func (d *Delay) NextSample() (float64, bool) {
	if d.remaining <= d.nsPerSample {
		return d.input.NextSample()
	}
	d.remaining -= d.nsPerSample
	return 0, true
}

// TotalDuration returns input duration extended by the delay, if the input
// reports one.
func (d *Delay) TotalDuration() (time.Duration, bool) {
	if total, ok := d.input.TotalDuration(); ok {
		return time.Duration(d.requested) + total, true
	}
	return 0, false
}

// FilterInfo carries per-sample context passed to a filter callback.
type FilterInfo struct {
	// CurrentSample is the index of the sample being produced, starting
	// at zero and incremented on every call.
	CurrentSample int

	// SampleRate is the sample rate of the filtered input.
	SampleRate int

	// TotalDuration is the total duration of the input, if known.
	TotalDuration time.Duration

	// HasTotalDuration reports whether TotalDuration is known.
	HasTotalDuration bool
}

// TotalSamples returns the number of samples the input will produce in
// total, if its duration is known.
func (info FilterInfo) TotalSamples() (int, bool) {
	if !info.HasTotalDuration {
		return 0, false
	}
	return int(info.TotalDuration.Nanoseconds() * int64(info.SampleRate) / int64(time.Second)), true
}

// FilterFunc maps an input sample to an output sample.
type FilterFunc func(sample float64, info FilterInfo) float64

// Filter applies a callback to every sample of input. The callback receives
// a FilterInfo with the running sample index, which increments on every call
// regardless of stream end.
type Filter struct {
	input         Source
	callback      FilterFunc
	currentSample int
}

// NewFilter returns a new filter over input.
func NewFilter(input Source, callback FilterFunc) *Filter {
	return &Filter{input: input, callback: callback}
}

// SampleRate returns the sample rate of the input.
func (f *Filter) SampleRate() int {
	return f.input.SampleRate()
}

// ChannelCount returns the channel count of the input.
func (f *Filter) ChannelCount() int {
	return f.input.ChannelCount()
}

// NextSample returns the next input sample mapped through the callback.
func (f *Filter) NextSample() (float64, bool) {
	info := FilterInfo{
		CurrentSample: f.currentSample,
		SampleRate:    f.input.SampleRate(),
	}
	info.TotalDuration, info.HasTotalDuration = f.input.TotalDuration()

	f.currentSample++

	if sample, ok := f.input.NextSample(); ok {
		return f.callback(sample, info), true
	}
	return 0, false
}

// TotalDuration returns the total duration of the input.
func (f *Filter) TotalDuration() (time.Duration, bool) {
	return f.input.TotalDuration()
}
