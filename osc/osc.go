// Package osc provides mono phase-accumulating oscillators and the musical
// note model used to pitch them.
package osc

import (
	"math"
	"time"
)

// DefaultSampleRate is the native rate oscillators produce at.
const DefaultSampleRate = 48000

// Sine returns the sine wave value at phase.
func Sine(phase float64) float64 {
	return math.Sin(phase)
}

// Saw returns the sawtooth wave value at phase.
func Saw(phase float64) float64 {
	return 2 / math.Pi * math.Atan(math.Tan(phase*0.5))
}

// Square returns the square wave value at phase.
func Square(phase float64) float64 {
	if math.Sin(phase) < 0 {
		return -1
	}
	return 1
}

// Triangle returns the triangle wave value at phase.
func Triangle(phase float64) float64 {
	return math.Asin(math.Sin(phase)) * 2 / math.Pi
}

// Wave is an endless mono oscillator over a wave function.
type Wave struct {
	wave  func(float64) float64
	freq  float64
	phase float64
}

// NewSine returns a sine oscillator at freq.
func NewSine(freq float64) *Wave {
	return &Wave{wave: Sine, freq: freq}
}

// NewSaw returns a sawtooth oscillator at freq.
func NewSaw(freq float64) *Wave {
	return &Wave{wave: Saw, freq: freq}
}

// NewSquare returns a square oscillator at freq.
func NewSquare(freq float64) *Wave {
	return &Wave{wave: Square, freq: freq}
}

// NewTriangle returns a triangle oscillator at freq.
func NewTriangle(freq float64) *Wave {
	return &Wave{wave: Triangle, freq: freq}
}

// SampleRate returns the native oscillator rate.
func (w *Wave) SampleRate() int {
	return DefaultSampleRate
}

// ChannelCount returns 1, oscillators are mono.
func (w *Wave) ChannelCount() int {
	return 1
}

// NextSample returns the wave value and advances the phase.
func (w *Wave) NextSample() (float64, bool) {
	value := w.wave(w.phase)
	dt := 1.0 / float64(w.SampleRate())
	w.phase += 2 * math.Pi * w.freq * dt
	w.phase = math.Mod(w.phase, 2*math.Pi)
	return value, true
}

// TotalDuration is unknown, oscillators never end on their own.
func (w *Wave) TotalDuration() (time.Duration, bool) {
	return 0, false
}

// pianoAmps are the relative amplitudes of the nine partials of Piano.
var pianoAmps = [9]float64{1, 0.15, 0.17, 0.155, 0.075, 0.0675, 0.01, 0.067, 0.05}

// Piano is a mono additive oscillator of nine sine partials approximating
// a piano timbre.
type Piano struct {
	freqs  [9]float64
	phases [9]float64
}

// NewPiano returns a piano oscillator with fundamental freq.
func NewPiano(freq float64) *Piano {
	p := &Piano{}
	for i := range p.freqs {
		p.freqs[i] = freq * float64(i+1)
	}
	return p
}

// SampleRate returns the native oscillator rate.
func (p *Piano) SampleRate() int {
	return DefaultSampleRate
}

// ChannelCount returns 1.
func (p *Piano) ChannelCount() int {
	return 1
}

// NextSample returns the sum of the partials and advances their phases.
func (p *Piano) NextSample() (float64, bool) {
	var sum float64
	dt := 1.0 / float64(p.SampleRate())
	for i := range p.freqs {
		sum += Sine(p.phases[i]) * pianoAmps[i]
		p.phases[i] += 2 * math.Pi * p.freqs[i] * dt
		p.phases[i] = math.Mod(p.phases[i], 2*math.Pi)
	}
	return sum, true
}

// TotalDuration is unknown.
func (p *Piano) TotalDuration() (time.Duration, bool) {
	return 0, false
}
