// Package music reads the yaml music description: instruments with ADSR
// envelopes, note patterns and tracks sequencing patterns. Timing inside a
// description is expressed in resolution time, a discrete subdivision of a
// beat, which keeps event ordering exact and independent of floating point
// seconds.
package music

import (
	"github.com/dudk/chord/osc"
)

// ResolutionPerBeat subdivides a single beat into discrete values. It
// allows exact placement of notes and guarantees a sorted order without
// floating point comparisons.
const ResolutionPerBeat = 96

// DefaultBPM is used when a description does not set a tempo.
const DefaultBPM = 120

// TimeSignature of a description, beats per bar over beat value.
type TimeSignature struct {
	BeatsPerBar int
	BeatValue   int
}

// Adsr is an attack-decay-sustain-release amplitude envelope. Attack,
// decay and release are in seconds, sustain is an amplitude level in
// [0, 1].
type Adsr struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// DefaultAdsr is the envelope used when an instrument does not set one.
var DefaultAdsr = Adsr{Attack: 0.03, Decay: 0, Sustain: 1, Release: 0.03}

// Evaluate returns the amplitude of the envelope. elapsedPress is the time
// in seconds since the note was triggered. If hasRelease is true,
// elapsedRelease is the time in seconds since the note was released and
// fades the value linearly to zero over the release time.
//
// During decay the value approaches sustain measured from the start of the
// attack phase, not from the start of the decay phase. That is how the
// envelope has always sounded, keep it.
func (a Adsr) Evaluate(elapsedPress float64, elapsedRelease float64, hasRelease bool) float64 {
	var value float64
	switch {
	case elapsedPress < a.Attack:
		value = elapsedPress / a.Attack
	case elapsedPress < a.Attack+a.Decay:
		t := elapsedPress / (a.Attack + a.Decay)
		value = 1 + (a.Sustain-1)*t
	default:
		value = a.Sustain
	}

	if !hasRelease {
		return value
	}
	return value * (1 - elapsedRelease/a.Release)
}

// InstrumentType selects the oscillator an instrument plays through.
type InstrumentType int

// Instrument oscillator types.
const (
	Sine InstrumentType = iota
	Triangle
	Square
	Saw
	Piano
)

// Instrument is a named oscillator type with an envelope.
type Instrument struct {
	Name string
	Type InstrumentType
	Adsr Adsr
}

// NoteEvent is a note scheduled inside a pattern, start and end in
// resolution time relative to the pattern start.
type NoteEvent struct {
	Start int
	End   int
	Note  osc.Note
}

// Pattern is a named list of note events. Duration is the pattern length
// in resolution time.
type Pattern struct {
	Name     string
	Notes    []NoteEvent
	Duration int
}

// PatternEvent schedules a pattern inside a track, start and end in
// resolution time.
type PatternEvent struct {
	PatternIdx int
	Start      int
	End        int
}

// Track sequences patterns through a single instrument at a gain.
type Track struct {
	Name          string
	InstrumentIdx int
	Gain          float64
	Patterns      []PatternEvent
}

// Music is a parsed description.
type Music struct {
	BPM           int
	TimeSignature TimeSignature
	Gain          float64
	Instruments   []Instrument
	Patterns      []Pattern
	Tracks        []Track
}

// ScheduledNote is a note flattened out of the track/pattern structure,
// absolute start and end in resolution time, with the instrument and the
// combined track gain to play it at.
type ScheduledNote struct {
	Start      int
	End        int
	Note       osc.Note
	Instrument Instrument
	Gain       float64
}

// ScheduledNotes flattens all tracks into absolute note events. The result
// is not sorted.
func (m *Music) ScheduledNotes() []ScheduledNote {
	var notes []ScheduledNote
	for _, track := range m.Tracks {
		instrument := m.Instruments[track.InstrumentIdx]
		for _, event := range track.Patterns {
			pattern := m.Patterns[event.PatternIdx]
			for _, note := range pattern.Notes {
				notes = append(notes, ScheduledNote{
					Start:      event.Start + note.Start,
					End:        event.Start + note.End,
					Note:       note.Note,
					Instrument: instrument,
					Gain:       track.Gain * m.Gain,
				})
			}
		}
	}
	return notes
}

// ResolutionToSeconds maps a resolution time value to seconds.
func ResolutionToSeconds(value int, bpm int) float64 {
	secondsPerBeat := 60.0 / float64(bpm)
	beats := float64(value) / ResolutionPerBeat
	return beats * secondsPerBeat
}

// SecondsToResolution maps seconds to a resolution time value.
func SecondsToResolution(seconds float64, bpm int) int {
	beatsPerSecond := float64(bpm) / 60.0
	return int(seconds * beatsPerSecond * ResolutionPerBeat)
}
