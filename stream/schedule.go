package stream

import (
	"sort"
	"time"

	"github.com/dudk/chord"
	"github.com/dudk/chord/music"
	"github.com/dudk/chord/osc"
)

// scheduledSource is a source waiting for its start in resolution time.
type scheduledSource struct {
	start  int
	source chord.Source
}

// buildSchedule flattens a description into sources sorted descending by
// start, so the render loop injects due ones by popping off the back.
func buildSchedule(m *music.Music) []scheduledSource {
	notes := m.ScheduledNotes()

	pending := make([]scheduledSource, 0, len(notes))
	for _, note := range notes {
		pending = append(pending, scheduledSource{
			start:  note.Start,
			source: noteSource(note, m.BPM),
		})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].start > pending[j].start
	})
	return pending
}

// noteSource builds the playable chain of a single note: an oscillator
// capped to the note length plus the release tail, shaped by the envelope
// and scaled by the gain.
func noteSource(note music.ScheduledNote, bpm int) chord.Source {
	wave := oscillator(note.Instrument.Type, note.Note.Freq())

	seconds := music.ResolutionToSeconds(note.End-note.Start, bpm)
	duration := time.Duration((seconds + note.Instrument.Adsr.Release) * float64(time.Second))

	return chord.NewSourceBuilder(wave).
		Duration(duration).
		Filter(adsrFilter(note.Instrument.Adsr)).
		Amplify(note.Gain).
		Buffered(chord.DefaultBufferFrames).
		Build()
}

func oscillator(t music.InstrumentType, freq float64) chord.Source {
	switch t {
	case music.Triangle:
		return osc.NewTriangle(freq)
	case music.Square:
		return osc.NewSquare(freq)
	case music.Saw:
		return osc.NewSaw(freq)
	case music.Piano:
		return osc.NewPiano(freq)
	default:
		return osc.NewSine(freq)
	}
}

// adsrFilter shapes samples with the envelope. The release phase starts a
// release time before the known end of the input, so a note fades out
// instead of clicking off.
func adsrFilter(adsr music.Adsr) chord.FilterFunc {
	return func(sample float64, info chord.FilterInfo) float64 {
		elapsedPress := float64(info.CurrentSample) / float64(info.SampleRate)

		var elapsedRelease float64
		var hasRelease bool
		if total, ok := info.TotalSamples(); ok {
			releaseStart := total - int(adsr.Release*float64(info.SampleRate))
			if info.CurrentSample >= releaseStart {
				elapsedRelease = float64(info.CurrentSample-releaseStart) / float64(info.SampleRate)
				hasRelease = true
			}
		}

		return sample * adsr.Evaluate(elapsedPress, elapsedRelease, hasRelease)
	}
}
