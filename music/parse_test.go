package music_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/chord/music"
	"github.com/dudk/chord/osc"
)

const testDescription = `
bpm: 100
time-signature: [4, 4]
gain: 0.8
instruments:
  - name: lead
    source: square
    adsr:
      attack: 0.1
      release: 0.2
  - name: keys
    source: piano
patterns:
  - name: intro
    commands:
      - [play, C4, [1, 4]]
      - [play, E4, [1, 4]]
      - [delay, [1, 4]]
      - [repeat, 2]
      - [play, G4, [1, 8]]
      - [delay, [1, 8]]
      - [end-repeat]
tracks:
  - name: melody
    instrument: lead
    gain: 0.5
    commands:
      - [play, intro]
      - [delay, [1, 4]]
      - [play, intro]
`

func importString(t *testing.T, source string) (*music.Music, error) {
	t.Helper()
	path := filepath.Join(os.TempDir(), "chord_music_test.yaml")
	err := ioutil.WriteFile(path, []byte(source), 0644)
	assert.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })
	return music.Import(path)
}

func TestImport(t *testing.T) {
	m, err := importString(t, testDescription)
	assert.NoError(t, err)

	assert.Equal(t, 100, m.BPM)
	assert.Equal(t, music.TimeSignature{BeatsPerBar: 4, BeatValue: 4}, m.TimeSignature)
	assert.InDelta(t, 0.8, m.Gain, 1e-9)

	assert.Len(t, m.Instruments, 2)
	assert.Equal(t, music.Square, m.Instruments[0].Type)
	assert.InDelta(t, 0.1, m.Instruments[0].Adsr.Attack, 1e-9)
	assert.InDelta(t, 0.2, m.Instruments[0].Adsr.Release, 1e-9)
	// unset envelope fields keep their defaults
	assert.InDelta(t, music.DefaultAdsr.Sustain, m.Instruments[0].Adsr.Sustain, 1e-9)
	assert.Equal(t, music.DefaultAdsr, m.Instruments[1].Adsr)

	assert.Len(t, m.Patterns, 1)
	pattern := m.Patterns[0]

	// quarter note at beat value 4 lasts one beat: 96 resolution units;
	// chord notes start together, the repeat block is expanded twice
	assert.Equal(t, []music.NoteEvent{
		{Start: 0, End: 96, Note: osc.NewNote(osc.C, 4)},
		{Start: 0, End: 96, Note: osc.NewNote(osc.E, 4)},
		{Start: 96, End: 144, Note: osc.NewNote(osc.G, 4)},
		{Start: 144, End: 192, Note: osc.NewNote(osc.G, 4)},
	}, pattern.Notes)
	assert.Equal(t, 192, pattern.Duration)

	assert.Len(t, m.Tracks, 1)
	track := m.Tracks[0]
	assert.Equal(t, 0, track.InstrumentIdx)
	assert.InDelta(t, 0.5, track.Gain, 1e-9)
	assert.Equal(t, []music.PatternEvent{
		{PatternIdx: 0, Start: 0, End: 192},
		{PatternIdx: 0, Start: 288, End: 480},
	}, track.Patterns)
}

func TestImportDefaults(t *testing.T) {
	m, err := importString(t, `
instruments:
  - name: lead
    source: sine
patterns: []
tracks: []
`)
	assert.NoError(t, err)
	assert.Equal(t, music.DefaultBPM, m.BPM)
	assert.Equal(t, music.TimeSignature{BeatsPerBar: 4, BeatValue: 4}, m.TimeSignature)
	assert.InDelta(t, 1.0, m.Gain, 1e-9)
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		description string
		source      string
	}{
		{"not yaml", "\t{"},
		{"unknown instrument source", "instruments: [{name: a, source: violin}]"},
		{"unknown instrument in track", `
instruments: [{name: a, source: sine}]
tracks: [{name: t, instrument: nope, commands: []}]
`},
		{"unknown pattern in track", `
instruments: [{name: a, source: sine}]
tracks:
  - name: t
    instrument: a
    commands:
      - [play, nope]
`},
		{"unknown command", `
patterns:
  - name: p
    commands:
      - [stop]
`},
		{"bad note", `
patterns:
  - name: p
    commands:
      - [play, X9, [1, 4]]
`},
		{"end-repeat without repeat", `
patterns:
  - name: p
    commands:
      - [end-repeat]
`},
		{"repeat without end-repeat", `
patterns:
  - name: p
    commands:
      - [repeat, 2]
`},
	}
	for _, test := range tests {
		_, err := importString(t, test.source)
		assert.Error(t, err, test.description)
		if err != nil {
			parseErr, ok := err.(*music.ParseError)
			assert.True(t, ok, test.description)
			assert.NotEmpty(t, parseErr.Error(), test.description)
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := music.Import(filepath.Join(os.TempDir(), "chord_no_such_music.yaml"))
	assert.Error(t, err)
	_, isParse := err.(*music.ParseError)
	assert.False(t, isParse)
}

func TestScheduledNotes(t *testing.T) {
	m, err := importString(t, testDescription)
	assert.NoError(t, err)

	notes := m.ScheduledNotes()
	assert.Len(t, notes, 8)

	// second pattern occurrence is offset by its start
	assert.Equal(t, 288, notes[4].Start)
	assert.Equal(t, 384, notes[4].End)

	// combined track and global gain
	assert.InDelta(t, 0.4, notes[0].Gain, 1e-9)
	assert.Equal(t, music.Square, notes[0].Instrument.Type)
}
