package stream_test

import (
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dudk/chord/mock"
	"github.com/dudk/chord/music"
	"github.com/dudk/chord/osc"
	"github.com/dudk/chord/stream"
	"github.com/dudk/chord/wav"
)

// testMusic is a single short note at a fast tempo, so a full render stays
// small.
func testMusic() *music.Music {
	return &music.Music{
		BPM:  600,
		Gain: 1,
		Instruments: []music.Instrument{
			{
				Name: "lead",
				Type: music.Sine,
				Adsr: music.Adsr{Attack: 0.001, Decay: 0, Sustain: 1, Release: 0.001},
			},
		},
		Patterns: []music.Pattern{
			{
				Name: "intro",
				Notes: []music.NoteEvent{
					{Start: 0, End: 24, Note: osc.Note{Letter: osc.C, Octave: 4}},
				},
				Duration: 24,
			},
		},
		Tracks: []music.Track{
			{
				Name:          "main",
				InstrumentIdx: 0,
				Gain:          1,
				Patterns:      []music.PatternEvent{{PatternIdx: 0, Start: 0, End: 24}},
			},
		},
	}
}

func TestNewNegotiatesSampleRate(t *testing.T) {
	d := &mock.Device{Rates: []int{8000, 22050, 48000}}

	s, err := stream.New(d)
	require.NoError(t, err)

	assert.True(t, d.Opened)
	assert.Equal(t, 48000, s.SampleRate())
}

func TestNewNoSampleRate(t *testing.T) {
	d := &mock.Device{Rates: []int{8000}}

	_, err := stream.New(d)
	assert.Equal(t, stream.ErrNoSampleRate, err)
	assert.False(t, d.Opened)
}

func TestNewOpenError(t *testing.T) {
	d := &mock.Device{FailOpen: true}

	_, err := stream.New(d)
	assert.Error(t, err)
}

func TestPlay(t *testing.T) {
	d := &mock.Device{Channels: 2, Frames: 8}
	s, err := stream.New(d)
	require.NoError(t, err)

	// drain the device like an audio host would, until playback is over
	var (
		wg   sync.WaitGroup
		stop = make(chan struct{})
		out  []float32
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if buffer := d.Invoke(d.BufferSize()); buffer != nil {
				out = append(out, buffer...)
			}
		}
	}()

	err = s.Play(testMusic())
	close(stop)
	wg.Wait()

	require.NoError(t, err)
	assert.True(t, d.Started)
	assert.True(t, d.Stopped)

	var sum float64
	for _, v := range out {
		sum += math.Abs(float64(v))
	}
	assert.True(t, sum > 0)

	assert.NoError(t, s.Close())
	assert.True(t, d.Closed)

	goleak.VerifyNoLeaks(t)
}

func TestExport(t *testing.T) {
	path := filepath.Join(os.TempDir(), "chord_export_test.wav")
	defer os.Remove(path)

	err := stream.Export(testMusic(), path)
	require.NoError(t, err)

	source, err := wav.NewSource(path)
	require.NoError(t, err)
	defer source.Close()

	assert.Equal(t, 44100, source.SampleRate())
	assert.Equal(t, 2, source.ChannelCount())

	// the note length at 600 bpm plus the release tail
	total, ok := source.TotalDuration()
	assert.True(t, ok)
	assert.InDelta(t, 0.026, total.Seconds(), 0.01)

	var sum float64
	for {
		sample, ok := source.NextSample()
		if !ok {
			break
		}
		sum += math.Abs(sample)
	}
	assert.True(t, sum > 0)
}
