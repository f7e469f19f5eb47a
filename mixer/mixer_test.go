package mixer_test

import (
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/chord/mixer"
	"github.com/dudk/chord/mock"
)

const (
	numChannels = 2
	sampleRate  = 44100
)

func TestMixerEmpty(t *testing.T) {
	m, _ := mixer.New(numChannels, sampleRate)

	_, ok := m.NextSample()
	assert.False(t, ok)
}

func TestMixerSum(t *testing.T) {
	m, controller := mixer.New(numChannels, sampleRate)
	controller.Add(&mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(0.25, 4)})
	controller.Add(&mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(0.5, 4)})

	assert.Equal(t, []float64{0.75, 0.75, 0.75, 0.75}, drain(m))
}

func TestMixerDropsExhausted(t *testing.T) {
	m, controller := mixer.New(numChannels, sampleRate)
	short := &mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(1, 2)}
	long := &mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(2, 6)}
	controller.Add(short)
	controller.Add(long)

	assert.Equal(t, []float64{3, 3, 2, 2, 2, 2}, drain(m))

	// a dropped source is never queried again
	assert.Equal(t, 3, short.Pulls)
}

func TestMixerFrameAlignment(t *testing.T) {
	m, controller := mixer.New(numChannels, sampleRate)
	controller.Add(&mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(1, 10)})

	// first sample pulls only the base source, sample count is now odd
	sample, ok := m.NextSample()
	assert.True(t, ok)
	assert.Equal(t, 1.0, sample)

	controller.Add(&mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(10, 10)})

	// added off-boundary, the new source must not contribute to the
	// sample completing the current frame
	sample, _ = m.NextSample()
	assert.Equal(t, 1.0, sample)

	// next frame boundary, both sources are summed
	sample, _ = m.NextSample()
	assert.Equal(t, 11.0, sample)
}

func TestMixerConverts(t *testing.T) {
	m, controller := mixer.New(2, 44100)
	controller.Add(&mock.Source{Rate: 44100, Channels: 1, Values: []float64{1, 2}})

	// mono input is upmixed to the mix channel count
	assert.Equal(t, []float64{1, 1, 2, 2}, drain(m))
}

func TestMixerConcurrentAdd(t *testing.T) {
	m, controller := mixer.New(numChannels, sampleRate)
	controller.Add(&mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(0, 100000)})

	var wg sync.WaitGroup
	added := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			controller.Add(&mock.Source{Rate: sampleRate, Channels: numChannels, Values: mock.Repeat(0.01, 10)})
		}
		close(added)
	}()

	// the base source is long enough to outlive the adds, the consumer
	// parks mid-stream until every add is visible
	heard := false
	pulled := 0
	for {
		sample, ok := m.NextSample()
		if !ok {
			break
		}
		pulled++
		if sample > 0 {
			heard = true
		}
		if pulled == 1000 {
			<-added
		}
	}
	wg.Wait()

	assert.True(t, heard)
	goleak.VerifyNoLeaks(t)
}

func drain(s interface {
	NextSample() (float64, bool)
}) []float64 {
	var values []float64
	for {
		sample, ok := s.NextSample()
		if !ok {
			return values
		}
		values = append(values, sample)
	}
}
