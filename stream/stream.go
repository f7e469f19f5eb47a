// Package stream drives playback: it owns the output device, the realtime
// queue bridging the computation goroutine to the audio callback, and the
// mixer every scheduled source is summed through.
package stream

import (
	"errors"
	"math"
	"time"

	"github.com/rs/xid"

	"github.com/dudk/chord"
	"github.com/dudk/chord/device"
	"github.com/dudk/chord/log"
	"github.com/dudk/chord/mixer"
	"github.com/dudk/chord/music"
	"github.com/dudk/chord/queue"
)

// desiredSampleRate is the preferred playback rate. The lowest supported
// rate not below it is used.
const desiredSampleRate = 44100

// ErrNoSampleRate is returned when the device supports no usable rate.
var ErrNoSampleRate = errors.New("no supported sample rate")

// OutputStream plays sources on an output device.
type OutputStream struct {
	uid    string
	logger log.Logger

	device     device.Device
	mixer      *mixer.Mixer
	controller *mixer.Controller
	queue      *queue.Queue
}

// New opens the device at the lowest available rate not below the desired
// one and prepares the mixer and the bridge queue.
func New(d device.Device) (*OutputStream, error) {
	sampleRate, err := negotiateSampleRate(d.AvailableSampleRates())
	if err != nil {
		return nil, err
	}
	if err := d.Open(sampleRate); err != nil {
		return nil, err
	}

	numChannels := d.ChannelCount()
	m, controller := mixer.New(numChannels, sampleRate)

	s := &OutputStream{
		uid:        xid.New().String(),
		logger:     log.GetLogger(),
		device:     d,
		mixer:      m,
		controller: controller,

		// double the callback period gives the producer margin over the
		// callback's consumption rate
		queue: queue.New(2 * d.BufferSize() * numChannels),
	}

	s.logger.Debugf("stream %v: opened device at %v Hz, %v channels, %v frames",
		s.uid, sampleRate, numChannels, d.BufferSize())
	return s, nil
}

func negotiateSampleRate(rates []int) (int, error) {
	for _, rate := range rates {
		if rate >= desiredSampleRate {
			return rate, nil
		}
	}
	return 0, ErrNoSampleRate
}

// Add schedules a source for mixing. It may be called from any goroutine,
// also during playback.
func (s *OutputStream) Add(source chord.Source) {
	s.controller.Add(source)
}

// AddDelayed schedules a source prefixed with silence.
func (s *OutputStream) AddDelayed(source chord.Source, delay time.Duration) {
	s.controller.Add(chord.NewDelay(source, delay))
}

// SampleRate returns the negotiated playback rate.
func (s *OutputStream) SampleRate() int {
	return s.device.SampleRate()
}

// Play renders the description live. It starts the device, feeds the
// bridge queue until the mix is exhausted and all scheduled notes have
// been injected, and stops the device before returning.
func (s *OutputStream) Play(m *music.Music) error {
	pending := buildSchedule(m)

	if err := s.device.Start(s.callback()); err != nil {
		return err
	}

	render(s.mixer, s.controller, pending, m.BPM, func(value float64) {
		s.queue.Enqueue(float32(value))
	})

	// the device must be stopped before any owned state goes away, a
	// callback must never observe torn down sources
	return s.device.Stop()
}

// Close releases the device.
func (s *OutputStream) Close() error {
	return s.device.Close()
}

// render advances a virtual clock one produced sample at a time, injects
// scheduled sources as they come due and emits the saturated mix. It ends
// when the mix is exhausted and nothing is left to inject; a silent gap
// before a later note keeps it running.
func render(mix *mixer.Mixer, controller *mixer.Controller, pending []scheduledSource, bpm int, emit func(float64)) {
	numChannels := mix.ChannelCount()
	sampleRate := mix.SampleRate()

	produced := 0
	for {
		seconds := float64(produced) / float64(sampleRate*numChannels)
		now := music.SecondsToResolution(seconds, bpm)

		// pending is sorted descending, due sources pop off the back
		for len(pending) > 0 && pending[len(pending)-1].start <= now {
			controller.Add(pending[len(pending)-1].source)
			pending = pending[:len(pending)-1]
		}

		sample, ok := mix.NextSample()
		if !ok && len(pending) == 0 {
			return
		}

		emit(math.Tanh(sample))
		produced++
	}
}
