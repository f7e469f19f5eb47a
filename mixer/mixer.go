// Package mixer sums an open set of concurrently running sources into a
// single source. New sources are accepted from any thread through the
// Controller without locking the sample-producing hot path.
package mixer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dudk/chord"
	"github.com/dudk/chord/convert"
	"github.com/dudk/chord/log"
)

// Controller is the thread-safe sink for new sources. Every added source
// is normalized to the controller's channel count and sample rate before
// it becomes visible to the mixer.
type Controller struct {
	logger      log.Logger
	numChannels int
	sampleRate  int

	// hasPending is true iff pending is non-empty. It lets the mixer skip
	// the mutex when nothing is pending and may be observed stale.
	hasPending int32

	mtx     sync.Mutex
	pending []chord.Source
}

// Mixer is the single-consumer source summing all current sources.
// Exactly one goroutine may call NextSample.
type Mixer struct {
	input       *Controller
	current     []chord.Source
	sampleCount uint32

	stillPending []chord.Source
	stillCurrent []chord.Source
}

// New returns a mixer producing numChannels channels at sampleRate and the
// controller that feeds it.
func New(numChannels, sampleRate int) (*Mixer, *Controller) {
	controller := &Controller{
		logger:      log.GetLogger(),
		numChannels: numChannels,
		sampleRate:  sampleRate,
	}
	return &Mixer{input: controller}, controller
}

// Add normalizes source to the controller's configuration and schedules it
// for mixing. It may be called from any goroutine. The source starts being
// summed at the first frame boundary the mixer observes after the append
// becomes visible.
func (c *Controller) Add(source chord.Source) {
	converted := convert.New(source, c.numChannels, c.sampleRate)

	c.mtx.Lock()
	c.pending = append(c.pending, converted)
	atomic.StoreInt32(&c.hasPending, 1)
	c.mtx.Unlock()

	c.logger.Debugf("mixer: added source of %v channels at %v", source.ChannelCount(), source.SampleRate())
}

// ChannelCount returns the channel count of the mix.
func (m *Mixer) ChannelCount() int {
	return m.input.numChannels
}

// SampleRate returns the sample rate of the mix.
func (m *Mixer) SampleRate() int {
	return m.input.sampleRate
}

// NextSample returns the sum over all current sources. It reports no value
// when the current set is empty, even if the controller still holds sources
// waiting for a frame boundary.
func (m *Mixer) NextSample() (float64, bool) {
	if atomic.LoadInt32(&m.input.hasPending) == 1 {
		m.startPendingSources()
	}

	m.sampleCount++

	sum := m.sumCurrentSources()

	if len(m.current) == 0 {
		return 0, false
	}
	return sum, true
}

// TotalDuration is unknown for a mix.
func (m *Mixer) TotalDuration() (time.Duration, bool) {
	return 0, false
}

// startPendingSources moves pending sources into the current set, but only
// at a frame boundary. Sources observed off-boundary stay pending so that a
// multi-channel source always begins emitting on channel 0.
func (m *Mixer) startPendingSources() {
	m.stillPending = m.stillPending[:0]

	m.input.mtx.Lock()
	defer m.input.mtx.Unlock()

	inStep := m.sampleCount%uint32(m.input.numChannels) == 0
	for _, source := range m.input.pending {
		if inStep {
			m.current = append(m.current, source)
		} else {
			m.stillPending = append(m.stillPending, source)
		}
	}

	m.stillPending, m.input.pending = m.input.pending[:0], m.stillPending

	if len(m.input.pending) > 0 {
		atomic.StoreInt32(&m.input.hasPending, 1)
	} else {
		atomic.StoreInt32(&m.input.hasPending, 0)
	}
}

// sumCurrentSources sums one sample from every current source, dropping
// the exhausted ones.
func (m *Mixer) sumCurrentSources() float64 {
	m.stillCurrent = m.stillCurrent[:0]

	var sum float64
	for _, source := range m.current {
		if sample, ok := source.NextSample(); ok {
			sum += sample
			m.stillCurrent = append(m.stillCurrent, source)
		}
	}

	m.stillCurrent, m.current = m.current[:0], m.stillCurrent
	return sum
}
