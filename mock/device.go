package mock

import (
	"errors"
	"sync"

	"github.com/dudk/chord/device"
)

// Device is a fake output device. Its callback is invoked manually with
// Invoke, so tests control the callback period. Invoke is safe to call
// from a goroutine other than the one starting and stopping the device.
type Device struct {
	Channels int
	Frames   int
	Rates    []int

	Opened  bool
	Started bool
	Stopped bool
	Closed  bool

	FailOpen bool

	sampleRate int

	mtx      sync.Mutex
	callback device.Callback
}

// Open records the desired sample rate.
func (d *Device) Open(sampleRate int) error {
	if d.FailOpen {
		return errors.New("mock device: open failed")
	}
	d.Opened = true
	d.sampleRate = sampleRate
	return nil
}

// Close marks the device closed.
func (d *Device) Close() error {
	d.Closed = true
	return nil
}

// Start remembers the callback for Invoke.
func (d *Device) Start(callback device.Callback) error {
	d.Started = true
	d.mtx.Lock()
	d.callback = callback
	d.mtx.Unlock()
	return nil
}

// Stop detaches the callback.
func (d *Device) Stop() error {
	d.Stopped = true
	d.mtx.Lock()
	d.callback = nil
	d.mtx.Unlock()
	return nil
}

// BufferSize returns the configured frames per period or a default.
func (d *Device) BufferSize() int {
	if d.Frames == 0 {
		return 512
	}
	return d.Frames
}

// ChannelCount returns the configured channel count or a default.
func (d *Device) ChannelCount() int {
	if d.Channels == 0 {
		return 2
	}
	return d.Channels
}

// SampleRate returns the opened sample rate.
func (d *Device) SampleRate() int {
	return d.sampleRate
}

// AvailableSampleRates returns the configured rates or a default set.
func (d *Device) AvailableSampleRates() []int {
	if d.Rates == nil {
		return []int{44100, 48000}
	}
	return d.Rates
}

// Invoke runs the callback once for numFrames frames and returns the
// filled buffer. It returns nil if the device is not started.
func (d *Device) Invoke(numFrames int) []float32 {
	d.mtx.Lock()
	callback := d.callback
	d.mtx.Unlock()

	if callback == nil {
		return nil
	}
	buffer := make([]float32, numFrames*d.ChannelCount())
	callback(buffer, d.ChannelCount(), numFrames)
	return buffer
}
