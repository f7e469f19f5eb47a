package device

import (
	"errors"

	"github.com/gordonklaus/portaudio"
)

// defaultBufferFrames is the callback period used for portaudio streams.
const defaultBufferFrames = 512

// ErrNotOpen is returned when the device is used before Open.
var ErrNotOpen = errors.New("device is not open")

// PortAudio is the default output device of the portaudio host.
type PortAudio struct {
	info        *portaudio.DeviceInfo
	stream      *portaudio.Stream
	sampleRate  int
	numChannels int
	rates       []int
}

// DefaultOutput initializes portaudio and returns its default output
// device. Close terminates portaudio.
func DefaultOutput() (*PortAudio, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	d := &PortAudio{info: info}

	numChannels := info.MaxOutputChannels
	if numChannels > 2 {
		numChannels = 2
	}
	d.numChannels = numChannels

	params := portaudio.HighLatencyParameters(nil, info)
	params.Output.Channels = numChannels
	for _, rate := range StandardSampleRates {
		params.SampleRate = float64(rate)
		if portaudio.IsFormatSupported(params, func([]float32) {}) == nil {
			d.rates = append(d.rates, rate)
		}
	}

	return d, nil
}

// Open prepares the device for the desired sample rate.
func (d *PortAudio) Open(sampleRate int) error {
	d.sampleRate = sampleRate
	return nil
}

// Close releases the device and terminates portaudio.
func (d *PortAudio) Close() error {
	return portaudio.Terminate()
}

// Start opens a callback stream and begins playback.
func (d *PortAudio) Start(callback Callback) error {
	if d.sampleRate == 0 {
		return ErrNotOpen
	}
	stream, err := portaudio.OpenDefaultStream(
		0,
		d.numChannels,
		float64(d.sampleRate),
		defaultBufferFrames,
		func(out []float32) {
			callback(out, d.numChannels, len(out)/d.numChannels)
		},
	)
	if err != nil {
		return err
	}
	d.stream = stream
	return stream.Start()
}

// Stop stops the stream. After Stop returns the callback is not invoked
// anymore.
func (d *PortAudio) Stop() error {
	if d.stream == nil {
		return nil
	}
	if err := d.stream.Stop(); err != nil {
		return err
	}
	err := d.stream.Close()
	d.stream = nil
	return err
}

// BufferSize returns the frames per callback period.
func (d *PortAudio) BufferSize() int {
	return defaultBufferFrames
}

// ChannelCount returns the output channel count.
func (d *PortAudio) ChannelCount() int {
	return d.numChannels
}

// SampleRate returns the opened sample rate.
func (d *PortAudio) SampleRate() int {
	return d.sampleRate
}

// AvailableSampleRates returns the supported standard rates, ascending.
func (d *PortAudio) AvailableSampleRates() []int {
	return d.rates
}
