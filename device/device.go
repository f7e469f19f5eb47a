// Package device binds the platform audio output. The capability interface
// is narrow on purpose: the engine needs one output device it can open,
// start with a callback and stop deterministically.
package device

// Callback fills an interleaved output buffer. It is invoked on the audio
// host thread on a fixed period and must fully populate the buffer before
// returning without blocking or allocating.
type Callback func(buffer []float32, numChannels, numFrames int)

// Device is a platform audio output.
type Device interface {
	// Open prepares the device for the desired sample rate.
	Open(sampleRate int) error

	// Close releases the device. The device must be stopped first.
	Close() error

	// Start begins periodic callback invocations. Stop blocks until the
	// callback can no longer be invoked.
	Start(callback Callback) error
	Stop() error

	// BufferSize returns the frames per callback period.
	BufferSize() int

	// ChannelCount returns the output channel count.
	ChannelCount() int

	// SampleRate returns the opened sample rate.
	SampleRate() int

	// AvailableSampleRates returns the supported rates in ascending order.
	AvailableSampleRates() []int
}

// StandardSampleRates are the rates probed for device support, ascending.
var StandardSampleRates = []int{
	8000, 9600, 11025, 12000, 16000, 22050, 24000, 32000,
	44100, 48000, 88200, 96000, 192000,
}
