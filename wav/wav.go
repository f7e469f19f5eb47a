// Package wav reads wav files as pull-based sources and exports rendered
// samples as 16-bit PCM wav files.
package wav

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// readFrames is the number of frames decoded per batch.
const readFrames = 1024

// exportScale converts a real sample to 16-bit PCM on export. The value is
// a legacy constant slightly above the signed 16-bit maximum, kept for
// output compatibility.
const exportScale = 0x8fff

// ErrNotValid is returned when a file is not a valid wav file.
var ErrNotValid = errors.New("wav is not valid")

// ErrUnsupportedBitDepth is returned when a wav file is not 8, 16 or 32 bit PCM.
var ErrUnsupportedBitDepth = errors.New("only 8, 16 and 32 bit depth is supported")

// Source reads PCM samples from a wav file one at a time, normalized to
// [-1, 1] by the bit depth of the file.
type Source struct {
	file    *os.File
	decoder *wav.Decoder

	sampleRate  int
	numChannels int
	duration    time.Duration
	divider     float64

	buf *audio.IntBuffer
	n   int
	pos int
	eof bool
}

// NewSource opens the wav file at path as a source.
func NewSource(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		file.Close()
		return nil, ErrNotValid
	}

	switch decoder.BitDepth {
	case 8, 16, 32:
	default:
		file.Close()
		return nil, ErrUnsupportedBitDepth
	}

	duration, err := decoder.Duration()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read wav duration: %v", err)
	}

	s := &Source{
		file:        file,
		decoder:     decoder,
		sampleRate:  int(decoder.SampleRate),
		numChannels: decoder.Format().NumChannels,
		duration:    duration,
		divider:     float64(int(1) << (decoder.BitDepth - 1)),
		buf: &audio.IntBuffer{
			Format:         decoder.Format(),
			Data:           make([]int, readFrames*decoder.Format().NumChannels),
			SourceBitDepth: int(decoder.BitDepth),
		},
	}
	return s, nil
}

// SampleRate returns the sample rate of the file.
func (s *Source) SampleRate() int {
	return s.sampleRate
}

// ChannelCount returns the channel count of the file.
func (s *Source) ChannelCount() int {
	return s.numChannels
}

// TotalDuration returns the duration of the file.
func (s *Source) TotalDuration() (time.Duration, bool) {
	return s.duration, true
}

// NextSample returns the next interleaved sample of the file.
func (s *Source) NextSample() (float64, bool) {
	if s.eof {
		return 0, false
	}

	if s.pos >= s.n {
		n, err := s.decoder.PCMBuffer(s.buf)
		if n == 0 || (err != nil && err != io.EOF && err != io.ErrUnexpectedEOF) {
			s.close()
			return 0, false
		}
		s.n = n
		s.pos = 0
	}

	sample := float64(s.buf.Data[s.pos]) / s.divider
	s.pos++
	return sample, true
}

// Close releases the underlying file. Reading past the end closes the
// source as well.
func (s *Source) Close() error {
	if s.eof {
		return nil
	}
	return s.close()
}

func (s *Source) close() error {
	s.eof = true
	return s.file.Close()
}

// Export writes interleaved samples as a 16-bit PCM wav file.
func Export(path string, sampleRate, numChannels int, samples []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := wav.NewEncoder(file, sampleRate, 16, numChannels, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, sample := range samples {
		buf.Data[i] = int(int16(int32(sample * exportScale)))
	}

	if err := encoder.Write(buf); err != nil {
		file.Close()
		return err
	}
	if err := encoder.Close(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
