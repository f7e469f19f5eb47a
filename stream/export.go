package stream

import (
	"github.com/dudk/chord/log"
	"github.com/dudk/chord/mixer"
	"github.com/dudk/chord/music"
	"github.com/dudk/chord/wav"
)

// Export render configuration. No device is involved, the rate and layout
// are fixed.
const (
	exportSampleRate  = 44100
	exportNumChannels = 2
)

// Export renders the description offline and writes it to a wav file.
func Export(m *music.Music, path string) error {
	mix, controller := mixer.New(exportNumChannels, exportSampleRate)

	var samples []float64
	render(mix, controller, buildSchedule(m), m.BPM, func(value float64) {
		samples = append(samples, value)
	})

	log.GetLogger().Debugf("export: rendered %v samples to %v", len(samples), path)
	return wav.Export(path, exportSampleRate, exportNumChannels, samples)
}
