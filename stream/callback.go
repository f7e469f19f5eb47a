package stream

import "github.com/dudk/chord/device"

// callback returns the device callback draining the bridge queue. When the
// queue runs dry it fills at most one frame with silence per attempt, and
// when the dry spell hits inside a frame the completing zeroes are written
// at the start of the next invocation, so samples never shift across
// channels.
func (s *OutputStream) callback() device.Callback {
	scratch := make([]float32, s.queue.Cap())
	overlap := 0

	return func(buffer []float32, numChannels, numFrames int) {
		pos := 0

		for i := 0; i < overlap; i++ {
			buffer[i] = 0
		}
		pos += overlap
		overlap = 0

		for pos < len(buffer) {
			remaining := len(buffer) - pos

			want := remaining
			if want > len(scratch) {
				want = len(scratch)
			}
			count := s.queue.TryDequeueBulk(scratch[:want])
			if count > 0 {
				copy(buffer[pos:], scratch[:count])
				pos += count
				continue
			}

			zeroes := numChannels
			if zeroes > remaining {
				zeroes = remaining
				overlap = numChannels - remaining
			}
			for i := 0; i < zeroes; i++ {
				buffer[pos+i] = 0
			}
			pos += zeroes
		}
	}
}
