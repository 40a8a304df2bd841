package audio

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
)

// tone returns a fixed-length sine streamer at the given frequency.
func tone(freq int, duration time.Duration) beep.Streamer {
	sine, err := generators.SineTone(playbackRate, float64(freq))
	if err != nil {
		return nil
	}
	return beep.Take(playbackRate.N(duration), sine)
}
