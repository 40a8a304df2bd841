// Package audio emits the workout's transition cues and cadence beats
// through the system speaker. Audio is cosmetic: if the speaker cannot be
// initialized every cue degrades to a no-op, and a beat sample that fails to
// decode falls back to the synthesized tone for that beat.
package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"runwalk/internal/core/phase"
	"runwalk/resources"
)

const playbackRate = beep.SampleRate(44100)

// Selectable cadence beat sounds. SoundTone is synthesized; the others are
// embedded WAV samples.
const (
	SoundTone      = "tone"
	SoundClick     = "click"
	SoundWoodblock = "woodblock"
)

// Sounds lists the selectable beat sounds in display order.
func Sounds() []string {
	return []string{SoundTone, SoundClick, SoundWoodblock}
}

// Player plays short cues, fire-and-forget. All methods return immediately;
// the speaker mixes in the background for the sound's own duration.
type Player struct {
	mu        sync.Mutex
	available bool
	beatSound string
	samples   map[string]*beep.Buffer
}

// NewPlayer initializes the speaker. On error the Player is still returned
// and stays usable with playback disabled; the error only explains why
// audio is unavailable.
func NewPlayer() (*Player, error) {
	player := &Player{
		beatSound: SoundTone,
		samples:   make(map[string]*beep.Buffer),
	}
	if err := speaker.Init(playbackRate, playbackRate.N(50*time.Millisecond)); err != nil {
		return player, fmt.Errorf("init speaker: %w", err)
	}
	player.available = true
	return player, nil
}

// SetBeatSound selects the cadence beat sound. Unknown names are accepted
// and fall back to the synthesized tone at playback time.
func (player *Player) SetBeatSound(name string) {
	player.mu.Lock()
	player.beatSound = name
	player.mu.Unlock()
}

// BeatSound returns the selected beat sound name.
func (player *Player) BeatSound() string {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.beatSound
}

// PhaseCue plays the transition cue for entering the given phase. Transition
// cues are never muted.
func (player *Player) PhaseCue(next phase.Phase) {
	if next == phase.Run {
		player.play(tone(880, 180*time.Millisecond))
	} else {
		player.play(tone(520, 180*time.Millisecond))
	}
}

// CompletionCue plays the workout-finished cue.
func (player *Player) CompletionCue() {
	player.play(beep.Seq(
		tone(660, 150*time.Millisecond),
		tone(880, 320*time.Millisecond),
	))
}

// Beat plays one cadence beat with the selected sound.
func (player *Player) Beat() {
	name := player.BeatSound()
	if name != SoundTone {
		if buffer, err := player.sample(name); err == nil {
			player.play(buffer.Streamer(0, buffer.Len()))
			return
		}
		// Sample unavailable this beat; the next beat retries the load.
	}
	player.play(tone(1000, 40*time.Millisecond))
}

// sample returns the decoded buffer for an embedded beat sample, caching it
// after the first successful load.
func (player *Player) sample(name string) (*beep.Buffer, error) {
	player.mu.Lock()
	defer player.mu.Unlock()

	if buffer, ok := player.samples[name]; ok {
		return buffer, nil
	}

	data, err := resources.Sample(name + ".wav")
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode sample %s: %w", name, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  playbackRate,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	if format.SampleRate == playbackRate {
		buffer.Append(streamer)
	} else {
		buffer.Append(beep.Resample(4, format.SampleRate, playbackRate, streamer))
	}
	player.samples[name] = buffer
	return buffer, nil
}

func (player *Player) play(streamer beep.Streamer) {
	player.mu.Lock()
	available := player.available
	player.mu.Unlock()
	if !available || streamer == nil {
		return
	}
	speaker.Play(streamer)
}
