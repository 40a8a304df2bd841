package settings

import (
	"runwalk/internal/audio"
	"runwalk/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	RunSeconds  int
	WalkSeconds int
	Cycles      int
	CadenceSPM  int
	BeatSound   string
	Muted       bool
}

// DefaultSettings returns the default preferences for RunWalk.
func DefaultSettings() Settings {
	config := model.DefaultConfig()
	return Settings{
		RunSeconds:  config.RunSeconds,
		WalkSeconds: config.WalkSeconds,
		Cycles:      config.Cycles,
		CadenceSPM:  config.CadenceSPM,
		BeatSound:   audio.SoundTone,
		Muted:       false,
	}
}

// WorkoutConfig converts settings to a clamped workout config.
func (settings Settings) WorkoutConfig() model.WorkoutConfig {
	return model.WorkoutConfig{
		RunSeconds:  settings.RunSeconds,
		WalkSeconds: settings.WalkSeconds,
		Cycles:      settings.Cycles,
		CadenceSPM:  settings.CadenceSPM,
	}.Clamp()
}

// Normalize clamps numeric fields and replaces an unknown beat sound with
// the synthesized tone.
func (settings Settings) Normalize() Settings {
	config := settings.WorkoutConfig()
	settings.RunSeconds = config.RunSeconds
	settings.WalkSeconds = config.WalkSeconds
	settings.Cycles = config.Cycles
	settings.CadenceSPM = config.CadenceSPM

	known := false
	for _, name := range audio.Sounds() {
		if settings.BeatSound == name {
			known = true
			break
		}
	}
	if !known {
		settings.BeatSound = audio.SoundTone
	}
	return settings
}
