package model

import "time"

// Cadence bounds in steps per minute.
const (
	MinCadenceSPM = 60
	MaxCadenceSPM = 240
)

// WorkoutConfig defines one committed run/walk program. A config is
// immutable once committed; changing settings replaces it wholesale and
// resets the session.
type WorkoutConfig struct {
	RunSeconds  int
	WalkSeconds int
	Cycles      int
	CadenceSPM  int
}

// DefaultConfig returns the out-of-the-box workout program.
func DefaultConfig() WorkoutConfig {
	return WorkoutConfig{
		RunSeconds:  60,
		WalkSeconds: 90,
		Cycles:      8,
		CadenceSPM:  180,
	}
}

// Clamp returns a copy with every field forced into its valid range.
// Time and cycle fields have a minimum of 1; cadence is bounded to
// [MinCadenceSPM, MaxCadenceSPM]. Out-of-range input is never an error.
func (config WorkoutConfig) Clamp() WorkoutConfig {
	if config.RunSeconds < 1 {
		config.RunSeconds = 1
	}
	if config.WalkSeconds < 1 {
		config.WalkSeconds = 1
	}
	if config.Cycles < 1 {
		config.Cycles = 1
	}
	if config.CadenceSPM < MinCadenceSPM {
		config.CadenceSPM = MinCadenceSPM
	}
	if config.CadenceSPM > MaxCadenceSPM {
		config.CadenceSPM = MaxCadenceSPM
	}
	return config
}

// CycleDuration returns the length of one run+walk cycle in seconds.
func (config WorkoutConfig) CycleDuration() int {
	return config.RunSeconds + config.WalkSeconds
}

// TotalDuration returns the full workout length in seconds.
func (config WorkoutConfig) TotalDuration() int {
	return config.CycleDuration() * config.Cycles
}

// BeatInterval returns the time between cadence beats: 60/CadenceSPM seconds.
func (config WorkoutConfig) BeatInterval() time.Duration {
	if config.CadenceSPM <= 0 {
		return 0
	}
	return time.Minute / time.Duration(config.CadenceSPM)
}
