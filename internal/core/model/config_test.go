package model

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   WorkoutConfig
		want WorkoutConfig
	}{
		{
			name: "valid config untouched",
			in:   WorkoutConfig{RunSeconds: 60, WalkSeconds: 90, Cycles: 8, CadenceSPM: 180},
			want: WorkoutConfig{RunSeconds: 60, WalkSeconds: 90, Cycles: 8, CadenceSPM: 180},
		},
		{
			name: "zero durations floored at one",
			in:   WorkoutConfig{RunSeconds: 0, WalkSeconds: 0, Cycles: 0, CadenceSPM: 180},
			want: WorkoutConfig{RunSeconds: 1, WalkSeconds: 1, Cycles: 1, CadenceSPM: 180},
		},
		{
			name: "negative values floored at one",
			in:   WorkoutConfig{RunSeconds: -5, WalkSeconds: -1, Cycles: -2, CadenceSPM: 180},
			want: WorkoutConfig{RunSeconds: 1, WalkSeconds: 1, Cycles: 1, CadenceSPM: 180},
		},
		{
			name: "cadence below range",
			in:   WorkoutConfig{RunSeconds: 60, WalkSeconds: 90, Cycles: 8, CadenceSPM: 10},
			want: WorkoutConfig{RunSeconds: 60, WalkSeconds: 90, Cycles: 8, CadenceSPM: 60},
		},
		{
			name: "cadence above range",
			in:   WorkoutConfig{RunSeconds: 60, WalkSeconds: 90, Cycles: 8, CadenceSPM: 500},
			want: WorkoutConfig{RunSeconds: 60, WalkSeconds: 90, Cycles: 8, CadenceSPM: 240},
		},
	}
	for _, test := range tests {
		if got := test.in.Clamp(); got != test.want {
			t.Errorf("%s: got %+v, want %+v", test.name, got, test.want)
		}
	}
}

func TestDerivedDurations(t *testing.T) {
	config := WorkoutConfig{RunSeconds: 5, WalkSeconds: 3, Cycles: 2, CadenceSPM: 120}
	if got := config.CycleDuration(); got != 8 {
		t.Errorf("cycle duration %d, want 8", got)
	}
	if got := config.TotalDuration(); got != 16 {
		t.Errorf("total duration %d, want 16", got)
	}
}

func TestBeatInterval(t *testing.T) {
	config := WorkoutConfig{CadenceSPM: 120}
	if got := config.BeatInterval(); got != 500*time.Millisecond {
		t.Errorf("interval %v, want 500ms", got)
	}
	config.CadenceSPM = 60
	if got := config.BeatInterval(); got != time.Second {
		t.Errorf("interval %v, want 1s", got)
	}
	config.CadenceSPM = 0
	if got := config.BeatInterval(); got != 0 {
		t.Errorf("interval %v, want 0 for zero cadence", got)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	if config != config.Clamp() {
		t.Errorf("default config %+v changed by clamping", config)
	}
}
