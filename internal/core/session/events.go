package session

import (
	"time"

	"runwalk/internal/core/phase"
)

// Status represents the current session mode.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// EventType defines the type of session event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
	EventMuteChange  EventType = "mute_change"
)

// Event represents a session update for observers. Every event carries the
// full derived view so observers never have to read back state.
type Event struct {
	Type      EventType
	Status    Status
	Phase     phase.Phase
	Cycle     int
	Elapsed   int
	Remaining int // seconds left in the current phase
	Progress  float64
	Muted     bool
	At        time.Time
}
