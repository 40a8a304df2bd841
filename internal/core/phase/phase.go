// Package phase derives the run/walk state of a workout from elapsed time.
// Elapsed seconds are the single source of truth: phase, cycle and remaining
// time are always computed, never stored, so they cannot diverge. The package
// has no dependencies beyond the config model and performs no I/O.
package phase

import "runwalk/internal/core/model"

// Phase identifies the active segment of a cycle.
type Phase int

const (
	Run Phase = iota
	Walk
)

func (p Phase) String() string {
	if p == Walk {
		return "walk"
	}
	return "run"
}

// EventKind identifies a transition produced by one tick.
type EventKind int

const (
	EventPhaseChanged EventKind = iota
	EventCycleChanged
	EventCompleted
)

// Event describes one transition crossed while advancing a single second.
type Event struct {
	Kind  EventKind
	Phase Phase // valid for EventPhaseChanged
	Cycle int   // valid for EventCycleChanged
}

// Snapshot is the derived view of a session at a given elapsed second.
type Snapshot struct {
	Phase          Phase
	Cycle          int
	TimeInCycle    int
	PhaseRemaining int
	Completed      bool
}

// At computes the derived view for the given elapsed time. The config must
// already be clamped; At never fails for in-range input.
func At(elapsed int, config model.WorkoutConfig) Snapshot {
	total := config.TotalDuration()
	if elapsed >= total {
		return Snapshot{
			Phase:     Run,
			Cycle:     config.Cycles,
			Completed: true,
		}
	}
	if elapsed < 0 {
		elapsed = 0
	}

	cycleDuration := config.CycleDuration()
	timeInCycle := elapsed % cycleDuration
	snapshot := Snapshot{
		Cycle:       elapsed/cycleDuration + 1,
		TimeInCycle: timeInCycle,
	}
	if timeInCycle < config.RunSeconds {
		snapshot.Phase = Run
		snapshot.PhaseRemaining = config.RunSeconds - timeInCycle
	} else {
		snapshot.Phase = Walk
		snapshot.PhaseRemaining = config.WalkSeconds - (timeInCycle - config.RunSeconds)
	}
	if snapshot.PhaseRemaining < 0 {
		snapshot.PhaseRemaining = 0
	}
	return snapshot
}

// Advance moves elapsed time forward by exactly one second and reports the
// transitions crossed, in temporal order. Reaching the total duration clamps
// elapsed and emits EventCompleted; the caller must stop ticking until reset.
//
// A zero-length segment collapses into its neighbour within the same tick:
// both phase transitions are still emitted, in order, and the cycle is
// counted once.
func Advance(elapsed int, config model.WorkoutConfig) (int, []Event) {
	total := config.TotalDuration()
	next := elapsed + 1
	if next >= total {
		return total, []Event{{Kind: EventCompleted}}
	}

	cycleDuration := config.CycleDuration()
	timeInCycle := next % cycleDuration
	newCycle := next/cycleDuration + 1
	current := At(elapsed, config).Phase

	var events []Event
	if timeInCycle == 0 && next > 0 {
		if current == Run && config.WalkSeconds == 0 {
			// Walk segment skipped entirely: enter and leave it here.
			events = append(events,
				Event{Kind: EventPhaseChanged, Phase: Walk},
				Event{Kind: EventCycleChanged, Cycle: newCycle})
			current = Walk
		}
		if current == Walk {
			events = append(events,
				Event{Kind: EventPhaseChanged, Phase: Run},
				Event{Kind: EventCycleChanged, Cycle: newCycle})
			current = Run
		}
	}
	if current == Run && timeInCycle == config.RunSeconds {
		events = append(events,
			Event{Kind: EventPhaseChanged, Phase: Walk},
			Event{Kind: EventCycleChanged, Cycle: newCycle})
	}
	return next, events
}
