// Package session orchestrates the workout: it owns the one-second clock,
// feeds it through the phase engine and keeps the cadence scheduler in sync
// with the run/mute state.
package session

import (
	"errors"
	"sync"
	"time"

	"runwalk/internal/core/cadence"
	"runwalk/internal/core/model"
	"runwalk/internal/core/phase"
)

// ErrSessionRunning indicates a settings commit was attempted mid-workout.
var ErrSessionRunning = errors.New("session is running")

// CueEmitter plays short audio cues. Implementations must not block; cue
// failures are their own concern and never reach the controller.
type CueEmitter interface {
	PhaseCue(next phase.Phase)
	CompletionCue()
	Beat()
}

// Config contains runtime options for the Controller.
type Config struct {
	TickInterval time.Duration
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	Status         Status
	Config         model.WorkoutConfig
	Elapsed        int
	Total          int
	Phase          phase.Phase
	Cycle          int
	PhaseRemaining int
	Progress       float64
	Muted          bool
	CadenceActive  bool
}

// Controller is the session state machine. The tick loop is the sole writer
// of elapsed time; commands and ticks serialize on one mutex, so a pause or
// reset returns only after any in-flight tick has finished.
type Controller struct {
	mu      sync.Mutex
	config  model.WorkoutConfig
	options Config
	elapsed int
	status  Status
	muted   bool
	beats   *cadence.Scheduler
	beatsOn bool
	cues    CueEmitter
	events  []chan Event
	stopCh  chan struct{}
	looping bool
	closed  bool
}

// New creates a Controller with the provided workout config. The config is
// clamped to valid bounds; cues may be nil for a silent session.
func New(config model.WorkoutConfig, options Config, cues CueEmitter) *Controller {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	controller := &Controller{
		config:  config.Clamp(),
		options: options,
		status:  StatusIdle,
		cues:    cues,
		stopCh:  make(chan struct{}),
	}
	// The beat callback only touches the cue emitter, never the controller,
	// so tick and beat timelines cannot deadlock.
	controller.beats = cadence.New(func() {
		if cues != nil {
			cues.Beat()
		}
	})
	return controller
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	controller.events = append(controller.events, ch)
	controller.mu.Unlock()
	return ch
}

// Start begins the workout from Idle or resumes it from Paused. A completed
// session stays terminal until Reset.
func (controller *Controller) Start() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.closed || controller.status == StatusRunning || controller.status == StatusCompleted {
		return
	}
	controller.status = StatusRunning
	if !controller.looping {
		controller.looping = true
		go controller.run()
	}
	controller.syncBeatsLocked()
	controller.emitLocked(controller.eventLocked(EventStateChange))
}

// Pause freezes the session. On return no further tick advances elapsed time
// and no further beat fires.
func (controller *Controller) Pause() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.status != StatusRunning {
		return
	}
	controller.status = StatusPaused
	controller.syncBeatsLocked()
	controller.emitLocked(controller.eventLocked(EventStateChange))
}

// Reset returns the session to Idle with zero elapsed time from any status
// and cancels any pending beat.
func (controller *Controller) Reset() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.elapsed = 0
	controller.status = StatusIdle
	controller.syncBeatsLocked()
	controller.emitLocked(controller.eventLocked(EventStateChange))
}

// ToggleMute flips beat muting and returns the new state. Transition cues
// are unaffected; only the cadence beat is silenced.
func (controller *Controller) ToggleMute() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.muted = !controller.muted
	controller.syncBeatsLocked()
	controller.emitLocked(controller.eventLocked(EventMuteChange))
	return controller.muted
}

// CommitConfig replaces the workout config and forces a reset to Idle. It is
// rejected while the session is running.
func (controller *Controller) CommitConfig(config model.WorkoutConfig) error {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.status == StatusRunning {
		return ErrSessionRunning
	}
	controller.config = config.Clamp()
	controller.elapsed = 0
	controller.status = StatusIdle
	controller.syncBeatsLocked()
	controller.emitLocked(controller.eventLocked(EventStateChange))
	return nil
}

// Snapshot returns the current derived view.
func (controller *Controller) Snapshot() Snapshot {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.snapshotLocked()
}

// Close terminates the tick loop and closes observer channels. The
// controller is unusable afterwards.
func (controller *Controller) Close() {
	controller.mu.Lock()
	if controller.closed {
		controller.mu.Unlock()
		return
	}
	controller.closed = true
	controller.status = StatusIdle
	controller.beats.Stop()
	controller.beatsOn = false
	close(controller.stopCh)
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) run() {
	ticker := time.NewTicker(controller.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-controller.stopCh:
			return
		case tickTime := <-ticker.C:
			controller.tick(tickTime)
		}
	}
}

func (controller *Controller) tick(tickTime time.Time) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.status != StatusRunning {
		return
	}

	newElapsed, events := phase.Advance(controller.elapsed, controller.config)
	controller.elapsed = newElapsed

	for _, event := range events {
		switch event.Kind {
		case phase.EventPhaseChanged:
			if controller.cues != nil {
				controller.cues.PhaseCue(event.Phase)
			}
			emitted := controller.eventLocked(EventPhaseChange)
			emitted.Phase = event.Phase
			emitted.At = tickTime
			controller.emitLocked(emitted)
		case phase.EventCycleChanged:
			// Carried by the surrounding phase change event; the snapshot
			// in every event already holds the derived cycle.
		case phase.EventCompleted:
			controller.status = StatusCompleted
			if controller.cues != nil {
				controller.cues.CompletionCue()
			}
			emitted := controller.eventLocked(EventCompleted)
			emitted.At = tickTime
			controller.emitLocked(emitted)
		}
	}

	controller.syncBeatsLocked()
	if controller.status == StatusRunning {
		emitted := controller.eventLocked(EventProgress)
		emitted.At = tickTime
		controller.emitLocked(emitted)
	}
}

// syncBeatsLocked enforces the cadence invariant: a beat handle is live iff
// running && phase==run && !muted. Start is only issued on edges so a tick
// mid-phase never resets the sub-second beat schedule.
func (controller *Controller) syncBeatsLocked() {
	view := phase.At(controller.elapsed, controller.config)
	want := controller.status == StatusRunning && view.Phase == phase.Run &&
		!view.Completed && !controller.muted
	if want == controller.beatsOn {
		return
	}
	controller.beatsOn = want
	if want {
		controller.beats.Start(controller.config.BeatInterval())
	} else {
		controller.beats.Stop()
	}
}

func (controller *Controller) snapshotLocked() Snapshot {
	view := phase.At(controller.elapsed, controller.config)
	total := controller.config.TotalDuration()
	progress := 0.0
	if total > 0 {
		progress = float64(controller.elapsed) / float64(total)
	}
	return Snapshot{
		Status:         controller.status,
		Config:         controller.config,
		Elapsed:        controller.elapsed,
		Total:          total,
		Phase:          view.Phase,
		Cycle:          view.Cycle,
		PhaseRemaining: view.PhaseRemaining,
		Progress:       progress,
		Muted:          controller.muted,
		CadenceActive:  controller.beats.Active(),
	}
}

func (controller *Controller) eventLocked(eventType EventType) Event {
	snapshot := controller.snapshotLocked()
	return Event{
		Type:      eventType,
		Status:    snapshot.Status,
		Phase:     snapshot.Phase,
		Cycle:     snapshot.Cycle,
		Elapsed:   snapshot.Elapsed,
		Remaining: snapshot.PhaseRemaining,
		Progress:  snapshot.Progress,
		Muted:     snapshot.Muted,
		At:        time.Now(),
	}
}

func (controller *Controller) emitLocked(event Event) {
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
