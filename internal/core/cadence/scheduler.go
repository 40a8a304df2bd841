// Package cadence schedules the periodic beat fired during the run phase.
package cadence

import (
	"sync"
	"time"
)

// Scheduler owns the single cadence beat handle. At most one beat is pending
// at any instant: Start cancels any prior schedule before arming a new one,
// and once Stop returns no further beat callback runs until the next Start.
type Scheduler struct {
	mu         sync.Mutex
	onBeat     func()
	timer      *time.Timer
	interval   time.Duration
	generation uint64
}

// New creates a scheduler that invokes onBeat on every cadence beat. The
// callback runs on a timer goroutine and must not block; it must also never
// call back into the scheduler's owner while holding that owner's lock order
// above the scheduler.
func New(onBeat func()) *Scheduler {
	return &Scheduler{onBeat: onBeat}
}

// Start arms the beat schedule at the given interval, superseding any
// existing schedule. Calling Start twice without an intervening Stop leaves
// exactly one pending beat.
func (scheduler *Scheduler) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.generation++
	if scheduler.timer != nil {
		scheduler.timer.Stop()
	}
	scheduler.interval = interval
	scheduler.armLocked(scheduler.generation)
}

// Stop cancels the pending beat. An in-flight fire waiting on the lock sees
// the stale generation and returns without beating, so no beat is delivered
// after Stop returns.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	scheduler.generation++
	if scheduler.timer != nil {
		scheduler.timer.Stop()
		scheduler.timer = nil
	}
}

// Active reports whether a beat is currently scheduled.
func (scheduler *Scheduler) Active() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.timer != nil
}

func (scheduler *Scheduler) armLocked(generation uint64) {
	scheduler.timer = time.AfterFunc(scheduler.interval, func() {
		scheduler.fire(generation)
	})
}

func (scheduler *Scheduler) fire(generation uint64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if generation != scheduler.generation {
		// Superseded or stopped while this beat was in flight.
		return
	}
	// Re-arm before beating so audio latency never drifts the schedule.
	scheduler.armLocked(generation)
	if scheduler.onBeat != nil {
		scheduler.onBeat()
	}
}
