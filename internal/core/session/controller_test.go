package session

import (
	"sync/atomic"
	"testing"
	"time"

	"runwalk/internal/core/model"
	"runwalk/internal/core/phase"
)

type fakeCues struct {
	phaseCues   atomic.Int64
	completions atomic.Int64
	beats       atomic.Int64
	lastPhase   atomic.Int64
}

func (cues *fakeCues) PhaseCue(next phase.Phase) {
	cues.phaseCues.Add(1)
	cues.lastPhase.Store(int64(next))
}

func (cues *fakeCues) CompletionCue() { cues.completions.Add(1) }
func (cues *fakeCues) Beat()          { cues.beats.Add(1) }

func fastOptions() Config {
	return Config{TickInterval: 2 * time.Millisecond}
}

func waitFor(t *testing.T, what string, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !condition() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewStartsIdle(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 5, WalkSeconds: 3, Cycles: 2, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	snapshot := controller.Snapshot()
	if snapshot.Status != StatusIdle {
		t.Errorf("status %s, want idle", snapshot.Status)
	}
	if snapshot.Elapsed != 0 || snapshot.Phase != phase.Run || snapshot.Cycle != 1 {
		t.Errorf("unexpected initial snapshot %+v", snapshot)
	}
	if snapshot.Total != 16 {
		t.Errorf("total %d, want 16", snapshot.Total)
	}
	if snapshot.CadenceActive {
		t.Error("cadence must be inactive while idle")
	}
}

func TestConfigClampedOnNew(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 0, WalkSeconds: -3, Cycles: 0, CadenceSPM: 10}, fastOptions(), nil)
	defer controller.Close()

	config := controller.Snapshot().Config
	if config.RunSeconds != 1 || config.WalkSeconds != 1 || config.Cycles != 1 {
		t.Errorf("durations not clamped: %+v", config)
	}
	if config.CadenceSPM != model.MinCadenceSPM {
		t.Errorf("cadence %d, want %d", config.CadenceSPM, model.MinCadenceSPM)
	}
}

func TestStartPauseResume(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 1000, WalkSeconds: 1000, Cycles: 1, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	controller.Start()
	waitFor(t, "elapsed to advance", func() bool { return controller.Snapshot().Elapsed >= 2 })

	controller.Pause()
	frozen := controller.Snapshot()
	if frozen.Status != StatusPaused {
		t.Fatalf("status %s, want paused", frozen.Status)
	}
	time.Sleep(20 * time.Millisecond)
	if got := controller.Snapshot().Elapsed; got != frozen.Elapsed {
		t.Errorf("elapsed advanced from %d to %d while paused", frozen.Elapsed, got)
	}

	controller.Start()
	waitFor(t, "resume to advance", func() bool { return controller.Snapshot().Elapsed > frozen.Elapsed })
	if controller.Snapshot().Status != StatusRunning {
		t.Error("status should be running after resume")
	}
}

func TestCompletion(t *testing.T) {
	cues := &fakeCues{}
	controller := New(model.WorkoutConfig{RunSeconds: 1, WalkSeconds: 1, Cycles: 1, CadenceSPM: 60}, fastOptions(), cues)
	defer controller.Close()

	events := controller.Subscribe(64)
	controller.Start()

	waitFor(t, "completion", func() bool { return controller.Snapshot().Status == StatusCompleted })

	snapshot := controller.Snapshot()
	if snapshot.Elapsed != snapshot.Total {
		t.Errorf("elapsed %d, want clamp to total %d", snapshot.Elapsed, snapshot.Total)
	}
	if snapshot.CadenceActive {
		t.Error("cadence must stop on completion")
	}
	if got := cues.completions.Load(); got != 1 {
		t.Errorf("completion cue played %d times, want 1", got)
	}

	// Start is terminal until reset.
	controller.Start()
	if controller.Snapshot().Status != StatusCompleted {
		t.Error("start from completed must be a no-op")
	}

	sawCompleted := false
	drain := true
	for drain {
		select {
		case event := <-events:
			if event.Type == EventCompleted {
				sawCompleted = true
			}
		default:
			drain = false
		}
	}
	if !sawCompleted {
		t.Error("no completed event observed")
	}
}

func TestPhaseTransitionCues(t *testing.T) {
	cues := &fakeCues{}
	controller := New(model.WorkoutConfig{RunSeconds: 2, WalkSeconds: 2, Cycles: 2, CadenceSPM: 60}, fastOptions(), cues)
	defer controller.Close()

	controller.Start()
	waitFor(t, "completion", func() bool { return controller.Snapshot().Status == StatusCompleted })

	// 2/2/2 crosses run->walk, walk->run, run->walk before completing.
	if got := cues.phaseCues.Load(); got != 3 {
		t.Errorf("phase cues %d, want 3", got)
	}
}

func TestCadenceInvariant(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 1000, WalkSeconds: 1000, Cycles: 1, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	active := func() bool { return controller.Snapshot().CadenceActive }

	controller.Start()
	waitFor(t, "cadence to arm", active)

	if muted := controller.ToggleMute(); !muted {
		t.Fatal("toggle should report muted")
	}
	if active() {
		t.Error("cadence must stop on mute")
	}

	controller.ToggleMute()
	if !active() {
		t.Error("cadence must restart on unmute while running")
	}

	controller.Pause()
	if active() {
		t.Error("cadence must stop on pause")
	}

	controller.Start()
	if !active() {
		t.Error("cadence must restart on resume in run phase")
	}

	controller.Reset()
	if active() {
		t.Error("cadence must stop on reset")
	}
	if snapshot := controller.Snapshot(); snapshot.Status != StatusIdle || snapshot.Elapsed != 0 {
		t.Errorf("reset snapshot %+v", snapshot)
	}
}

func TestCadenceStopsInWalkPhase(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 1, WalkSeconds: 1000, Cycles: 1, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	controller.Start()
	waitFor(t, "walk phase", func() bool { return controller.Snapshot().Phase == phase.Walk })
	if controller.Snapshot().CadenceActive {
		t.Error("cadence must be inactive during walk phase")
	}
}

func TestResetDuringWalk(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 1, WalkSeconds: 1000, Cycles: 2, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	controller.Start()
	waitFor(t, "walk phase", func() bool { return controller.Snapshot().Phase == phase.Walk })

	controller.Reset()
	snapshot := controller.Snapshot()
	if snapshot.Status != StatusIdle || snapshot.Elapsed != 0 {
		t.Errorf("reset snapshot %+v", snapshot)
	}
	if snapshot.Phase != phase.Run || snapshot.Cycle != 1 {
		t.Errorf("derived view after reset %+v, want run phase cycle 1", snapshot)
	}
	if snapshot.CadenceActive {
		t.Error("pending beat must be cancelled by reset")
	}
}

func TestCommitConfig(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 1000, WalkSeconds: 1000, Cycles: 1, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	controller.Start()
	waitFor(t, "elapsed to advance", func() bool { return controller.Snapshot().Elapsed >= 1 })

	if err := controller.CommitConfig(model.WorkoutConfig{RunSeconds: 5, WalkSeconds: 3, Cycles: 2, CadenceSPM: 180}); err != ErrSessionRunning {
		t.Fatalf("commit while running: got %v, want ErrSessionRunning", err)
	}

	controller.Pause()
	newConfig := model.WorkoutConfig{RunSeconds: 5, WalkSeconds: 3, Cycles: 2, CadenceSPM: 180}
	if err := controller.CommitConfig(newConfig); err != nil {
		t.Fatalf("commit while paused: %v", err)
	}

	snapshot := controller.Snapshot()
	if snapshot.Status != StatusIdle || snapshot.Elapsed != 0 {
		t.Errorf("commit must reset to idle: %+v", snapshot)
	}
	if snapshot.Total != 16 {
		t.Errorf("total %d, want 16 from new config", snapshot.Total)
	}
	if snapshot.Config != newConfig {
		t.Errorf("config %+v, want %+v", snapshot.Config, newConfig)
	}
}

func TestMutedBeatsSilent(t *testing.T) {
	cues := &fakeCues{}
	controller := New(model.WorkoutConfig{RunSeconds: 1000, WalkSeconds: 1, Cycles: 1, CadenceSPM: 240}, Config{TickInterval: 10 * time.Millisecond}, cues)
	defer controller.Close()

	controller.ToggleMute()
	controller.Start()
	time.Sleep(600 * time.Millisecond)
	if got := cues.beats.Load(); got != 0 {
		t.Errorf("%d beats while muted, want 0", got)
	}

	controller.ToggleMute()
	waitFor(t, "beats after unmute", func() bool { return cues.beats.Load() > 0 })
}

func TestSubscribeReceivesProgress(t *testing.T) {
	controller := New(model.WorkoutConfig{RunSeconds: 1000, WalkSeconds: 1000, Cycles: 1, CadenceSPM: 120}, fastOptions(), nil)
	defer controller.Close()

	events := controller.Subscribe(64)
	controller.Start()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventProgress {
				if event.Status != StatusRunning || event.Elapsed < 1 {
					t.Errorf("unexpected progress event %+v", event)
				}
				return
			}
		case <-deadline:
			t.Fatal("no progress event observed")
		}
	}
}

func TestCloseClosesObservers(t *testing.T) {
	controller := New(model.DefaultConfig(), fastOptions(), nil)
	events := controller.Subscribe(1)
	controller.Start()
	controller.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("observer channel not closed")
		}
	}
}
