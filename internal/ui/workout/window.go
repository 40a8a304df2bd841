package workout

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"runwalk/internal/core/phase"
	"runwalk/internal/core/session"
)

// Callbacks defines workout window action handlers.
type Callbacks struct {
	OnStartPause func()
	OnReset      func()
	OnToggleMute func()
	OnSettings   func()
}

// Window is the main workout display. It only issues commands through the
// callbacks and renders derived snapshots; it never mutates session state.
type Window struct {
	window         fyne.Window
	phaseLabel     *widget.Label
	remainingLabel *widget.Label
	cycleLabel     *widget.Label
	elapsedLabel   *widget.Label
	progress       *widget.ProgressBar
	startButton    *widget.Button
	muteButton     *widget.Button
}

// New creates the workout window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("RunWalk")

	phaseLabel := widget.NewLabelWithStyle("READY", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	remainingLabel := widget.NewLabelWithStyle("00:00", fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	cycleLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	elapsedLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	progress := widget.NewProgressBar()

	startButton := widget.NewButton("Start", nil)
	resetButton := widget.NewButton("Reset", nil)
	muteButton := widget.NewButton("Mute beats", nil)
	settingsButton := widget.NewButton("Settings", nil)

	startButton.OnTapped = func() {
		if callbacks.OnStartPause != nil {
			callbacks.OnStartPause()
		}
	}
	resetButton.OnTapped = func() {
		if callbacks.OnReset != nil {
			callbacks.OnReset()
		}
	}
	muteButton.OnTapped = func() {
		if callbacks.OnToggleMute != nil {
			callbacks.OnToggleMute()
		}
	}
	settingsButton.OnTapped = func() {
		if callbacks.OnSettings != nil {
			callbacks.OnSettings()
		}
	}

	content := container.NewVBox(
		phaseLabel,
		remainingLabel,
		cycleLabel,
		progress,
		elapsedLabel,
		container.NewGridWithColumns(2, startButton, resetButton),
		container.NewGridWithColumns(2, muteButton, settingsButton),
	)
	window.SetContent(content)
	window.Resize(fyne.NewSize(320, 300))

	return &Window{
		window:         window,
		phaseLabel:     phaseLabel,
		remainingLabel: remainingLabel,
		cycleLabel:     cycleLabel,
		elapsedLabel:   elapsedLabel,
		progress:       progress,
		startButton:    startButton,
		muteButton:     muteButton,
	}
}

// Show displays the workout window.
func (display *Window) Show() {
	display.window.Show()
}

// Raw returns the underlying Fyne window for app-level wiring.
func (display *Window) Raw() fyne.Window {
	return display.window
}

// Apply renders a session snapshot. It must be called on the Fyne thread.
func (display *Window) Apply(snapshot session.Snapshot) {
	display.phaseLabel.SetText(phaseBanner(snapshot))
	display.remainingLabel.SetText(formatClock(snapshot.PhaseRemaining))
	display.cycleLabel.SetText(fmt.Sprintf("Cycle %d / %d", snapshot.Cycle, snapshot.Config.Cycles))
	display.elapsedLabel.SetText(fmt.Sprintf("%s / %s elapsed",
		formatClock(snapshot.Elapsed), formatClock(snapshot.Total)))
	display.progress.SetValue(snapshot.Progress)
	display.startButton.SetText(startLabel(snapshot.Status))
	if snapshot.Muted {
		display.muteButton.SetText("Unmute beats")
	} else {
		display.muteButton.SetText("Mute beats")
	}
}

func phaseBanner(snapshot session.Snapshot) string {
	switch snapshot.Status {
	case session.StatusIdle:
		return "READY"
	case session.StatusCompleted:
		return "DONE"
	case session.StatusPaused:
		return "PAUSED"
	}
	if snapshot.Phase == phase.Walk {
		return "WALK"
	}
	return "RUN"
}

func startLabel(status session.Status) string {
	switch status {
	case session.StatusRunning:
		return "Pause"
	case session.StatusPaused:
		return "Resume"
	default:
		return "Start"
	}
}
