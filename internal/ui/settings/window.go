package settings

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"runwalk/internal/audio"
	"runwalk/internal/core/model"
)

// Window handles the settings UI. Committed values are always normalized:
// unparseable numbers keep the prior value and out-of-range numbers clamp.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	runEntry     *widget.Entry
	walkEntry    *widget.Entry
	cyclesEntry  *widget.Entry
	cadence      *widget.Slider
	cadenceLabel *widget.Label
	soundSelect  *widget.Select
}

// New creates a settings window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("RunWalk Settings")

	runEntry := widget.NewEntry()
	walkEntry := widget.NewEntry()
	cyclesEntry := widget.NewEntry()
	runEntry.SetText(strconv.Itoa(settings.RunSeconds))
	walkEntry.SetText(strconv.Itoa(settings.WalkSeconds))
	cyclesEntry.SetText(strconv.Itoa(settings.Cycles))

	cadenceLabel := widget.NewLabel(fmt.Sprintf("%d steps/min", settings.CadenceSPM))
	cadence := widget.NewSlider(model.MinCadenceSPM, model.MaxCadenceSPM)
	cadence.Value = float64(settings.CadenceSPM)
	cadence.Step = 5
	cadence.OnChanged = func(value float64) {
		cadenceLabel.SetText(fmt.Sprintf("%d steps/min", int(value)))
	}

	soundSelect := widget.NewSelect(audio.Sounds(), nil)
	soundSelect.SetSelected(settings.BeatSound)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Run for"), runEntry, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Walk for"), walkEntry, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Cycles"), cyclesEntry),
		widget.NewLabelWithStyle("Cadence", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		cadence,
		cadenceLabel,
		container.NewHBox(widget.NewLabel("Beat sound"), soundSelect),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 360))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:       window,
		settings:     settings,
		onSave:       onSave,
		runEntry:     runEntry,
		walkEntry:    walkEntry,
		cyclesEntry:  cyclesEntry,
		cadence:      cadence,
		cadenceLabel: cadenceLabel,
		soundSelect:  soundSelect,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces the displayed values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.runEntry.SetText(strconv.Itoa(settings.RunSeconds))
	prefs.walkEntry.SetText(strconv.Itoa(settings.WalkSeconds))
	prefs.cyclesEntry.SetText(strconv.Itoa(settings.Cycles))
	prefs.cadence.Value = float64(settings.CadenceSPM)
	prefs.cadence.Refresh()
	prefs.cadenceLabel.SetText(fmt.Sprintf("%d steps/min", settings.CadenceSPM))
	prefs.soundSelect.SetSelected(settings.BeatSound)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.runEntry.Text); ok {
		settings.RunSeconds = seconds
	}
	if seconds, ok := parsePositiveInt(prefs.walkEntry.Text); ok {
		settings.WalkSeconds = seconds
	}
	if cycles, ok := parsePositiveInt(prefs.cyclesEntry.Text); ok {
		settings.Cycles = cycles
	}
	settings.CadenceSPM = int(prefs.cadence.Value)
	if prefs.soundSelect.Selected != "" {
		settings.BeatSound = prefs.soundSelect.Selected
	}

	settings = settings.Normalize()
	prefs.settings = settings
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
