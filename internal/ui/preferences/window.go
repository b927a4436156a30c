// Package preferences provides the settings window.
package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"kotidash/internal/core/model"
)

const restartNote = "Changes apply on next start."

// Window edits the config file. The running dashboard keeps its config;
// saved values take effect after a restart, except autostart.
type Window struct {
	window     fyne.Window
	config     model.Config
	onSave     func(model.Config)
	location   *widget.Entry
	minutes    *widget.Entry
	seconds    *widget.Entry
	fullscreen *widget.Check
	debug      *widget.Check
	autostart  *widget.Check
	saveButton *widget.Button
}

// New creates a hidden settings window.
func New(app fyne.App, config model.Config, onSave func(model.Config)) *Window {
	window := app.NewWindow("kotidash settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		location:   widget.NewEntry(),
		minutes:    widget.NewEntry(),
		seconds:    widget.NewEntry(),
		fullscreen: widget.NewCheck("Fullscreen", nil),
		debug:      widget.NewCheck("Debug logging", nil),
		autostart:  widget.NewCheck("Start at login", nil),
	}
	prefs.UpdateConfig(config)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Dashboard", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Location", prefs.location),
			widget.NewFormItem("Weather update (min)", prefs.minutes),
			widget.NewFormItem("Screensaver after (s)", prefs.seconds),
		),
		prefs.fullscreen,
		prefs.debug,
		prefs.autostart,
		widget.NewLabel(restartNote),
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateConfig(prefs.config)
		window.Hide()
	})
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 360))
	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Config returns the last saved values.
func (prefs *Window) Config() model.Config {
	return prefs.config
}

// UpdateConfig replaces the form values.
func (prefs *Window) UpdateConfig(config model.Config) {
	prefs.config = config
	values := valuesFromConfig(config)
	prefs.location.SetText(values.Location)
	prefs.minutes.SetText(values.WeatherMinutes)
	prefs.seconds.SetText(values.ScreensaverSeconds)
	prefs.fullscreen.SetChecked(values.Fullscreen)
	prefs.debug.SetChecked(values.Debug)
	prefs.autostart.SetChecked(values.Autostart)
}

func (prefs *Window) handleSave() {
	config := applyValues(prefs.config, formValues{
		Location:           prefs.location.Text,
		WeatherMinutes:     prefs.minutes.Text,
		ScreensaverSeconds: prefs.seconds.Text,
		Fullscreen:         prefs.fullscreen.Checked,
		Debug:              prefs.debug.Checked,
		Autostart:          prefs.autostart.Checked,
	})
	prefs.UpdateConfig(config)
	if prefs.onSave != nil {
		prefs.onSave(config)
	}
	prefs.window.Hide()
}
