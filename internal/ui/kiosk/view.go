package kiosk

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"kotidash/internal/core/dashboard"
)

const (
	sendShoppingLabel = "Lähetä ostoslista"
	fullscreenLabel   = "Koko näyttö"
)

// View is the dashboard layout: clock and date on top, weather below,
// calendar and shopping list side by side.
type View struct {
	content fyne.CanvasObject

	SendButton       *Button
	FullscreenButton *Button
}

// NewView binds the labels to state. overlay is stacked above everything
// and may be nil. onToggleFullscreen may be nil.
func NewView(state *dashboard.State, input *InputSource, overlay fyne.CanvasObject, onToggleFullscreen func()) *View {
	bindings := state.Bindings()

	timeLabel := widget.NewLabelWithData(bindings.Time)
	timeLabel.SizeName = theme.SizeNameHeadingText
	timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	timeLabel.Alignment = fyne.TextAlignCenter

	dateLabel := widget.NewLabelWithData(bindings.Date)
	dateLabel.SizeName = theme.SizeNameSubHeadingText
	dateLabel.Alignment = fyne.TextAlignCenter

	weatherLabel := widget.NewLabelWithData(bindings.Weather)
	weatherLabel.Alignment = fyne.TextAlignCenter
	weatherLabel.Wrapping = fyne.TextWrapWord

	calendarLabel := widget.NewLabelWithData(bindings.Calendar)
	calendarLabel.Wrapping = fyne.TextWrapWord
	shoppingLabel := widget.NewLabelWithData(bindings.Shopping)
	shoppingLabel.Wrapping = fyne.TextWrapWord

	view := &View{}
	view.SendButton = NewButton(sendShoppingLabel, input, state.SendShoppingList)
	view.FullscreenButton = NewButton(fullscreenLabel, input, onToggleFullscreen)

	shopping := container.NewBorder(nil, view.SendButton, nil, nil, shoppingLabel)
	panels := container.NewGridWithColumns(2, calendarLabel, shopping)
	header := container.NewVBox(timeLabel, dateLabel, weatherLabel)
	footer := container.NewHBox(layout.NewSpacer(), view.FullscreenButton)
	dashboardContent := container.NewPadded(container.NewBorder(header, footer, nil, nil, panels))

	layers := []fyne.CanvasObject{input.Catcher(), dashboardContent}
	if overlay != nil {
		layers = append(layers, overlay)
	}
	view.content = container.NewStack(layers...)
	return view
}

// Content returns the window content.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}
