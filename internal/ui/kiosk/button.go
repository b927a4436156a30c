package kiosk

import (
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Button is a widget.Button that reports its pointer-downs to an
// InputSource. The driver delivers a press to the topmost interactive
// object only, so controls have to report input themselves.
type Button struct {
	widget.Button
	source *InputSource
}

var _ desktop.Mouseable = (*Button)(nil)

// NewButton creates a button whose action is guarded by source.
func NewButton(label string, source *InputSource, tapped func()) *Button {
	button := &Button{source: source}
	button.Text = label
	button.OnTapped = source.Guard(tapped)
	button.ExtendBaseWidget(button)
	return button
}

// MouseDown reports the press to the input source.
func (button *Button) MouseDown(*desktop.MouseEvent) {
	button.source.PointerDown()
}

// MouseUp is part of desktop.Mouseable.
func (button *Button) MouseUp(*desktop.MouseEvent) {}
