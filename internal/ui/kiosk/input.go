// Package kiosk builds the dashboard window content.
package kiosk

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// InputSource turns every pointer-down in the window into a call to the
// handler. When the handler consumes an event, the next guarded action of
// the same gesture is swallowed. The flag is cleared at the next pointer-down.
type InputSource struct {
	handler func() bool
	swallow bool
	catcher *catcher
}

// NewInputSource returns a source reporting pointer-downs to handler.
// handler returns true when it consumed the event.
func NewInputSource(handler func() bool) *InputSource {
	source := &InputSource{handler: handler}
	source.catcher = newCatcher(source.PointerDown)
	return source
}

// Catcher returns a transparent object to place under the dashboard content.
// It receives the pointer-downs that no control above it handles;
// interactive controls report their own through Button.
func (source *InputSource) Catcher() fyne.CanvasObject {
	return source.catcher
}

// PointerDown reports one qualifying input event.
func (source *InputSource) PointerDown() {
	source.swallow = false
	if source.handler == nil {
		return
	}
	source.swallow = source.handler()
}

// Guard wraps a control action so it is skipped when the press that
// started it was consumed.
func (source *InputSource) Guard(action func()) func() {
	return func() {
		if source.swallow {
			source.swallow = false
			return
		}
		if action != nil {
			action()
		}
	}
}

type catcher struct {
	widget.BaseWidget
	onDown func()
}

var _ desktop.Mouseable = (*catcher)(nil)

func newCatcher(onDown func()) *catcher {
	c := &catcher{onDown: onDown}
	c.ExtendBaseWidget(c)
	return c
}

func (c *catcher) MouseDown(*desktop.MouseEvent) {
	c.onDown()
}

func (c *catcher) MouseUp(*desktop.MouseEvent) {}

func (c *catcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(&fyne.Container{})
}
