// Package screensaver provides the full-window screensaver layer.
package screensaver

import (
	"context"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"kotidash/internal/core/refresh"
)

const clockTextSize = 160

// Overlay is a black layer with a large clock, stacked above the dashboard.
// It is hidden until Activate. While shown it receives every pointer event
// of the window and reports pointer-downs to the input handler.
type Overlay struct {
	widget.BaseWidget

	background *canvas.Rectangle
	clock      *canvas.Text
	drift      *Drift
	onInput    func()

	mu      sync.Mutex
	enabled bool
	offsetX float32
	offsetY float32
}

var (
	_ desktop.Mouseable = (*Overlay)(nil)
	_ fyne.Tappable     = (*Overlay)(nil)
)

// New creates a hidden overlay. onInput is called for every pointer-down
// received while the overlay is enabled.
func New(config DriftConfig, onInput func()) *Overlay {
	overlay := &Overlay{
		background: canvas.NewRectangle(color.Black),
		onInput:    onInput,
	}
	overlay.clock = canvas.NewText("--:--", color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	overlay.clock.Alignment = fyne.TextAlignCenter
	overlay.clock.TextStyle = fyne.TextStyle{Bold: true}
	overlay.clock.TextSize = clockTextSize
	overlay.drift = NewDrift(config, func(x, y float32) {
		fyne.Do(func() {
			overlay.setOffset(x, y)
		})
	})
	overlay.ExtendBaseWidget(overlay)
	overlay.Hide()
	return overlay
}

// SetOnInput replaces the pointer-down handler.
func (overlay *Overlay) SetOnInput(handler func()) {
	overlay.onInput = handler
}

// Activate shows and enables the overlay and sets its clock from now.
func (overlay *Overlay) Activate(now time.Time) {
	overlay.mu.Lock()
	overlay.enabled = true
	overlay.mu.Unlock()
	overlay.SetClock(now.Format(refresh.ScreensaverLayout))
	overlay.setOffset(0, 0)
	overlay.Show()
	overlay.drift.Start(context.Background())
}

// Deactivate hides and disables the overlay.
func (overlay *Overlay) Deactivate() {
	overlay.drift.Stop()
	overlay.mu.Lock()
	overlay.enabled = false
	overlay.mu.Unlock()
	overlay.Hide()
}

// Enabled reports whether the overlay is active.
func (overlay *Overlay) Enabled() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.enabled
}

// ClockAttached reports whether the clock is on screen.
func (overlay *Overlay) ClockAttached() bool {
	return overlay.clock != nil && overlay.Enabled() && overlay.Visible()
}

// SetClock updates the clock text.
func (overlay *Overlay) SetClock(text string) {
	overlay.clock.Text = text
	overlay.clock.Refresh()
}

// ClockText returns the current clock text.
func (overlay *Overlay) ClockText() string {
	return overlay.clock.Text
}

// MouseDown forwards the pointer-down to the input handler.
func (overlay *Overlay) MouseDown(*desktop.MouseEvent) {
	if !overlay.Enabled() || overlay.onInput == nil {
		return
	}
	overlay.onInput()
}

// MouseUp is part of desktop.Mouseable.
func (overlay *Overlay) MouseUp(*desktop.MouseEvent) {}

// Tapped swallows taps so they do not reach the dashboard underneath.
func (overlay *Overlay) Tapped(*fyne.PointEvent) {}

// CreateRenderer is part of fyne.Widget.
func (overlay *Overlay) CreateRenderer() fyne.WidgetRenderer {
	return &overlayRenderer{overlay: overlay}
}

func (overlay *Overlay) setOffset(x, y float32) {
	overlay.mu.Lock()
	overlay.offsetX = x
	overlay.offsetY = y
	overlay.mu.Unlock()
	overlay.Refresh()
}

func (overlay *Overlay) offset() (float32, float32) {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.offsetX, overlay.offsetY
}

type overlayRenderer struct {
	overlay *Overlay
}

func (renderer *overlayRenderer) Layout(size fyne.Size) {
	overlay := renderer.overlay
	overlay.background.Move(fyne.NewPos(0, 0))
	overlay.background.Resize(size)

	clockSize := overlay.clock.MinSize()
	x, y := overlay.offset()
	overlay.clock.Resize(clockSize)
	overlay.clock.Move(offsetPosition(size, clockSize, x, y))
}

func (renderer *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (renderer *overlayRenderer) Refresh() {
	renderer.Layout(renderer.overlay.Size())
	canvas.Refresh(renderer.overlay.background)
	canvas.Refresh(renderer.overlay.clock)
}

func (renderer *overlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{renderer.overlay.background, renderer.overlay.clock}
}

func (renderer *overlayRenderer) Destroy() {
	renderer.overlay.drift.Stop()
}
