package kiosk_test

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kotidash/internal/core/dashboard"
	"kotidash/internal/core/dispatch"
	"kotidash/internal/core/idle"
	"kotidash/internal/ui/kiosk"
	"kotidash/internal/ui/screensaver"
)

const shoppingNote = "(placeholder: ei vielä käytössä)"

// interactiveAt returns the topmost visible object at pos that the desktop
// driver would deliver a press to: one that is tappable, focusable or mouseable.
func interactiveAt(root fyne.CanvasObject, pos fyne.Position) fyne.CanvasObject {
	d := fyne.CurrentApp().Driver()
	var found fyne.CanvasObject
	var walk func(o fyne.CanvasObject)
	walk = func(o fyne.CanvasObject) {
		if !o.Visible() {
			return
		}
		abs := d.AbsolutePositionForObject(o)
		size := o.Size()
		if pos.X < abs.X || pos.Y < abs.Y || pos.X >= abs.X+size.Width || pos.Y >= abs.Y+size.Height {
			return
		}
		switch o.(type) {
		case fyne.Tappable, fyne.Focusable, desktop.Mouseable:
			found = o
		}
		if c, ok := o.(*fyne.Container); ok {
			for _, child := range c.Objects {
				walk(child)
			}
		}
	}
	walk(root)
	return found
}

func centerOf(o fyne.CanvasObject) fyne.Position {
	abs := fyne.CurrentApp().Driver().AbsolutePositionForObject(o)
	return abs.Add(fyne.NewPos(o.Size().Width/2, o.Size().Height/2))
}

// click delivers a press and release the way the desktop driver does.
func click(o fyne.CanvasObject) {
	if m, ok := o.(desktop.Mouseable); ok {
		m.MouseDown(&desktop.MouseEvent{})
		m.MouseUp(&desktop.MouseEvent{})
	}
	if tp, ok := o.(fyne.Tappable); ok {
		tp.Tapped(&fyne.PointEvent{})
	}
}

type kioskFixture struct {
	scheduler  *dispatch.Manual
	state      *dashboard.State
	controller *idle.Controller
	overlay    *screensaver.Overlay
	view       *kiosk.View
	window     fyne.Window
}

func newKioskFixture(t *testing.T, timeout time.Duration) *kioskFixture {
	t.Helper()
	f := &kioskFixture{
		scheduler: dispatch.NewManual(time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)),
		state:     dashboard.New(),
		overlay:   screensaver.New(screensaver.DriftConfig{}, nil),
	}
	f.controller = idle.New(f.scheduler, timeout, f.state, f.overlay)
	input := kiosk.NewInputSource(f.controller.HandleInput)
	f.overlay.SetOnInput(input.PointerDown)
	f.view = kiosk.NewView(f.state, input, f.overlay, nil)
	f.window = test.NewWindow(f.view.Content())
	f.window.Resize(fyne.NewSize(800, 600))
	t.Cleanup(f.window.Close)
	f.controller.Start()
	f.scheduler.Flush()
	return f
}

func TestView(t *testing.T) {
	test.NewTempApp(t).Settings().SetTheme(theme.DefaultTheme())

	t.Run("should send shopping list on tap", func(t *testing.T) {
		state := dashboard.New()
		source := kiosk.NewInputSource(func() bool { return false })
		view := kiosk.NewView(state, source, nil, nil)
		w := test.NewWindow(view.Content())
		defer w.Close()
		test.Tap(view.SendButton)
		assert.Contains(t, state.ShoppingText(), shoppingNote)
	})
	t.Run("should swallow tap that dismissed the screensaver", func(t *testing.T) {
		state := dashboard.New()
		source := kiosk.NewInputSource(func() bool { return true })
		toggled := 0
		view := kiosk.NewView(state, source, nil, func() { toggled++ })
		w := test.NewWindow(view.Content())
		defer w.Close()
		source.PointerDown()
		test.Tap(view.FullscreenButton)
		assert.Equal(t, 0, toggled)
		test.Tap(view.FullscreenButton)
		assert.Equal(t, 1, toggled)
	})
	t.Run("should route button presses to the button", func(t *testing.T) {
		f := newKioskFixture(t, 10*time.Second)
		target := interactiveAt(f.view.Content(), centerOf(f.view.SendButton))
		require.NotNil(t, target)
		assert.Same(t, f.view.SendButton, target)
		_, ok := target.(desktop.Mouseable)
		assert.True(t, ok)
	})
	t.Run("should keep screensaver away while buttons are used", func(t *testing.T) {
		f := newKioskFixture(t, 10*time.Second)
		for i := 0; i < 3; i++ {
			f.scheduler.Advance(6 * time.Second)
			click(interactiveAt(f.view.Content(), centerOf(f.view.SendButton)))
		}
		assert.Equal(t, idle.StateIdle, f.controller.State())
		assert.False(t, f.state.ScreensaverActive())
		assert.Equal(t, 3, strings.Count(f.state.ShoppingText(), shoppingNote))
	})
	t.Run("should run the first button tap after dismissing the screensaver", func(t *testing.T) {
		f := newKioskFixture(t, 10*time.Second)
		f.scheduler.Advance(10 * time.Second)
		require.True(t, f.state.ScreensaverActive())

		pos := centerOf(f.view.SendButton)
		target := interactiveAt(f.view.Content(), pos)
		assert.Same(t, f.overlay, target)
		click(target)
		assert.False(t, f.state.ScreensaverActive())
		assert.NotContains(t, f.state.ShoppingText(), shoppingNote)

		click(interactiveAt(f.view.Content(), pos))
		assert.Contains(t, f.state.ShoppingText(), shoppingNote)
	})
}
