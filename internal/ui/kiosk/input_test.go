package kiosk_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kotidash/internal/ui/kiosk"
)

func TestInputSource(t *testing.T) {
	test.NewTempApp(t).Settings().SetTheme(theme.DefaultTheme())

	t.Run("should report pointer-down from catcher", func(t *testing.T) {
		calls := 0
		source := kiosk.NewInputSource(func() bool { calls++; return false })
		mouseable, ok := source.Catcher().(desktop.Mouseable)
		require.True(t, ok)
		mouseable.MouseDown(&desktop.MouseEvent{})
		mouseable.MouseUp(&desktop.MouseEvent{})
		assert.Equal(t, 1, calls)
	})
	t.Run("should run guarded action when not consumed", func(t *testing.T) {
		source := kiosk.NewInputSource(func() bool { return false })
		ran := 0
		action := source.Guard(func() { ran++ })
		source.PointerDown()
		action()
		assert.Equal(t, 1, ran)
	})
	t.Run("should swallow one guarded action after consumed event", func(t *testing.T) {
		consume := true
		source := kiosk.NewInputSource(func() bool { return consume })
		ran := 0
		action := source.Guard(func() { ran++ })
		source.PointerDown()
		action()
		assert.Equal(t, 0, ran)
		action()
		assert.Equal(t, 1, ran)
	})
	t.Run("should clear swallow flag at next pointer-down", func(t *testing.T) {
		consume := true
		source := kiosk.NewInputSource(func() bool { return consume })
		ran := 0
		action := source.Guard(func() { ran++ })
		source.PointerDown()
		consume = false
		source.PointerDown()
		action()
		assert.Equal(t, 1, ran)
	})
	t.Run("should accept nil handler and action", func(t *testing.T) {
		source := kiosk.NewInputSource(nil)
		source.PointerDown()
		source.Guard(nil)()
	})
}

func TestButton(t *testing.T) {
	test.NewTempApp(t).Settings().SetTheme(theme.DefaultTheme())

	t.Run("should report press and clear a pending swallow", func(t *testing.T) {
		consume := true
		presses := 0
		source := kiosk.NewInputSource(func() bool { presses++; return consume })
		ran := 0
		button := kiosk.NewButton("OK", source, func() { ran++ })
		source.PointerDown()
		consume = false
		button.MouseDown(&desktop.MouseEvent{})
		button.MouseUp(&desktop.MouseEvent{})
		test.Tap(button)
		assert.Equal(t, 2, presses)
		assert.Equal(t, 1, ran)
		assert.Equal(t, "OK", button.Text)
	})
}
