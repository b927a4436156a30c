package screensaver

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	t.Run("should return min for empty range", func(t *testing.T) {
		assert.Equal(t, time.Second, Range{Min: time.Second, Max: time.Second}.Random(rng))
		assert.Equal(t, time.Second, Range{Min: time.Second}.Random(rng))
	})
	t.Run("should stay within bounds", func(t *testing.T) {
		r := Range{Min: time.Second, Max: 2 * time.Second}
		for i := 0; i < 100; i++ {
			v := r.Random(rng)
			assert.GreaterOrEqual(t, v, r.Min)
			assert.Less(t, v, r.Max)
		}
	})
}

func TestDrift(t *testing.T) {
	t.Run("should keep offsets within the limit", func(t *testing.T) {
		d := NewDrift(DriftConfig{MaxOffset: 0.5}, nil)
		for i := 0; i < 100; i++ {
			x, y := d.nextOffset()
			assert.LessOrEqual(t, x, float32(0.5))
			assert.GreaterOrEqual(t, x, float32(-0.5))
			assert.LessOrEqual(t, y, float32(0.5))
			assert.GreaterOrEqual(t, y, float32(-0.5))
		}
	})
	t.Run("should move until stopped", func(t *testing.T) {
		moved := make(chan struct{}, 10)
		d := NewDrift(DriftConfig{
			Interval:  Range{Min: time.Millisecond, Max: time.Millisecond},
			MaxOffset: 1,
		}, func(x, y float32) {
			select {
			case moved <- struct{}{}:
			default:
			}
		})
		d.Start(context.Background())
		select {
		case <-moved:
		case <-time.After(time.Second):
			require.Fail(t, "drift did not move")
		}
		d.Stop()
		d.Stop()
	})
	t.Run("should not start without interval", func(t *testing.T) {
		d := NewDrift(DriftConfig{}, func(x, y float32) { t.Fatal("unexpected move") })
		d.Start(context.Background())
		d.Stop()
	})
}

func TestOffsetPosition(t *testing.T) {
	bounds := fyne.NewSize(200, 100)
	size := fyne.NewSize(100, 50)
	assert.Equal(t, fyne.NewPos(50, 25), offsetPosition(bounds, size, 0, 0))
	assert.Equal(t, fyne.NewPos(0, 0), offsetPosition(bounds, size, -1, -1))
	assert.Equal(t, fyne.NewPos(100, 50), offsetPosition(bounds, size, 1, 1))
	assert.Equal(t, fyne.NewPos(0, 0), offsetPosition(size, bounds, 1, 1))
}
