package screensaver

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// DriftConfig controls how the clock wanders over the screen.
// A zero Interval disables drifting.
type DriftConfig struct {
	Interval Range
	// MaxOffset is the largest distance from the center in each axis,
	// as a fraction of the free space around the clock.
	MaxOffset float32
}

// DefaultDriftConfig moves the clock every one to two minutes.
func DefaultDriftConfig() DriftConfig {
	return DriftConfig{
		Interval: Range{
			Min: time.Minute,
			Max: 2 * time.Minute,
		},
		MaxOffset: 0.8,
	}
}

// Drift periodically picks a new clock offset.
type Drift struct {
	mu     sync.Mutex
	config DriftConfig
	move   func(x, y float32)
	cancel context.CancelFunc
	rng    *rand.Rand
}

// NewDrift creates a drift driver. move receives the new relative offset,
// both axes in [-MaxOffset, MaxOffset], and runs on a background goroutine.
func NewDrift(config DriftConfig, move func(x, y float32)) *Drift {
	return &Drift{
		config: config,
		move:   move,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start restarts the drift loop.
func (drift *Drift) Start(ctx context.Context) {
	if drift.config.Interval.Max <= 0 {
		return
	}
	drift.mu.Lock()
	if drift.cancel != nil {
		drift.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	drift.cancel = cancel
	drift.mu.Unlock()

	go drift.run(runCtx)
}

// Stop terminates the drift loop.
func (drift *Drift) Stop() {
	drift.mu.Lock()
	defer drift.mu.Unlock()
	if drift.cancel != nil {
		drift.cancel()
		drift.cancel = nil
	}
}

func (drift *Drift) run(ctx context.Context) {
	for {
		drift.mu.Lock()
		wait := drift.config.Interval.Random(drift.rng)
		drift.mu.Unlock()
		if !sleepWithContext(ctx, wait) {
			return
		}
		x, y := drift.nextOffset()
		drift.move(x, y)
	}
}

func (drift *Drift) nextOffset() (float32, float32) {
	drift.mu.Lock()
	defer drift.mu.Unlock()
	limit := drift.config.MaxOffset
	x := (drift.rng.Float32()*2 - 1) * limit
	y := (drift.rng.Float32()*2 - 1) * limit
	return x, y
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// offsetPosition places an object of size inside bounds at the relative
// offset, where (0, 0) is centered and ±1 touches the edges.
func offsetPosition(bounds, size fyne.Size, x, y float32) fyne.Position {
	freeX := (bounds.Width - size.Width) / 2
	freeY := (bounds.Height - size.Height) / 2
	if freeX < 0 {
		freeX = 0
	}
	if freeY < 0 {
		freeY = 0
	}
	return fyne.NewPos(freeX+freeX*x, freeY+freeY*y)
}
