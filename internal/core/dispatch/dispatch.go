// Package dispatch runs timer and event callbacks on a single logical thread.
package dispatch

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle is a scheduled callback. Cancel is idempotent and a cancelled
// callback never runs afterwards.
type Handle interface {
	Cancel()
}

// Scheduler schedules callbacks on the dispatch thread.
type Scheduler interface {
	Now() time.Time
	// Once runs fn once after delay.
	Once(delay time.Duration, fn func()) Handle
	// Every runs fn each period, starting one period from now.
	Every(period time.Duration, fn func()) Handle
	// Post runs fn on the next dispatch cycle.
	Post(fn func())
}

// Realtime is a wall-clock Scheduler. Timers fire on their own goroutines
// but callbacks only ever run through post.
type Realtime struct {
	post func(func())
}

// NewRealtime returns a scheduler that hands every callback to post.
// For a Fyne app post is fyne.Do.
func NewRealtime(post func(func())) *Realtime {
	return &Realtime{post: post}
}

func (rt *Realtime) Now() time.Time {
	return time.Now()
}

func (rt *Realtime) Once(delay time.Duration, fn func()) Handle {
	handle := &realtimeHandle{}
	handle.timer = time.AfterFunc(delay, func() {
		rt.post(func() {
			if handle.cancelled.Load() {
				return
			}
			fn()
		})
	})
	return handle
}

func (rt *Realtime) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		period = time.Second
	}
	handle := &realtimeHandle{stopCh: make(chan struct{})}
	ticker := time.NewTicker(period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.stopCh:
				return
			case <-ticker.C:
				rt.post(func() {
					if handle.cancelled.Load() {
						return
					}
					fn()
				})
			}
		}
	}()
	return handle
}

func (rt *Realtime) Post(fn func()) {
	rt.post(fn)
}

type realtimeHandle struct {
	cancelled atomic.Bool
	timer     *time.Timer
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func (handle *realtimeHandle) Cancel() {
	handle.cancelled.Store(true)
	if handle.timer != nil {
		handle.timer.Stop()
	}
	if handle.stopCh != nil {
		handle.stopOnce.Do(func() {
			close(handle.stopCh)
		})
	}
}
