package dispatch

import (
	"sort"
	"sync"
	"time"
)

// Manual is a virtual-time Scheduler. Nothing fires until Advance or Flush
// is called, and callbacks run on the calling goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualHandle
	posted []func()
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

type manualHandle struct {
	owner    *Manual
	deadline time.Time
	period   time.Duration
	seq      uint64
	fn       func()
}

func (handle *manualHandle) Cancel() {
	owner := handle.owner
	owner.mu.Lock()
	defer owner.mu.Unlock()
	owner.removeLocked(handle)
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Once(delay time.Duration, fn func()) Handle {
	return m.schedule(delay, 0, fn)
}

func (m *Manual) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		period = time.Second
	}
	return m.schedule(period, period, fn)
}

func (m *Manual) Post(fn func()) {
	m.mu.Lock()
	m.posted = append(m.posted, fn)
	m.mu.Unlock()
}

// Pending reports the number of scheduled, uncancelled timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Flush runs posted callbacks without moving the clock.
func (m *Manual) Flush() {
	m.Advance(0)
}

// Advance moves the clock forward by delta, running posted callbacks first
// and then every timer that becomes due, in deadline order.
func (m *Manual) Advance(delta time.Duration) {
	m.mu.Lock()
	target := m.now.Add(delta)
	m.mu.Unlock()

	m.runPosted()
	for {
		m.mu.Lock()
		if len(m.timers) == 0 || m.timers[0].deadline.After(target) {
			m.now = target
			m.mu.Unlock()
			m.runPosted()
			return
		}
		next := m.timers[0]
		m.timers = m.timers[1:]
		m.now = next.deadline
		if next.period > 0 {
			next.deadline = next.deadline.Add(next.period)
			m.seq++
			next.seq = m.seq
			m.insertLocked(next)
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
		m.runPosted()
	}
}

func (m *Manual) schedule(delay, period time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	m.seq++
	handle := &manualHandle{
		owner:    m,
		deadline: m.now.Add(delay),
		period:   period,
		seq:      m.seq,
		fn:       fn,
	}
	m.insertLocked(handle)
	return handle
}

func (m *Manual) insertLocked(handle *manualHandle) {
	m.timers = append(m.timers, handle)
	sort.SliceStable(m.timers, func(i, j int) bool {
		a, b := m.timers[i], m.timers[j]
		if a.deadline.Equal(b.deadline) {
			return a.seq < b.seq
		}
		return a.deadline.Before(b.deadline)
	})
}

func (m *Manual) removeLocked(handle *manualHandle) {
	for i, candidate := range m.timers {
		if candidate == handle {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (m *Manual) runPosted() {
	for {
		m.mu.Lock()
		if len(m.posted) == 0 {
			m.mu.Unlock()
			return
		}
		fn := m.posted[0]
		m.posted = m.posted[1:]
		m.mu.Unlock()
		fn()
	}
}
