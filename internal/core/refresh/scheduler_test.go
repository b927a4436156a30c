package refresh_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kotidash/internal/core/dispatch"
	"kotidash/internal/core/refresh"
	"kotidash/internal/weather"
)

var epoch = time.Date(2025, 1, 15, 7, 5, 9, 0, time.UTC) // a Wednesday

type fakeProvider struct {
	calls   int
	summary string
	err     error
}

func (p *fakeProvider) Summary(context.Context) (string, error) {
	p.calls++
	return p.summary, p.err
}

type fakeDisplay struct {
	timeText    string
	dateText    string
	weatherText string
	active      bool
}

func (d *fakeDisplay) SetClock(timeText, dateText string) {
	d.timeText = timeText
	d.dateText = dateText
}

func (d *fakeDisplay) SetWeather(text string) {
	d.weatherText = text
}

func (d *fakeDisplay) ScreensaverActive() bool {
	return d.active
}

type fakeClock struct {
	attached bool
	text     string
	writes   int
}

func (c *fakeClock) ClockAttached() bool {
	return c.attached
}

func (c *fakeClock) SetClock(text string) {
	c.writes++
	c.text = text
}

func newScheduler(p *fakeProvider, d *fakeDisplay, c refresh.ScreensaverClock) (*refresh.Scheduler, *dispatch.Manual) {
	m := dispatch.NewManual(epoch)
	s := refresh.New(m, refresh.Config{WeatherInterval: 30 * time.Minute}, p, d, c)
	s.SetExecutor(func(fn func()) { fn() })
	return s, m
}

func TestScheduler_Tick(t *testing.T) {
	t.Run("should update time and date every second", func(t *testing.T) {
		d := &fakeDisplay{}
		s, m := newScheduler(&fakeProvider{}, d, nil)
		s.Start()
		m.Advance(time.Second)
		assert.Equal(t, "07:05:10", d.timeText)
		assert.Equal(t, "Wed 15.01.2025", d.dateText)
		m.Advance(2 * time.Second)
		assert.Equal(t, "07:05:12", d.timeText)
	})
	t.Run("should push screensaver clock only while active", func(t *testing.T) {
		d := &fakeDisplay{}
		c := &fakeClock{attached: true}
		s, m := newScheduler(&fakeProvider{}, d, c)
		s.Start()
		m.Advance(time.Second)
		assert.Equal(t, 0, c.writes)
		d.active = true
		m.Advance(time.Minute)
		assert.Equal(t, "07:06", c.text)
		assert.Equal(t, 60, c.writes)
	})
	t.Run("should skip screensaver clock when it is not attached", func(t *testing.T) {
		d := &fakeDisplay{active: true}
		c := &fakeClock{attached: false}
		s, m := newScheduler(&fakeProvider{}, d, c)
		s.Start()
		m.Advance(5 * time.Second)
		assert.Equal(t, 0, c.writes)
		assert.Equal(t, "07:05:14", d.timeText)
	})
}

func TestScheduler_Weather(t *testing.T) {
	t.Run("should refresh weather shortly after start", func(t *testing.T) {
		p := &fakeProvider{summary: "Helsinki: -3.2°C, Lumisadetta, wind 4.0 m/s"}
		d := &fakeDisplay{}
		s, m := newScheduler(p, d, nil)
		s.Start()
		m.Advance(199 * time.Millisecond)
		assert.Equal(t, 0, p.calls)
		m.Advance(time.Millisecond)
		assert.Equal(t, 1, p.calls)
		assert.Equal(t, "Helsinki: -3.2°C, Lumisadetta, wind 4.0 m/s", d.weatherText)
	})
	t.Run("should refresh weather periodically", func(t *testing.T) {
		p := &fakeProvider{summary: "ok"}
		s, m := newScheduler(p, &fakeDisplay{}, nil)
		s.Start()
		m.Advance(90 * time.Minute)
		assert.Equal(t, 4, p.calls)
	})
	t.Run("should show error placeholder with failure kind", func(t *testing.T) {
		p := &fakeProvider{err: &weather.UpstreamError{Op: "forecast", StatusCode: 503}}
		d := &fakeDisplay{}
		s, m := newScheduler(p, d, nil)
		s.Start()
		m.Advance(time.Second)
		assert.Equal(t, "Sää: virhe (UpstreamError)", d.weatherText)
		assert.Equal(t, "weather error: UpstreamError", s.Status())
	})
	t.Run("should show not found kind", func(t *testing.T) {
		p := &fakeProvider{err: &weather.NotFoundError{Place: "Atlantis"}}
		d := &fakeDisplay{}
		s, m := newScheduler(p, d, nil)
		s.RefreshNow()
		m.Flush()
		assert.Equal(t, "Sää: virhe (NotFoundError)", d.weatherText)
	})
	t.Run("should recover after a failure", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("boom")}
		d := &fakeDisplay{}
		s, m := newScheduler(p, d, nil)
		s.Start()
		m.Advance(time.Second)
		assert.Equal(t, "Sää: virhe (Error)", d.weatherText)
		p.err = nil
		p.summary = "fine"
		m.Advance(30 * time.Minute)
		assert.Equal(t, "fine", d.weatherText)
		assert.Equal(t, epoch.Add(30*time.Minute), s.LastUpdated())
	})
	t.Run("should apply the result on the dispatch thread", func(t *testing.T) {
		p := &fakeProvider{summary: "later"}
		d := &fakeDisplay{}
		s, m := newScheduler(p, d, nil)
		var queued func()
		s.SetExecutor(func(fn func()) { queued = fn })
		s.RefreshNow()
		s.RefreshNow()
		queued()
		assert.Equal(t, 1, p.calls)
		assert.Equal(t, "", d.weatherText)
		m.Flush()
		assert.Equal(t, "later", d.weatherText)
	})
	t.Run("should report humanized status", func(t *testing.T) {
		p := &fakeProvider{summary: "ok"}
		s, m := newScheduler(p, &fakeDisplay{}, nil)
		assert.Equal(t, "weather not fetched yet", s.Status())
		s.Start()
		m.Advance(time.Second)
		m.Advance(3 * time.Minute)
		assert.Equal(t, "weather updated 3 minutes ago", s.Status())
	})
	t.Run("should stop all triggers", func(t *testing.T) {
		p := &fakeProvider{summary: "ok"}
		d := &fakeDisplay{}
		s, m := newScheduler(p, d, nil)
		s.Start()
		s.Stop()
		m.Advance(time.Hour)
		assert.Equal(t, 0, p.calls)
		assert.Equal(t, "", d.timeText)
		assert.Equal(t, 0, m.Pending())
	})
}
