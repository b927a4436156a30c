// Package refresh drives the periodic clock and weather updates of the dashboard.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"kotidash/internal/core/dispatch"
	"kotidash/internal/weather"
)

const (
	TimeLayout        = "15:04:05"
	DateLayout        = "Mon 02.01.2006"
	ScreensaverLayout = "15:04"

	defaultTickInterval  = time.Second
	defaultStartupDelay  = 200 * time.Millisecond
	defaultFetchTimeout  = 30 * time.Second
	defaultWeatherPeriod = 30 * time.Minute
)

// SummaryProvider returns the one-line weather summary.
type SummaryProvider interface {
	Summary(ctx context.Context) (string, error)
}

// Display receives the refreshed texts.
type Display interface {
	SetClock(timeText, dateText string)
	SetWeather(text string)
	ScreensaverActive() bool
}

// ScreensaverClock is the big clock of the screensaver overlay.
type ScreensaverClock interface {
	// ClockAttached reports whether the clock element currently exists.
	ClockAttached() bool
	SetClock(text string)
}

// Config contains the trigger periods.
type Config struct {
	TickInterval    time.Duration
	WeatherInterval time.Duration
	StartupDelay    time.Duration
	FetchTimeout    time.Duration
}

// Scheduler owns the clock tick, the periodic weather refresh and the
// one-shot startup refresh. Trigger callbacks run on the dispatch thread.
// Weather fetches run on the executor and their results are posted back.
type Scheduler struct {
	scheduler dispatch.Scheduler
	config    Config
	provider  SummaryProvider
	display   Display
	clock     ScreensaverClock
	execute   func(func())

	handles     []dispatch.Handle
	inFlight    bool
	stopped     bool
	lastUpdated time.Time
	lastError   error
}

// New returns a Scheduler. The screensaver clock may be nil.
func New(scheduler dispatch.Scheduler, config Config, provider SummaryProvider, display Display, clock ScreensaverClock) *Scheduler {
	if config.TickInterval <= 0 {
		config.TickInterval = defaultTickInterval
	}
	if config.WeatherInterval <= 0 {
		config.WeatherInterval = defaultWeatherPeriod
	}
	if config.StartupDelay <= 0 {
		config.StartupDelay = defaultStartupDelay
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = defaultFetchTimeout
	}
	return &Scheduler{
		scheduler: scheduler,
		config:    config,
		provider:  provider,
		display:   display,
		clock:     clock,
		execute: func(fn func()) {
			go fn()
		},
	}
}

// SetExecutor replaces how weather fetches are run. The default starts a goroutine.
func (s *Scheduler) SetExecutor(execute func(func())) {
	s.execute = execute
}

// Start arms all triggers.
func (s *Scheduler) Start() {
	s.handles = append(s.handles,
		s.scheduler.Every(s.config.TickInterval, s.Tick),
		s.scheduler.Every(s.config.WeatherInterval, s.RefreshNow),
		s.scheduler.Once(s.config.StartupDelay, s.RefreshNow),
	)
}

// Stop cancels all triggers. Fetches in flight are discarded.
func (s *Scheduler) Stop() {
	s.stopped = true
	for _, h := range s.handles {
		h.Cancel()
	}
	s.handles = nil
}

// Tick updates the displayed time and date, and the screensaver clock while
// the screensaver is shown.
func (s *Scheduler) Tick() {
	now := s.scheduler.Now()
	s.display.SetClock(now.Format(TimeLayout), now.Format(DateLayout))
	if !s.display.ScreensaverActive() || s.clock == nil {
		return
	}
	if !s.clock.ClockAttached() {
		return
	}
	s.clock.SetClock(now.Format(ScreensaverLayout))
}

// RefreshNow fetches the weather unless a fetch is already running.
func (s *Scheduler) RefreshNow() {
	if s.stopped || s.inFlight {
		return
	}
	s.inFlight = true
	s.execute(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.config.FetchTimeout)
		defer cancel()
		summary, err := s.provider.Summary(ctx)
		s.scheduler.Post(func() {
			s.inFlight = false
			s.applyWeather(summary, err)
		})
	})
}

func (s *Scheduler) applyWeather(summary string, err error) {
	if s.stopped {
		return
	}
	if err != nil {
		s.lastError = err
		slog.Warn("weather refresh failed", "kind", weather.Kind(err), "error", err)
		s.display.SetWeather(ErrorText(err))
		return
	}
	s.lastError = nil
	s.lastUpdated = s.scheduler.Now()
	slog.Info("weather refreshed", "summary", summary)
	s.display.SetWeather(summary)
}

// LastUpdated returns when the weather was last refreshed successfully.
func (s *Scheduler) LastUpdated() time.Time {
	return s.lastUpdated
}

// Status describes the weather refresh state for humans.
func (s *Scheduler) Status() string {
	if s.lastError != nil {
		return fmt.Sprintf("weather error: %s", weather.Kind(s.lastError))
	}
	if s.lastUpdated.IsZero() {
		return "weather not fetched yet"
	}
	return "weather updated " + humanize.RelTime(s.lastUpdated, s.scheduler.Now(), "ago", "from now")
}

// ErrorText is the weather placeholder shown after a failed refresh.
func ErrorText(err error) string {
	return fmt.Sprintf("Sää: virhe (%s)", weather.Kind(err))
}
