// Package idle activates a screensaver after a period without user input.
package idle

import (
	"log/slog"
	"sync"
	"time"

	"kotidash/internal/core/dispatch"
)

// Screensaver is the overlay shown while the controller is active.
type Screensaver interface {
	// Activate shows and enables the overlay and sets its clock from now.
	Activate(now time.Time)
	// Deactivate hides and disables the overlay.
	Deactivate()
}

// ActiveFlag receives the screensaver active flag.
type ActiveFlag interface {
	SetScreensaverActive(active bool)
}

// Controller is a two-state machine switching between StateIdle and
// StateActive. It keeps at most one pending deadline: every reset cancels the
// previous deadline before scheduling a new one.
//
// All methods except Subscribe are expected to run on the dispatch thread.
type Controller struct {
	scheduler   dispatch.Scheduler
	timeout     time.Duration
	flag        ActiveFlag
	screensaver Screensaver

	state    State
	deadline dispatch.Handle
	stopped  bool

	mu     sync.Mutex
	events []chan Event
}

// New returns a controller in StateIdle. Call Start to arm the first deadline.
func New(scheduler dispatch.Scheduler, timeout time.Duration, flag ActiveFlag, screensaver Screensaver) *Controller {
	return &Controller{
		scheduler:   scheduler,
		timeout:     timeout,
		flag:        flag,
		screensaver: screensaver,
		state:       StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	controller.events = append(controller.events, ch)
	controller.mu.Unlock()
	return ch
}

// Start arms the first deadline on the next dispatch cycle,
// so that the host has finished its initial layout.
func (controller *Controller) Start() {
	controller.scheduler.Post(func() {
		if controller.stopped {
			return
		}
		controller.resetDeadline()
	})
}

// Stop cancels the pending deadline and closes observers.
func (controller *Controller) Stop() {
	if controller.stopped {
		return
	}
	controller.stopped = true
	controller.cancelDeadline()

	controller.mu.Lock()
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

// State returns the current mode.
func (controller *Controller) State() State {
	return controller.state
}

// HandleInput processes a qualifying input event and reports whether it was
// consumed. Input while active dismisses the screensaver and is consumed, so
// it does not also reach the controls underneath. Input while idle only
// restarts the idle period.
func (controller *Controller) HandleInput() bool {
	if controller.stopped {
		return false
	}
	if controller.state == StateActive {
		controller.deactivate()
		controller.resetDeadline()
		return true
	}
	controller.resetDeadline()
	return false
}

// ActivateNow shows the screensaver without waiting for the deadline.
func (controller *Controller) ActivateNow() {
	if controller.stopped || controller.state == StateActive {
		return
	}
	controller.cancelDeadline()
	controller.activate()
}

func (controller *Controller) resetDeadline() {
	controller.cancelDeadline()
	controller.deadline = controller.scheduler.Once(controller.timeout, controller.onDeadline)
}

func (controller *Controller) cancelDeadline() {
	if controller.deadline != nil {
		controller.deadline.Cancel()
		controller.deadline = nil
	}
}

func (controller *Controller) onDeadline() {
	controller.deadline = nil
	if controller.stopped || controller.state == StateActive {
		return
	}
	controller.activate()
}

func (controller *Controller) activate() {
	now := controller.scheduler.Now()
	controller.state = StateActive
	controller.flag.SetScreensaverActive(true)
	controller.screensaver.Activate(now)
	slog.Debug("screensaver activated")
	controller.emit(Event{Type: EventStateChange, State: StateActive, At: now})
}

func (controller *Controller) deactivate() {
	controller.state = StateIdle
	controller.flag.SetScreensaverActive(false)
	controller.screensaver.Deactivate()
	slog.Debug("screensaver dismissed")
	controller.emit(Event{Type: EventStateChange, State: StateIdle, At: controller.scheduler.Now()})
}

func (controller *Controller) emit(event Event) {
	controller.mu.Lock()
	events := append([]chan Event(nil), controller.events...)
	controller.mu.Unlock()
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
