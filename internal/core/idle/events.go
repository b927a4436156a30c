package idle

import "time"

// State represents the screensaver mode.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
)

// EventType defines the type of controller event.
type EventType string

const (
	EventStateChange EventType = "state_change"
)

// Event represents a controller update for observers.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}
