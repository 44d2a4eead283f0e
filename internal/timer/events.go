package timer

import "time"

// State represents the current engine mode.
type State string

const (
	StateIdle        State = "idle"
	StateRunning     State = "running"
	StatePaused      State = "paused"
	StateBreak       State = "break"
	StateBreakPaused State = "break_paused"
)

// BreakKind distinguishes short breaks from long ones.
type BreakKind string

const (
	BreakNone  BreakKind = ""
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventTick          EventType = "tick"
	EventStateChange   EventType = "state_change"
	EventWorkFinished  EventType = "work_finished"
	EventBreakFinished EventType = "break_finished"
)

// Event represents an engine update for listeners.
type Event struct {
	Type              EventType
	State             State
	Remaining         int
	Progress          float64
	SessionsCompleted int
	Break             BreakKind
	// Duration is the length in seconds of the phase that just finished.
	// Only set on completion events.
	Duration int
	At       time.Time
}

// Listener receives engine events synchronously, in emission order.
type Listener func(Event)
