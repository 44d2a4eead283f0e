package timer

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a duration or count is not positive.
var ErrInvalidConfig = errors.New("timer: invalid configuration")

// Config holds the countdown lengths in seconds.
type Config struct {
	WorkSeconds             int
	ShortBreakSeconds       int
	LongBreakSeconds        int
	SessionsBeforeLongBreak int
}

// DefaultConfig returns 25/5/15 minutes with a long break every 4 sessions.
func DefaultConfig() Config {
	return Config{
		WorkSeconds:             25 * 60,
		ShortBreakSeconds:       5 * 60,
		LongBreakSeconds:        15 * 60,
		SessionsBeforeLongBreak: 4,
	}
}

// Validate reports whether every field is positive.
func (c Config) Validate() error {
	switch {
	case c.WorkSeconds <= 0:
		return fmt.Errorf("%w: work duration must be positive", ErrInvalidConfig)
	case c.ShortBreakSeconds <= 0:
		return fmt.Errorf("%w: short break must be positive", ErrInvalidConfig)
	case c.LongBreakSeconds <= 0:
		return fmt.Errorf("%w: long break must be positive", ErrInvalidConfig)
	case c.SessionsBeforeLongBreak <= 0:
		return fmt.Errorf("%w: sessions before long break must be positive", ErrInvalidConfig)
	}
	return nil
}

// Engine is a single-threaded work/break countdown. It is driven by an
// external one-second tick and must not be called from more than one
// goroutine at a time.
type Engine struct {
	active  Config
	pending Config

	state      State
	remaining  int
	breakTotal int
	breakKind  BreakKind
	completed  int
	startedAt  time.Time
	taskID     *int64

	now       func() time.Time
	listeners []Listener
}

// New creates an idle engine with the given configuration.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		active:    config,
		pending:   config,
		state:     StateIdle,
		remaining: config.WorkSeconds,
		now:       time.Now,
	}, nil
}

// SetClock replaces the time source used to stamp events.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Subscribe registers a listener. Listeners are called in registration order.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Start begins a work run from idle, or resumes a paused work run or break.
func (e *Engine) Start() {
	switch e.state {
	case StateIdle:
		e.active = e.pending
		e.remaining = e.active.WorkSeconds
		e.startedAt = e.now()
		e.setState(StateRunning)
	case StatePaused:
		e.setState(StateRunning)
	case StateBreakPaused:
		e.setState(StateBreak)
	}
}

// Pause freezes the countdown. Remaining seconds are kept as-is.
func (e *Engine) Pause() {
	switch e.state {
	case StateRunning:
		e.setState(StatePaused)
	case StateBreak:
		e.setState(StateBreakPaused)
	}
}

// Toggle pauses a ticking engine and starts or resumes any other.
func (e *Engine) Toggle() {
	if e.IsTicking() {
		e.Pause()
		return
	}
	e.Start()
}

// Tick advances the countdown by one second. Ticks outside running and
// break states are ignored.
func (e *Engine) Tick() {
	if !e.IsTicking() {
		return
	}
	if e.remaining > 0 {
		e.remaining--
	}
	e.emit(Event{
		Type:      EventTick,
		State:     e.state,
		Remaining: e.remaining,
		Progress:  e.Progress(),
	})
	if e.remaining > 0 {
		return
	}

	switch e.state {
	case StateRunning:
		worked := e.active.WorkSeconds
		e.enterBreak()
		e.emit(Event{
			Type:     EventWorkFinished,
			Break:    e.breakKind,
			Duration: worked,
		})
	case StateBreak:
		rested := e.breakTotal
		kind := e.breakKind
		e.enterIdle()
		e.emit(Event{
			Type:     EventBreakFinished,
			Break:    kind,
			Duration: rested,
		})
	}
}

// Reset abandons the current run and returns to idle. No completion
// event is emitted.
func (e *Engine) Reset() {
	e.enterIdle()
}

// SkipToBreak ends a work run early and moves straight to its break.
func (e *Engine) SkipToBreak() {
	if e.state != StateRunning {
		return
	}
	e.enterBreak()
}

// SkipBreak ends a break early and returns to idle.
func (e *Engine) SkipBreak() {
	if !e.IsBreak() {
		return
	}
	e.enterIdle()
}

// SetWorkDuration stages a new work length in minutes.
func (e *Engine) SetWorkDuration(minutes int) error {
	c := e.pending
	c.WorkSeconds = minutes * 60
	return e.SetConfig(c)
}

// SetBreakDuration stages a new short break length in minutes.
func (e *Engine) SetBreakDuration(minutes int) error {
	c := e.pending
	c.ShortBreakSeconds = minutes * 60
	return e.SetConfig(c)
}

// SetLongBreakDuration stages a new long break length in minutes.
func (e *Engine) SetLongBreakDuration(minutes int) error {
	c := e.pending
	c.LongBreakSeconds = minutes * 60
	return e.SetConfig(c)
}

// SetSessionsBeforeLongBreak stages a new long break cadence.
func (e *Engine) SetSessionsBeforeLongBreak(n int) error {
	c := e.pending
	c.SessionsBeforeLongBreak = n
	return e.SetConfig(c)
}

// SetConfig stages a whole configuration. It takes effect immediately while
// idle and otherwise on the next return to idle.
func (e *Engine) SetConfig(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.pending = c
	if e.state == StateIdle {
		e.active = c
		e.remaining = c.WorkSeconds
		e.emit(Event{
			Type:      EventTick,
			State:     e.state,
			Remaining: e.remaining,
			Progress:  e.Progress(),
		})
	}
	return nil
}

// SetTask records the selected task. The engine never persists it.
func (e *Engine) SetTask(id *int64) {
	e.taskID = id
}

func (e *Engine) TaskID() *int64 { return e.taskID }

func (e *Engine) State() State { return e.state }

func (e *Engine) Remaining() int { return e.remaining }

func (e *Engine) SessionsCompleted() int { return e.completed }

// Config returns the staged configuration.
func (e *Engine) Config() Config { return e.pending }

// StartedAt is the time the current work run left idle.
func (e *Engine) StartedAt() time.Time { return e.startedAt }

// IsTicking reports whether the engine consumes ticks.
func (e *Engine) IsTicking() bool {
	return e.state == StateRunning || e.state == StateBreak
}

func (e *Engine) IsBreak() bool {
	return e.state == StateBreak || e.state == StateBreakPaused
}

// BreakKind is the kind of the current break, or BreakNone outside breaks.
func (e *Engine) BreakKind() BreakKind {
	if !e.IsBreak() {
		return BreakNone
	}
	return e.breakKind
}

// Total is the full length of the current phase in seconds.
func (e *Engine) Total() int {
	if e.IsBreak() {
		return e.breakTotal
	}
	return e.active.WorkSeconds
}

// Elapsed is the number of seconds already counted down in the current phase.
func (e *Engine) Elapsed() int {
	elapsed := e.Total() - e.remaining
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Progress is 1 - remaining/total for the current phase.
func (e *Engine) Progress() float64 {
	total := e.Total()
	if total <= 0 {
		return 0
	}
	return 1 - float64(e.remaining)/float64(total)
}

// Formatted renders the remaining time as MM:SS.
func (e *Engine) Formatted() string {
	return FormatSeconds(e.remaining)
}

// FormatSeconds renders a second count as MM:SS.
func FormatSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (e *Engine) enterBreak() {
	e.completed++
	if e.completed%e.active.SessionsBeforeLongBreak == 0 {
		e.breakKind = BreakLong
		e.breakTotal = e.active.LongBreakSeconds
	} else {
		e.breakKind = BreakShort
		e.breakTotal = e.active.ShortBreakSeconds
	}
	e.remaining = e.breakTotal
	e.setState(StateBreak)
}

func (e *Engine) enterIdle() {
	e.active = e.pending
	e.remaining = e.active.WorkSeconds
	e.startedAt = time.Time{}
	e.emit(Event{
		Type:      EventTick,
		State:     StateIdle,
		Remaining: e.remaining,
	})
	e.setState(StateIdle)
}

func (e *Engine) setState(s State) {
	e.state = s
	e.emit(Event{
		Type:      EventStateChange,
		State:     s,
		Remaining: e.remaining,
		Progress:  e.Progress(),
		Break:     e.BreakKind(),
	})
}

func (e *Engine) emit(event Event) {
	if event.State == "" {
		event.State = e.state
	}
	event.SessionsCompleted = e.completed
	if event.At.IsZero() {
		event.At = e.now()
	}
	for _, l := range e.listeners {
		l(event)
	}
}
