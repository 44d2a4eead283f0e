package focus

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sadopc/focus/internal/config"
	"github.com/sadopc/focus/internal/logging"
	"github.com/sadopc/focus/internal/store"
	"github.com/sadopc/focus/internal/timer"
)

// Ledger is the part of the store the controller writes to.
type Ledger interface {
	StartSession(taskID *int64, kind store.SessionKind) (int64, error)
	EndSession(id int64, durationSeconds int64, completed bool) error
	AddAchievedMinutes(minutes int, date string) error
}

// Controller keeps exactly one ledger session open for every non-idle
// engine phase and closes it when the phase ends.
type Controller struct {
	engine *timer.Engine
	ledger Ledger
	log    *log.Logger

	sessionID   int64
	sessionKind store.SessionKind

	// err collects ledger failures raised from engine listeners during Tick.
	err error
}

func NewController(engine *timer.Engine, ledger Ledger, logger *log.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Controller{engine: engine, ledger: ledger, log: logger}
	engine.Subscribe(c.onEvent)
	return c
}

func (c *Controller) Engine() *timer.Engine { return c.engine }

// SessionID is the open ledger session, or 0.
func (c *Controller) SessionID() int64 { return c.sessionID }

// Subscribe forwards to the engine.
func (c *Controller) Subscribe(l timer.Listener) { c.engine.Subscribe(l) }

// SelectTask binds future work sessions to id (nil for none).
func (c *Controller) SelectTask(id *int64) { c.engine.SetTask(id) }

// ApplyConfig stages new durations on the engine.
func (c *Controller) ApplyConfig(cfg config.Config) error {
	return c.engine.SetConfig(cfg.TimerConfig())
}

// Start opens a work session when leaving idle, then starts or resumes
// the engine.
func (c *Controller) Start() error {
	if c.engine.State() == timer.StateIdle {
		if err := c.open(store.SessionWork); err != nil {
			return err
		}
	}
	c.engine.Start()
	return nil
}

func (c *Controller) Pause() { c.engine.Pause() }

func (c *Controller) Toggle() error {
	if c.engine.IsTicking() {
		c.engine.Pause()
		return nil
	}
	return c.Start()
}

// Tick advances the engine one second and returns any ledger error raised
// by a phase completing.
func (c *Controller) Tick() error {
	c.engine.Tick()
	err := c.err
	c.err = nil
	return err
}

// Reset closes the open session as incomplete and returns the engine to idle.
func (c *Controller) Reset() error {
	err := c.close(int64(c.engine.Elapsed()), false)
	c.engine.Reset()
	return err
}

// Skip ends the current phase early. A skipped work run still credits the
// minutes already worked.
func (c *Controller) Skip() error {
	switch {
	case c.engine.IsBreak():
		err := c.close(int64(c.engine.Elapsed()), false)
		c.engine.SkipBreak()
		return err
	case c.engine.State() == timer.StateRunning:
		elapsed := c.engine.Elapsed()
		err := c.close(int64(elapsed), false)
		err = errors.Join(err, c.credit(elapsed))
		c.engine.SkipToBreak()
		return errors.Join(err, c.open(store.SessionBreak))
	}
	return nil
}

// Close ends any open session as incomplete. Call it before exiting.
func (c *Controller) Close() error {
	return c.close(int64(c.engine.Elapsed()), false)
}

func (c *Controller) onEvent(ev timer.Event) {
	switch ev.Type {
	case timer.EventWorkFinished:
		err := c.close(int64(ev.Duration), true)
		err = errors.Join(err, c.credit(ev.Duration))
		err = errors.Join(err, c.open(store.SessionBreak))
		c.err = errors.Join(c.err, err)
		c.log.Info("work finished", "break", ev.Break, "sessions", ev.SessionsCompleted)
	case timer.EventBreakFinished:
		c.err = errors.Join(c.err, c.close(int64(ev.Duration), true))
		c.log.Info("break finished", "break", ev.Break)
	}
}

func (c *Controller) open(kind store.SessionKind) error {
	id, err := c.ledger.StartSession(c.engine.TaskID(), kind)
	if err != nil {
		c.log.Error("open session", "kind", kind, "err", err)
		return fmt.Errorf("open %s session: %w", kind, err)
	}
	c.sessionID = id
	c.sessionKind = kind
	c.log.Debug("session opened", "id", id, "kind", kind)
	return nil
}

func (c *Controller) close(seconds int64, completed bool) error {
	if c.sessionID == 0 {
		return nil
	}
	id, kind := c.sessionID, c.sessionKind
	c.sessionID = 0
	c.sessionKind = ""
	if err := c.ledger.EndSession(id, seconds, completed); err != nil {
		c.log.Error("close session", "id", id, "err", err)
		return fmt.Errorf("close %s session %d: %w", kind, id, err)
	}
	c.log.Debug("session closed", "id", id, "kind", kind, "seconds", seconds, "completed", completed)
	return nil
}

func (c *Controller) credit(seconds int) error {
	minutes := seconds / 60
	if minutes <= 0 {
		return nil
	}
	if err := c.ledger.AddAchievedMinutes(minutes, ""); err != nil {
		c.log.Error("credit goal", "minutes", minutes, "err", err)
		return fmt.Errorf("credit %d minutes: %w", minutes, err)
	}
	return nil
}

// StaleSessions is implemented by *store.Store.
type StaleSessions interface {
	OpenSession() (*store.Session, error)
	EndSession(id int64, durationSeconds int64, completed bool) error
}

// CloseStale ends sessions left open by a previous run that never exited
// cleanly. They are recorded as incomplete with no duration.
func CloseStale(s StaleSessions) (int, error) {
	closed := 0
	for {
		open, err := s.OpenSession()
		if err != nil {
			return closed, err
		}
		if open == nil {
			return closed, nil
		}
		if err := s.EndSession(open.ID, 0, false); err != nil {
			return closed, err
		}
		closed++
	}
}
