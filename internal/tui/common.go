package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/focus/internal/store"
	"github.com/sadopc/focus/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewReports
	viewTimer
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Reports", "Timer", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type taskSelectedMsg struct {
	task *store.Task
}

type settingsSavedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatSeconds(secs int64) string {
	return formatDuration(time.Duration(secs) * time.Second)
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

func stateLabel(s timer.State, kind timer.BreakKind) string {
	switch s {
	case timer.StateRunning:
		return "FOCUS"
	case timer.StatePaused:
		return "PAUSED"
	case timer.StateBreak:
		if kind == timer.BreakLong {
			return "LONG BREAK"
		}
		return "SHORT BREAK"
	case timer.StateBreakPaused:
		return "BREAK PAUSED"
	}
	return "READY"
}

// phaseNotices collects completion events raised while the engine ticks so
// the App can react after the tick returns.
type phaseNotices struct {
	pending []timer.Event
}

func (n *phaseNotices) listen(ev timer.Event) {
	if ev.Type == timer.EventWorkFinished || ev.Type == timer.EventBreakFinished {
		n.pending = append(n.pending, ev)
	}
}

func (n *phaseNotices) drain() []timer.Event {
	out := n.pending
	n.pending = nil
	return out
}
