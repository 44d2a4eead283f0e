package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/timer"
)

// timerModel renders the countdown. All state lives in the engine; key
// handling is done by the App so timer keys work from every tab.
type timerModel struct {
	ctrl   *focus.Controller
	width  int
	height int

	taskName string
	bar      progress.Model
}

func newTimerModel(c *focus.Controller) timerModel {
	return timerModel{
		ctrl: c,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.bar.Width = max(10, min(w-12, 60))
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	if msg, ok := msg.(taskSelectedMsg); ok {
		t.taskName = ""
		if msg.task != nil {
			t.taskName = msg.task.Name
		}
	}
	return t, nil
}

func (t timerModel) view() string {
	w := t.width - 4
	e := t.ctrl.Engine()

	title := titleStyle.Render("Focus Timer")
	timeDisplay := t.timeStyle(e.State()).Width(w - 6).Render(e.Formatted())
	label := t.timeStyle(e.State()).Render(stateLabel(e.State(), e.BreakKind()))

	task := mutedStyle.Render("No task selected")
	if t.taskName != "" {
		task = highlightStyle.Render(t.taskName)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		label,
		"",
		t.bar.ViewAs(e.Progress()),
		"",
		renderCycle(e),
		task,
	)

	var controls string
	switch e.State() {
	case timer.StateIdle:
		controls = mutedStyle.Render("s: start  2: pick task")
	case timer.StateRunning, timer.StateBreak:
		controls = mutedStyle.Render("space: pause  r: reset  x: skip")
	case timer.StatePaused:
		controls = mutedStyle.Render("space: resume  r: reset")
	default:
		controls = mutedStyle.Render("space: resume  r: reset  x: skip")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerModel) timeStyle(s timer.State) lipgloss.Style {
	switch s {
	case timer.StateRunning:
		return timerRunningStyle
	case timer.StateBreak:
		return timerBreakStyle
	case timer.StatePaused, timer.StateBreakPaused:
		return timerPausedStyle
	}
	return timerStyle
}

// renderCycle draws one dot per session in the current long-break cycle.
func renderCycle(e *timer.Engine) string {
	n := e.Config().SessionsBeforeLongBreak
	done := e.SessionsCompleted() % n
	if e.BreakKind() == timer.BreakLong {
		done = n
	}

	var parts []string
	for i := 0; i < n; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && !e.IsBreak() && e.State() != timer.StateIdle:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d completed", e.SessionsCompleted()))
	return strings.Join(parts, " ") + counter
}
