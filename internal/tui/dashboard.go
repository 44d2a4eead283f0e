package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/store"
	"github.com/sadopc/focus/internal/timer"
)

type dashboardModel struct {
	store  *store.Store
	ctrl   *focus.Controller
	width  int
	height int

	today     store.DailyAggregate
	goal      store.DailyGoal
	streak    int
	recent    []store.Session
	taskNames map[int64]string
	taskName  string

	goalBar progress.Model
}

func newDashboardModel(s *store.Store, c *focus.Controller) dashboardModel {
	return dashboardModel{
		store:   s,
		ctrl:    c,
		goalBar: progress.New(progress.WithDefaultGradient()),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.goalBar.Width = max(10, min(w-16, 60))
}

type dashboardDataMsg struct {
	today     store.DailyAggregate
	goal      store.DailyGoal
	streak    int
	recent    []store.Session
	taskNames map[int64]string
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today, err := d.store.TodayAggregate()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		goal, err := d.store.GetDailyGoal("")
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		streak, err := d.store.Streak()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		recent, err := d.store.ListSessions(store.SessionFilter{Limit: 5})
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		tasks, err := d.store.ListTasks(true)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}

		names := make(map[int64]string)
		for _, t := range tasks {
			names[t.ID] = t.Name
		}

		return dashboardDataMsg{
			today:     today,
			goal:      goal,
			streak:    streak,
			recent:    recent,
			taskNames: names,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.today = msg.today
		d.goal = msg.goal
		d.streak = msg.streak
		d.recent = msg.recent
		d.taskNames = msg.taskNames
		return d, nil

	case taskSelectedMsg:
		d.taskName = ""
		if msg.task != nil {
			d.taskName = msg.task.Name
		}
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderTimerPanel(contentWidth),
		d.renderTodayPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	e := d.ctrl.Engine()
	style := timerStyle
	indicator := mutedStyle.Render("■  " + stateLabel(e.State(), e.BreakKind()))

	switch e.State() {
	case timer.StateRunning:
		style = timerRunningStyle
		indicator = accentStyle.Render("●  " + stateLabel(e.State(), e.BreakKind()))
	case timer.StateBreak:
		style = timerBreakStyle
		indicator = successStyle.Render("☕  " + stateLabel(e.State(), e.BreakKind()))
	case timer.StatePaused, timer.StateBreakPaused:
		style = timerPausedStyle
		indicator = warningStyle.Render("⏸  " + stateLabel(e.State(), e.BreakKind()))
	}

	taskLine := mutedStyle.Render("Press 2 to pick a task, s to start")
	if d.taskName != "" {
		taskLine = highlightStyle.Render(d.taskName)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		style.Width(w-6).Render(e.Formatted()),
		indicator,
		taskLine,
	)
	if e.State() == timer.StateIdle {
		return panelStyle.Width(w).Render(content)
	}
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatSeconds(d.today.TotalFocusSeconds))

	stats := fmt.Sprintf("  %s focused   %d sessions   %d tasks done",
		total, d.today.SessionsCompleted, d.today.TasksCompleted)

	goalLine := fmt.Sprintf("  Goal %s  %d/%d min",
		d.goalBar.ViewAs(d.goal.Progress()), d.goal.AchievedMinutes, d.goal.TargetMinutes)
	if d.goal.TargetMinutes > 0 && d.goal.Achieved() {
		goalLine += successStyle.Render("  ✓")
	}

	streak := mutedStyle.Render("  No streak yet")
	if d.streak > 0 {
		unit := "days"
		if d.streak == 1 {
			unit = "day"
		}
		streak = warningStyle.Render(fmt.Sprintf("  🔥 %d %s streak", d.streak, unit))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, stats, goalLine, streak),
	)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No sessions yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range d.recent {
		name := "-"
		if s.TaskID != nil {
			if n, ok := d.taskNames[*s.TaskID]; ok {
				name = n
			}
		}
		dur := formatSeconds(s.DurationSeconds)
		status := "✓"
		switch {
		case s.Open():
			status = "●"
			dur = "running"
		case !s.Completed:
			status = "×"
		}
		row := fmt.Sprintf("  %s %s  %-6s %-20s %s", status, s.StartTime.Local().Format("15:04"), s.Kind, name, dur)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
