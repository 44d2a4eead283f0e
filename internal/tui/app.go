package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/sadopc/focus/internal/config"
	"github.com/sadopc/focus/internal/export"
	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/logging"
	"github.com/sadopc/focus/internal/store"
	"github.com/sadopc/focus/internal/timer"
)

// exportDays is how many daily aggregates an export carries.
const exportDays = 30

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	ctrl    *focus.Controller
	cfg     config.Config
	log     *log.Logger
	notices *phaseNotices
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	tasks     tasksModel
	reports   reportsModel
	timer     timerModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store, ctrl *focus.Controller, cfg config.Config, logger *log.Logger) App {
	if logger == nil {
		logger = logging.Discard()
	}
	h := help.New()
	h.ShowAll = false

	notices := &phaseNotices{}
	ctrl.Subscribe(notices.listen)

	return App{
		store:      s,
		ctrl:       ctrl,
		cfg:        cfg,
		log:        logger,
		notices:    notices,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s, ctrl),
		tasks:      newTasksModel(s, ctrl),
		reports:    newReportsModel(s),
		timer:      newTimerModel(ctrl),
		settings:   newSettingsModel(s, ctrl, cfg),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.timer.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			if err := a.ctrl.Close(); err != nil {
				a.log.Error("close session on quit", "err", err)
			}
			return a, tea.Quit
		case key.Matches(msg, keys.Start):
			return a, a.timerAction("start", a.ctrl.Start)
		case key.Matches(msg, keys.Pause):
			return a, a.timerAction("toggle", a.ctrl.Toggle)
		case key.Matches(msg, keys.Reset):
			return a, a.timerAction("reset", a.ctrl.Reset)
		case key.Matches(msg, keys.Skip):
			return a, a.timerAction("skip", a.ctrl.Skip)
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, a.tasks.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if err := a.ctrl.Tick(); err != nil {
			a.log.Error("tick", "err", err)
			a.status = fmt.Sprintf("Error: %v", err)
		}
		if events := a.notices.drain(); len(events) > 0 {
			a.status = a.phaseStatus(events[len(events)-1])
			cmds = append(cmds, a.dashboard.loadData())
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.log.Warn(msg.text)
		}
		return a, nil

	case taskSelectedMsg:
		a.dashboard, _ = a.dashboard.update(msg)
		a.timer, _ = a.timer.update(msg)
		if msg.task != nil {
			a.status = "Selected " + msg.task.Name
		} else {
			a.status = "No task selected"
		}
		return a, nil

	case settingsSavedMsg:
		a.cfg = a.settings.cfg
		a.status = "Settings saved"
		a.log.Info("settings saved", "work", a.cfg.WorkMinutes, "short", a.cfg.ShortBreakMinutes,
			"long", a.cfg.LongBreakMinutes, "every", a.cfg.SessionsBeforeLongBreak)
		return a, a.dashboard.loadData()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// timerAction runs a controller operation and reports its outcome.
func (a App) timerAction(name string, fn func() error) tea.Cmd {
	if err := fn(); err != nil {
		a.log.Error("timer "+name, "err", err)
		return statusCmd(fmt.Sprintf("Error: %v", err), true)
	}
	a.log.Debug("timer "+name, "state", a.ctrl.Engine().State(), "session", a.ctrl.SessionID())
	return tea.Batch(
		statusCmd(stateLabel(a.ctrl.Engine().State(), a.ctrl.Engine().BreakKind()), false),
		a.dashboard.loadData(),
	)
}

// phaseStatus is the notice shown when a phase runs out. It rings the
// terminal bell unless the alarm is off.
func (a App) phaseStatus(ev timer.Event) string {
	text := "Break over. Press s to focus"
	if ev.Type == timer.EventWorkFinished {
		text = fmt.Sprintf("Session %d done. Time for a %s break", ev.SessionsCompleted, ev.Break)
	}
	if a.cfg.AlarmSound != "none" {
		text = "\a" + text
	}
	return text
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewTasks:
		return a.tasks.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewReports:
		content = a.reports.view()
	case viewTimer:
		content = a.timer.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(a.height-headerHeight-footerHeight, 1)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focus")
	gap := max(a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator in footer
	timerInfo := ""
	e := a.ctrl.Engine()
	switch e.State() {
	case timer.StateRunning:
		timerInfo = accentStyle.Render(" ● " + e.Formatted())
	case timer.StateBreak:
		timerInfo = successStyle.Render(" ☕ " + e.Formatted())
	case timer.StatePaused, timer.StateBreakPaused:
		timerInfo = warningStyle.Render(" ⏸ " + e.Formatted())
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		data, err := export.Collect(a.store, exportDays)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(store.DateLayout)

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("focus-export-%s.csv", dateStr))
			if err := export.ToCSV(data, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("focus-export-%s.json", dateStr))
			if err := export.ToJSON(data, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		a.log.Info("exported", "path", path, "sessions", len(data.Sessions))
		return exportDoneMsg{path: path}
	}
}
