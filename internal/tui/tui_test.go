package tui

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/focus/internal/config"
	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/store"
	"github.com/sadopc/focus/internal/timer"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestController(t *testing.T, s *store.Store, tc timer.Config) *focus.Controller {
	t.Helper()
	e, err := timer.New(tc)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return focus.NewController(e, s, nil)
}

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	cfg := config.Default()
	app := NewApp(s, newTestController(t, s, cfg.TimerConfig()), cfg, nil)
	app = press(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, s
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return next
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{1500, "00:25:00"},
		{86400, "24:00:00"},
	}
	for _, tt := range tests {
		got := formatSeconds(tt.secs)
		if got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0.0h"},
		{1800, "0.5h"},
		{3600, "1.0h"},
		{9000, "2.5h"},
	}
	for _, tt := range tests {
		got := formatHours(tt.secs)
		if got != tt.want {
			t.Errorf("formatHours(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestStateLabel(t *testing.T) {
	tests := []struct {
		state timer.State
		kind  timer.BreakKind
		want  string
	}{
		{timer.StateIdle, timer.BreakNone, "READY"},
		{timer.StateRunning, timer.BreakNone, "FOCUS"},
		{timer.StatePaused, timer.BreakNone, "PAUSED"},
		{timer.StateBreak, timer.BreakShort, "SHORT BREAK"},
		{timer.StateBreak, timer.BreakLong, "LONG BREAK"},
		{timer.StateBreakPaused, timer.BreakShort, "BREAK PAUSED"},
	}
	for _, tt := range tests {
		if got := stateLabel(tt.state, tt.kind); got != tt.want {
			t.Errorf("stateLabel(%s, %q) = %q, want %q", tt.state, tt.kind, got, tt.want)
		}
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{config.KeyWorkDuration, "25", "25 min"},
		{config.KeyBreakDuration, "5", "5 min"},
		{config.KeyLongBreakDuration, "15", "15 min"},
		{config.KeyDailyGoalMinutes, "120", "120 min"},
		{config.KeySessionsBeforeLongBreak, "4", "4"},
		{config.KeyAlarmSound, "chime", "chime"},
		{config.KeyWorkDuration, "invalid", "invalid"},
	}
	for _, tt := range tests {
		got := formatSettingValue(tt.key, tt.val)
		if got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

func TestPhaseNoticesKeepsOnlyCompletions(t *testing.T) {
	var n phaseNotices
	n.listen(timer.Event{Type: timer.EventTick})
	n.listen(timer.Event{Type: timer.EventStateChange})
	n.listen(timer.Event{Type: timer.EventWorkFinished})
	n.listen(timer.Event{Type: timer.EventBreakFinished})

	got := n.drain()
	if len(got) != 2 {
		t.Fatalf("drained %d events, want 2", len(got))
	}
	if got[0].Type != timer.EventWorkFinished || got[1].Type != timer.EventBreakFinished {
		t.Fatalf("unexpected order: %v", got)
	}
	if len(n.drain()) != 0 {
		t.Fatal("second drain should be empty")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Tasks", "Reports", "Timer", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewTasks != 1 || viewReports != 2 || viewTimer != 3 || viewSettings != 4 {
		t.Fatal("view state constants have unexpected values")
	}
}

// ============================================================
// Timer model
// ============================================================

func TestTimerViewFollowsEngine(t *testing.T) {
	s := newTestStore(t)
	c := newTestController(t, s, timer.DefaultConfig())
	tm := newTimerModel(c)
	tm.setSize(100, 30)

	if !strings.Contains(tm.view(), "25:00") {
		t.Fatal("idle view should show the full work length")
	}
	if !strings.Contains(tm.view(), "READY") {
		t.Fatal("idle view should say READY")
	}

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	c.Tick()
	out := tm.view()
	if !strings.Contains(out, "24:59") || !strings.Contains(out, "FOCUS") {
		t.Fatalf("running view should show 24:59 and FOCUS:\n%s", out)
	}
}

func TestTimerTaskSelected(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(newTestController(t, s, timer.DefaultConfig()))
	tm.setSize(100, 30)

	tm, _ = tm.update(taskSelectedMsg{task: &store.Task{ID: 1, Name: "Draft chapter"}})
	if tm.taskName != "Draft chapter" {
		t.Fatalf("taskName = %q", tm.taskName)
	}
	tm, _ = tm.update(taskSelectedMsg{})
	if tm.taskName != "" {
		t.Fatal("clearing the selection should clear the task name")
	}
}

func TestRenderCycle(t *testing.T) {
	s := newTestStore(t)
	c := newTestController(t, s, timer.Config{
		WorkSeconds: 1, ShortBreakSeconds: 1, LongBreakSeconds: 1, SessionsBeforeLongBreak: 3,
	})
	out := renderCycle(c.Engine())
	if !strings.Contains(out, "completed") {
		t.Fatalf("cycle line should carry the completed count: %q", out)
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardInit(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s, newTestController(t, s, timer.DefaultConfig()))

	cmd := d.Init()
	if cmd == nil {
		t.Fatal("Init should return a load command")
	}
	msg := cmd()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("expected dashboardDataMsg, got %T", msg)
	}
	if data.goal.TargetMinutes != store.DefaultGoalMinutes {
		t.Fatalf("goal target = %d, want %d", data.goal.TargetMinutes, store.DefaultGoalMinutes)
	}
	if data.streak != 0 {
		t.Fatalf("streak = %d, want 0", data.streak)
	}
}

func TestDashboardLoadReportsStoreErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focus.db")
	s, err := store.New(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := raw.Exec(`DROP TABLE daily_goals`); err != nil {
		t.Fatal(err)
	}
	raw.Close()

	d := newDashboardModel(s, newTestController(t, s, timer.DefaultConfig()))
	msg := d.loadData()()
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", msg)
	}
	if !status.isError || !strings.Contains(status.text, "daily_goals") {
		t.Fatalf("status = %+v", status)
	}
}

func TestDashboardShowsRecentSessions(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Refactor parser")
	id, _ := s.StartSession(&task.ID, store.SessionWork)
	s.EndSession(id, 1500, true)

	d := newDashboardModel(s, newTestController(t, s, timer.DefaultConfig()))
	d.setSize(120, 40)
	d, _ = d.update(d.loadData()())

	out := d.view()
	if !strings.Contains(out, "Refactor parser") {
		t.Fatal("recent panel should name the task")
	}
	if !strings.Contains(out, "00:25:00") {
		t.Fatal("today panel should show 25 minutes focused")
	}
}

// ============================================================
// Tasks model
// ============================================================

func TestTasksRefreshAndSelect(t *testing.T) {
	s := newTestStore(t)
	c := newTestController(t, s, timer.DefaultConfig())
	s.CreateTask("Write tests")

	p := newTasksModel(s, c)
	p.setSize(120, 40)
	p, _ = p.update(p.refresh()())
	if len(p.tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(p.tasks))
	}

	p, cmd := p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should emit a selection")
	}
	sel, ok := cmd().(taskSelectedMsg)
	if !ok || sel.task == nil || sel.task.Name != "Write tests" {
		t.Fatalf("unexpected selection message: %#v", sel)
	}
	if id := c.Engine().TaskID(); id == nil || *id != p.tasks[0].ID {
		t.Fatal("engine should carry the selected task")
	}

	// Enter again clears it.
	_, cmd = p.update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel := cmd().(taskSelectedMsg); sel.task != nil {
		t.Fatal("second enter should clear the selection")
	}
	if c.Engine().TaskID() != nil {
		t.Fatal("engine task should be cleared")
	}
}

func TestTasksCompleteKey(t *testing.T) {
	s := newTestStore(t)
	task, _ := s.CreateTask("Ship release")

	p := newTasksModel(s, newTestController(t, s, timer.DefaultConfig()))
	p, _ = p.update(p.refresh()())
	p, _ = p.update(runeKey('c'))

	got, _ := s.GetTask(task.ID)
	if !got.Completed {
		t.Fatal("c should complete the task")
	}
	agg, _ := s.TodayAggregate()
	if agg.TasksCompleted != 1 {
		t.Fatalf("tasks completed today = %d, want 1", agg.TasksCompleted)
	}
}

func TestTasksNewOpensForm(t *testing.T) {
	s := newTestStore(t)
	p := newTasksModel(s, newTestController(t, s, timer.DefaultConfig()))

	p, _ = p.update(runeKey('n'))
	if !p.formActive || p.formType != "new" {
		t.Fatal("n should open the new task form")
	}
	p, _ = p.update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Reports model
// ============================================================

func TestReportsRefresh(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s)
	r.setSize(120, 40)

	r, _ = r.update(r.refresh()())
	if len(r.days) != 7 {
		t.Fatalf("week view days = %d, want 7", len(r.days))
	}

	r, cmd := r.update(runeKey('l'))
	if r.mode != reportMonth || cmd == nil {
		t.Fatal("right should switch to the 30 day view")
	}
	r, _ = r.update(cmd())
	if len(r.days) != 30 {
		t.Fatalf("month view days = %d, want 30", len(r.days))
	}
	if r.view() == "" {
		t.Fatal("reports view rendered empty")
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsSave(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Default()
	c := newTestController(t, s, cfg.TimerConfig())
	sm := newSettingsModel(s, c, cfg)

	for k, v := range cfg.Settings() {
		*sm.values[k] = v
	}
	*sm.values[config.KeyWorkDuration] = "50"
	*sm.values[config.KeyDailyGoalMinutes] = "90"

	next, err := sm.save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if next.WorkMinutes != 50 {
		t.Fatalf("WorkMinutes = %d, want 50", next.WorkMinutes)
	}
	if v, _ := s.GetSetting(config.KeyWorkDuration); v != "50" {
		t.Fatalf("stored work duration = %q, want 50", v)
	}
	goal, _ := s.GetDailyGoal("")
	if goal.TargetMinutes != 90 {
		t.Fatalf("today's target = %d, want 90", goal.TargetMinutes)
	}
	if c.Engine().Config().WorkSeconds != 50*60 {
		t.Fatalf("engine work seconds = %d, want 3000", c.Engine().Config().WorkSeconds)
	}
}

func TestSettingsSaveRejectsBadValue(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Default()
	sm := newSettingsModel(s, newTestController(t, s, cfg.TimerConfig()), cfg)

	for k, v := range cfg.Settings() {
		*sm.values[k] = v
	}
	*sm.values[config.KeySessionsBeforeLongBreak] = "0"

	if _, err := sm.save(); err == nil {
		t.Fatal("expected error for zero sessions")
	}
	if v, _ := s.GetSetting(config.KeySessionsBeforeLongBreak); v != "4" {
		t.Fatalf("stored value changed to %q", v)
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app, _ := newTestApp(t)
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)

	views := []viewState{viewDashboard, viewTasks, viewReports, viewTimer, viewSettings}
	for _, v := range views {
		app.activeView = v
		if output := app.View(); output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppNarrowTerminal(t *testing.T) {
	for _, width := range []int{1, 8, 12, 30} {
		app, _ := newTestApp(t)
		app = press(t, app, tea.WindowSizeMsg{Width: width, Height: 20})
		for _, v := range []viewState{viewDashboard, viewTasks, viewReports, viewTimer, viewSettings} {
			app.activeView = v
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("view %d panicked at width %d: %v", v, width, r)
					}
				}()
				app.View()
			}()
		}
		app.reports.buildChart()
		if app.reports.view() == "" {
			t.Fatalf("reports rendered empty at width %d", width)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 0
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app = press(t, app, statusMsg{text: "test status"})

	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppTabKeys(t *testing.T) {
	app, _ := newTestApp(t)

	app = press(t, app, runeKey('3'))
	if app.activeView != viewReports {
		t.Fatalf("3 should open reports, got %d", app.activeView)
	}
	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewTimer {
		t.Fatalf("tab should advance to timer, got %d", app.activeView)
	}
	app = press(t, app, runeKey('5'))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewDashboard {
		t.Fatal("tab should wrap to dashboard")
	}
}

func TestAppTimerKeysOpenAndCloseSessions(t *testing.T) {
	app, s := newTestApp(t)

	app = press(t, app, runeKey('s'))
	if app.ctrl.Engine().State() != timer.StateRunning {
		t.Fatalf("s should start the timer, state = %s", app.ctrl.Engine().State())
	}
	open, _ := s.OpenSession()
	if open == nil || open.Kind != store.SessionWork {
		t.Fatal("starting should open a work session")
	}

	app = press(t, app, tea.KeyMsg{Type: tea.KeySpace})
	if app.ctrl.Engine().State() != timer.StatePaused {
		t.Fatal("space should pause")
	}
	if !strings.Contains(app.renderFooter(), "25:00") {
		t.Fatal("footer should show the paused countdown")
	}

	app = press(t, app, runeKey('r'))
	if app.ctrl.Engine().State() != timer.StateIdle {
		t.Fatal("r should reset to idle")
	}
	got, _ := s.GetSession(open.ID)
	if got.Open() || got.Completed {
		t.Fatal("reset should close the session as incomplete")
	}
}

func TestAppSkipMovesToBreak(t *testing.T) {
	app, s := newTestApp(t)

	app = press(t, app, runeKey('s'))
	app = press(t, app, runeKey('x'))
	if app.ctrl.Engine().State() != timer.StateBreak {
		t.Fatalf("x should skip to break, state = %s", app.ctrl.Engine().State())
	}
	open, _ := s.OpenSession()
	if open == nil || open.Kind != store.SessionBreak {
		t.Fatal("skipping should open a break session")
	}

	app = press(t, app, runeKey('x'))
	if app.ctrl.Engine().State() != timer.StateIdle {
		t.Fatal("x during a break should return to idle")
	}
}

func TestAppTickCompletesWorkRun(t *testing.T) {
	s := newTestStore(t)
	cfg := config.Default()
	cfg.AlarmSound = "none"
	c := newTestController(t, s, timer.Config{
		WorkSeconds: 120, ShortBreakSeconds: 60, LongBreakSeconds: 120, SessionsBeforeLongBreak: 4,
	})
	app := NewApp(s, c, cfg, nil)
	app.width, app.height = 120, 40

	app = press(t, app, runeKey('s'))
	for range 120 {
		app = press(t, app, tickMsg(time.Now()))
	}

	if c.Engine().State() != timer.StateBreak {
		t.Fatalf("state = %s, want break", c.Engine().State())
	}
	if !strings.Contains(app.status, "Session 1 done") {
		t.Fatalf("status = %q", app.status)
	}
	if strings.Contains(app.status, "\a") {
		t.Fatal("alarm none should not ring the bell")
	}

	agg, _ := s.TodayAggregate()
	if agg.TotalFocusSeconds != 120 || agg.SessionsCompleted != 1 {
		t.Fatalf("today = %+v", agg)
	}
	goal, _ := s.GetDailyGoal("")
	if goal.AchievedMinutes != 2 {
		t.Fatalf("achieved = %d, want 2", goal.AchievedMinutes)
	}
}

func TestAppPhaseStatusRingsBell(t *testing.T) {
	app, _ := newTestApp(t)
	text := app.phaseStatus(timer.Event{Type: timer.EventBreakFinished})
	if !strings.HasPrefix(text, "\a") {
		t.Fatalf("expected bell prefix, got %q", text)
	}
}

func TestAppFormCapturesKeys(t *testing.T) {
	app, _ := newTestApp(t)
	app = press(t, app, runeKey('2'))
	app = press(t, app, runeKey('n'))
	if !app.isFormActive() {
		t.Fatal("n on tasks should open a form")
	}

	app = press(t, app, runeKey('s'))
	if app.ctrl.Engine().State() != timer.StateIdle {
		t.Fatal("typing into a form must not start the timer")
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t)

	app = press(t, app, runeKey('e'))
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	app = press(t, app, runeKey('j'))
	if app.exportCursor != 1 {
		t.Fatalf("cursor = %d, want 1", app.exportCursor)
	}
	app = press(t, app, runeKey('j'))
	if app.exportCursor != 1 {
		t.Fatal("cursor should stop at the last format")
	}
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppQuitClosesSession(t *testing.T) {
	app, s := newTestApp(t)
	app = press(t, app, runeKey('s'))

	_, cmd := app.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if open, _ := s.OpenSession(); open != nil {
		t.Fatal("quitting should close the open session")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, render without panicking)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"timerBreak", func() string { return timerBreakStyle.Render("test") }},
		{"timerPaused", func() string { return timerPausedStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"doneItem", func() string { return doneItemStyle.Render("test") }},
	}

	for _, s := range styles {
		if result := s.fn(); result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
