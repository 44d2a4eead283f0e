package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focus/internal/config"
	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/store"
)

var settingLabels = map[string]string{
	config.KeyWorkDuration:            "Focus length (min)",
	config.KeyBreakDuration:           "Short break (min)",
	config.KeyLongBreakDuration:       "Long break (min)",
	config.KeySessionsBeforeLongBreak: "Sessions before long break",
	config.KeyDailyGoalMinutes:        "Daily goal (min)",
	config.KeyAlarmSound:              "Alarm sound",
}

type settingsModel struct {
	store  *store.Store
	ctrl   *focus.Controller
	cfg    config.Config
	width  int
	height int

	settings   map[string]string
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	values map[string]*string
}

func newSettingsModel(s *store.Store, c *focus.Controller, cfg config.Config) settingsModel {
	values := make(map[string]*string, len(config.SettingKeys))
	for _, k := range config.SettingKeys {
		v := ""
		values[k] = &v
	}
	return settingsModel{
		store:  s,
		ctrl:   c,
		cfg:    cfg,
		values: values,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings map[string]string
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.Settings()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func validator(k string) func(string) error {
	return func(v string) error {
		_, err := config.ParseSetting(k, v)
		return err
	}
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	current := s.cfg.Settings()
	for _, k := range config.SettingKeys {
		*s.values[k] = current[k]
	}

	alarmOptions := make([]huh.Option[string], len(config.AlarmSounds))
	for i, a := range config.AlarmSounds {
		alarmOptions[i] = huh.NewOption(a, a)
	}

	input := func(k string) *huh.Input {
		return huh.NewInput().Title(settingLabels[k]).Value(s.values[k]).Validate(validator(k))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			input(config.KeyWorkDuration),
			input(config.KeyBreakDuration),
			input(config.KeyLongBreakDuration),
			input(config.KeySessionsBeforeLongBreak),
		).Title("Timer"),
		huh.NewGroup(
			input(config.KeyDailyGoalMinutes),
			huh.NewSelect[string]().Title(settingLabels[config.KeyAlarmSound]).
				Options(alarmOptions...).
				Value(s.values[config.KeyAlarmSound]),
		).Title("Goal"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		next, err := s.save()
		if err != nil {
			return s, tea.Batch(s.refresh(), statusCmd(fmt.Sprintf("Error: %v", err), true))
		}
		s.cfg = next
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return settingsSavedMsg{} },
		)
	}

	return s, cmd
}

// save validates and stores every field, then stages the new durations on
// the engine. A changed daily goal also becomes today's target.
func (s settingsModel) save() (config.Config, error) {
	entered := make(map[string]string, len(s.values))
	for _, k := range config.SettingKeys {
		v, err := config.ParseSetting(k, *s.values[k])
		if err != nil {
			return s.cfg, err
		}
		entered[k] = v
	}

	previous := s.cfg.Settings()
	for _, k := range config.SettingKeys {
		if k == config.KeyDailyGoalMinutes {
			continue
		}
		if err := s.store.SetSetting(k, entered[k]); err != nil {
			return s.cfg, err
		}
	}
	if entered[config.KeyDailyGoalMinutes] != previous[config.KeyDailyGoalMinutes] {
		minutes, _ := strconv.Atoi(entered[config.KeyDailyGoalMinutes])
		if err := s.store.SetGoalTarget(minutes, ""); err != nil {
			return s.cfg, err
		}
	}

	next := s.cfg
	next.ApplySettings(entered)
	if err := s.ctrl.ApplyConfig(next); err != nil {
		return s.cfg, err
	}
	return next, nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings. Timer changes apply from the next session.")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, k := range config.SettingKeys {
		v, ok := s.settings[k]
		if !ok {
			continue
		}
		label := lipgloss.NewStyle().Width(30).Render(settingLabels[k])
		value := highlightStyle.Render(formatSettingValue(k, v))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case config.KeyWorkDuration, config.KeyBreakDuration, config.KeyLongBreakDuration, config.KeyDailyGoalMinutes:
		if mins, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d min", mins)
		}
	}
	return v
}
