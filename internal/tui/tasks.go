package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focus/internal/focus"
	"github.com/sadopc/focus/internal/store"
)

type tasksModel struct {
	store  *store.Store
	ctrl   *focus.Controller
	width  int
	height int

	tasks    []store.Task
	cursor   int
	showDone bool

	formActive bool
	form       *huh.Form
	formType   string // "new", "rename", "time"

	// Form field pointers (survive value copies)
	formName    *string
	formMinutes *string

	editingID int64
}

func newTasksModel(s *store.Store, c *focus.Controller) tasksModel {
	name, minutes := "", ""
	return tasksModel{
		store:       s,
		ctrl:        c,
		formName:    &name,
		formMinutes: &minutes,
	}
}

func (p *tasksModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type tasksDataMsg struct {
	tasks []store.Task
}

func (p tasksModel) refresh() tea.Cmd {
	showDone := p.showDone
	return func() tea.Msg {
		tasks, err := p.store.ListTasks(showDone)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return tasksDataMsg{tasks: tasks}
	}
}

func (p tasksModel) selectedID() int64 {
	if id := p.ctrl.Engine().TaskID(); id != nil {
		return *id
	}
	return 0
}

func (p tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		p.tasks = msg.tasks
		if p.cursor >= len(p.tasks) {
			p.cursor = max(0, len(p.tasks)-1)
		}
		return p, nil

	case tea.KeyMsg:
		return p.updateList(msg)
	}
	return p, nil
}

func (p tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.tasks)-1 {
			p.cursor++
		}
	case key.Matches(msg, keys.New):
		return p.showNameForm("new", "")
	case key.Matches(msg, keys.ShowDone):
		p.showDone = !p.showDone
		return p, p.refresh()
	}

	if len(p.tasks) == 0 {
		return p, nil
	}
	task := p.tasks[p.cursor]

	switch {
	case key.Matches(msg, keys.Enter):
		return p.toggleSelection(task)
	case key.Matches(msg, keys.Rename):
		p.editingID = task.ID
		return p.showNameForm("rename", task.Name)
	case key.Matches(msg, keys.AddTime):
		p.editingID = task.ID
		return p.showTimeForm()
	case key.Matches(msg, keys.Done):
		var err error
		text := "Completed " + task.Name
		if task.Completed {
			err = p.store.UncompleteTask(task.ID)
			text = "Reopened " + task.Name
		} else {
			err = p.store.CompleteTask(task.ID)
		}
		if err != nil {
			return p, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		return p, tea.Batch(p.refresh(), statusCmd(text, false))
	case key.Matches(msg, keys.Delete):
		if err := p.store.DeleteTask(task.ID); err != nil {
			return p, statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		cmds := []tea.Cmd{p.refresh(), statusCmd("Deleted "+task.Name, false)}
		if p.selectedID() == task.ID {
			p.ctrl.SelectTask(nil)
			cmds = append(cmds, func() tea.Msg { return taskSelectedMsg{} })
		}
		return p, tea.Batch(cmds...)
	}
	return p, nil
}

func (p tasksModel) toggleSelection(task store.Task) (tasksModel, tea.Cmd) {
	if p.selectedID() == task.ID {
		p.ctrl.SelectTask(nil)
		return p, func() tea.Msg { return taskSelectedMsg{} }
	}
	id := task.ID
	p.ctrl.SelectTask(&id)
	return p, func() tea.Msg { return taskSelectedMsg{task: &task} }
}

func (p tasksModel) showNameForm(formType, initial string) (tasksModel, tea.Cmd) {
	*p.formName = initial
	p.formType = formType

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Name").Value(p.formName).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p tasksModel) showTimeForm() (tasksModel, tea.Cmd) {
	*p.formMinutes = ""
	p.formType = "time"

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Adjust focus time (minutes)").
				Description("Negative values subtract.").
				Value(p.formMinutes).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return errors.New("enter a whole number of minutes")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	p.formActive = false
	var err error
	switch p.formType {
	case "new":
		_, err = p.store.CreateTask(*p.formName)
	case "rename":
		err = p.store.RenameTask(p.editingID, *p.formName)
	case "time":
		minutes, _ := strconv.Atoi(strings.TrimSpace(*p.formMinutes))
		err = p.store.AddFocusTime(p.editingID, int64(minutes)*60)
	}
	if err != nil {
		return p, tea.Batch(p.refresh(), statusCmd(fmt.Sprintf("Error: %v", err), true))
	}
	return p, p.refresh()
}

func (p tasksModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("New Task")
		switch p.formType {
		case "rename":
			title = titleStyle.Render("Rename Task")
		case "time":
			title = titleStyle.Render("Adjust Focus Time")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}
	return p.renderList()
}

func (p tasksModel) renderList() string {
	w := p.width - 4
	title := titleStyle.Render("Tasks")
	if p.showDone {
		title += mutedStyle.Render("  (including done)")
	}

	if len(p.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-32s %10s", "", "Name", "Focus"))
	rows = append(rows, header)

	selected := p.selectedID()
	for i, task := range p.tasks {
		cursor := "  "
		style := normalItemStyle
		if task.Completed {
			style = doneItemStyle
		}
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		marker := " "
		switch {
		case task.ID == selected:
			marker = accentStyle.Render("●")
		case task.Completed:
			marker = successStyle.Render("✓")
		}
		row := fmt.Sprintf("%s%s %s %10s", cursor, marker, style.Width(32).Render(task.Name), formatSeconds(task.TotalFocusSeconds))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: focus on  n: new  m: rename  c: complete  t: adjust time  d: delete  a: show done"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}
