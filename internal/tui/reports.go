package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focus/internal/store"
)

type reportMode int

const (
	reportWeek reportMode = iota
	reportMonth
)

func (m reportMode) days() int {
	if m == reportMonth {
		return 30
	}
	return 7
}

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	mode   reportMode
	days   []store.DailyAggregate
	totals store.Totals

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	days   []store.DailyAggregate
	totals store.Totals
}

func (r reportsModel) refresh() tea.Cmd {
	n := r.mode.days()
	return func() tea.Msg {
		days, err := r.store.DailyAggregates(n)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		totals, err := r.store.TotalAggregates()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return reportsDataMsg{days: days, totals: totals}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.days = msg.days
		r.totals = msg.totals
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if r.mode != reportWeek {
				r.mode = reportWeek
				return r, r.refresh()
			}
		case key.Matches(msg, keys.Right):
			if r.mode != reportMonth {
				r.mode = reportMonth
				return r, r.refresh()
			}
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := max(r.width-8, 20)
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	focusStyle := lipgloss.NewStyle().Foreground(colorFocus)
	var bars []barchart.BarData
	for _, agg := range r.days {
		d, err := time.ParseInLocation(store.DateLayout, agg.Date, time.Local)
		if err != nil {
			continue
		}
		label := d.Format("Mon")
		if r.mode == reportMonth {
			label = d.Format("02")
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: float64(agg.TotalFocusSeconds) / 60.0,
				Style: focusStyle,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	weekTab := inactiveTabStyle.Render("7 days")
	monthTab := inactiveTabStyle.Render("30 days")
	if r.mode == reportWeek {
		weekTab = activeTabStyle.Render("7 days")
	} else {
		monthTab = activeTabStyle.Render("30 days")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, weekTab, monthTab)

	dateLabel := ""
	if len(r.days) > 0 {
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s to %s", r.days[0].Date, r.days[len(r.days)-1].Date))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	chartView := mutedStyle.Render("  focus minutes per day") + "\n" + r.chart.View()

	nav := mutedStyle.Render("  ←/→: 7 or 30 days")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", r.renderPeriodSummary(), "", r.renderTable(w), "", r.renderTotals(), "", nav,
		),
	)
}

func (r reportsModel) renderPeriodSummary() string {
	var focus int64
	var sessions, tasks, active int
	for _, d := range r.days {
		focus += d.TotalFocusSeconds
		sessions += d.SessionsCompleted
		tasks += d.TasksCompleted
		if d.TotalFocusSeconds > 0 {
			active++
		}
	}
	avg := int64(0)
	if len(r.days) > 0 {
		avg = focus / int64(len(r.days))
	}
	return fmt.Sprintf("  Period  %s focused  %d sessions  %d tasks  %d/%d active days  avg %s/day",
		highlightStyle.Render(formatHours(focus)), sessions, tasks, active, len(r.days), formatHours(avg))
}

// renderTable lists only days with activity to keep the 30-day view short.
func (r reportsModel) renderTable(w int) string {
	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %9s %6s", "Date", "Focus", "Sessions", "Tasks"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", max(min(w-6, 40), 0))))

	for i := len(r.days) - 1; i >= 0; i-- {
		d := r.days[i]
		if d.TotalFocusSeconds == 0 && d.SessionsCompleted == 0 && d.TasksCompleted == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-12s %10s %9d %6d",
			d.Date, formatSeconds(d.TotalFocusSeconds), d.SessionsCompleted, d.TasksCompleted,
		))
	}
	if len(rows) == 2 {
		return mutedStyle.Render("  No data for this period")
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderTotals() string {
	return fmt.Sprintf("  All time  %s focused  %d sessions  %d tasks",
		highlightStyle.Render(formatHours(r.totals.FocusSeconds)), r.totals.Sessions, r.totals.Tasks)
}
