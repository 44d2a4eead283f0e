// Package report builds the plain-text and markdown summaries printed by
// the stats command.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/sadopc/focus/internal/store"
)

// Source is what a summary reads from.
type Source interface {
	DailyAggregates(days int) ([]store.DailyAggregate, error)
	TotalAggregates() (store.Totals, error)
	GetDailyGoal(date string) (store.DailyGoal, error)
	Streak() (int, error)
}

// Summary is a window of daily aggregates plus today's goal and streak.
type Summary struct {
	Days   []store.DailyAggregate
	Totals store.Totals
	Goal   store.DailyGoal
	Streak int
}

// Load reads the last days aggregates and the goal state.
func Load(src Source, days int) (Summary, error) {
	aggs, err := src.DailyAggregates(days)
	if err != nil {
		return Summary{}, fmt.Errorf("load summary: %w", err)
	}
	totals, err := src.TotalAggregates()
	if err != nil {
		return Summary{}, fmt.Errorf("load summary: %w", err)
	}
	goal, err := src.GetDailyGoal("")
	if err != nil {
		return Summary{}, fmt.Errorf("load summary: %w", err)
	}
	streak, err := src.Streak()
	if err != nil {
		return Summary{}, fmt.Errorf("load summary: %w", err)
	}
	return Summary{Days: aggs, Totals: totals, Goal: goal, Streak: streak}, nil
}

// Period sums the window.
func (s Summary) Period() store.Totals {
	var t store.Totals
	for _, d := range s.Days {
		t.FocusSeconds += d.TotalFocusSeconds
		t.Sessions += d.SessionsCompleted
		t.Tasks += d.TasksCompleted
	}
	return t
}

// Text is the plain table printed by default.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %8s %9s %6s\n", "Date", "Focus", "Sessions", "Tasks")
	for _, d := range s.Days {
		fmt.Fprintf(&b, "%-12s %8s %9d %6d\n", d.Date, Minutes(d.TotalFocusSeconds), d.SessionsCompleted, d.TasksCompleted)
	}
	p := s.Period()
	fmt.Fprintf(&b, "%-12s %8s %9d %6d\n", "Total", Minutes(p.FocusSeconds), p.Sessions, p.Tasks)
	fmt.Fprintf(&b, "\nGoal today: %d/%d min (%.0f%%)\n", s.Goal.AchievedMinutes, s.Goal.TargetMinutes, s.Goal.Progress()*100)
	fmt.Fprintf(&b, "Streak: %d\n", s.Streak)
	return b.String()
}

// Markdown renders the summary as a markdown document.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("# Focus report\n\n")
	fmt.Fprintf(&b, "Last %d days.\n\n", len(s.Days))

	b.WriteString("| Date | Focus | Sessions | Tasks |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, d := range s.Days {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", d.Date, Minutes(d.TotalFocusSeconds), d.SessionsCompleted, d.TasksCompleted)
	}
	p := s.Period()
	fmt.Fprintf(&b, "| **Total** | **%s** | **%d** | **%d** |\n\n", Minutes(p.FocusSeconds), p.Sessions, p.Tasks)

	b.WriteString("## Today\n\n")
	check := ""
	if s.Goal.Achieved() {
		check = " ✓"
	}
	fmt.Fprintf(&b, "- Goal: %d of %d minutes%s\n", s.Goal.AchievedMinutes, s.Goal.TargetMinutes, check)
	fmt.Fprintf(&b, "- Streak: %d %s\n\n", s.Streak, plural(s.Streak, "day", "days"))

	b.WriteString("## All time\n\n")
	fmt.Fprintf(&b, "- %s focused\n- %d sessions\n- %d tasks completed\n",
		Minutes(s.Totals.FocusSeconds), s.Totals.Sessions, s.Totals.Tasks)
	return b.String()
}

// Render styles markdown for the terminal. It falls back to the raw text
// when glamour fails.
func Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Minutes formats seconds as whole minutes, or hours and minutes past an hour.
func Minutes(secs int64) string {
	m := secs / 60
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
