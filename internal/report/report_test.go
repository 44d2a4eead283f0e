package report

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/focus/internal/store"
)

func sampleSummary() Summary {
	return Summary{
		Days: []store.DailyAggregate{
			{Date: "2026-03-01"},
			{Date: "2026-03-02", TotalFocusSeconds: 3000, SessionsCompleted: 2, TasksCompleted: 1},
			{Date: "2026-03-03", TotalFocusSeconds: 4500, SessionsCompleted: 3},
		},
		Totals: store.Totals{FocusSeconds: 9000, Sessions: 6, Tasks: 2},
		Goal:   store.DailyGoal{Date: "2026-03-03", TargetMinutes: 60, AchievedMinutes: 75},
		Streak: 2,
	}
}

func TestPeriod(t *testing.T) {
	p := sampleSummary().Period()
	if p.FocusSeconds != 7500 || p.Sessions != 5 || p.Tasks != 1 {
		t.Fatalf("period = %+v", p)
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "0m"},
		{59, "0m"},
		{1500, "25m"},
		{3600, "1h00m"},
		{4500, "1h15m"},
	}
	for _, tt := range tests {
		if got := Minutes(tt.secs); got != tt.want {
			t.Errorf("Minutes(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	out := sampleSummary().Text()
	for _, want := range []string{"2026-03-02", "50m", "Total", "2h05m", "Goal today: 75/60 min (100%)", "Streak: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("text missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown(t *testing.T) {
	md := sampleSummary().Markdown()
	for _, want := range []string{
		"# Focus report",
		"Last 3 days.",
		"| 2026-03-03 | 1h15m | 3 | 0 |",
		"| **Total** | **2h05m** | **5** | **1** |",
		"- Goal: 75 of 60 minutes ✓",
		"- Streak: 2 days",
		"- 2h30m focused",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdownSingularStreak(t *testing.T) {
	s := sampleSummary()
	s.Streak = 1
	if !strings.Contains(s.Markdown(), "- Streak: 1 day\n") {
		t.Fatal("one day streak should be singular")
	}
}

func TestRender(t *testing.T) {
	if Render("   ") != "" {
		t.Fatal("blank markdown should render empty")
	}
	out := ansi.Strip(Render(sampleSummary().Markdown()))
	if !strings.Contains(out, "Focus report") {
		t.Fatalf("rendered output lost the heading:\n%s", out)
	}
}

func TestLoadFromStore(t *testing.T) {
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	id, _ := s.StartSession(nil, store.SessionWork)
	if err := s.EndSession(id, 1800, true); err != nil {
		t.Fatal(err)
	}
	if err := s.AddAchievedMinutes(30, ""); err != nil {
		t.Fatal(err)
	}

	sum, err := Load(s, 7)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sum.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(sum.Days))
	}
	if sum.Period().FocusSeconds != 1800 {
		t.Fatalf("period focus = %d", sum.Period().FocusSeconds)
	}
	if sum.Goal.AchievedMinutes != 30 || sum.Goal.TargetMinutes != store.DefaultGoalMinutes {
		t.Fatalf("goal = %+v", sum.Goal)
	}
	if sum.Streak != 0 {
		t.Fatalf("streak = %d, want 0", sum.Streak)
	}

	if _, err := Load(s, 0); err == nil {
		t.Fatal("expected error for empty window")
	}
}
