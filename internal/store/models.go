package store

import "time"

// SessionKind tells work sessions from breaks.
type SessionKind string

const (
	SessionWork  SessionKind = "work"
	SessionBreak SessionKind = "break"
)

func (k SessionKind) Valid() bool {
	return k == SessionWork || k == SessionBreak
}

type Task struct {
	ID                int64
	Name              string
	Completed         bool
	CreatedAt         time.Time
	CompletedAt       *time.Time
	TotalFocusSeconds int64
}

type Session struct {
	ID              int64
	TaskID          *int64
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds int64
	Kind            SessionKind
	Completed       bool
}

// Open reports whether the session has not been closed yet.
func (s Session) Open() bool {
	return s.EndTime == nil
}

// DailyAggregate is the per-date rollup kept in daily_stats.
type DailyAggregate struct {
	Date              string
	TotalFocusSeconds int64
	SessionsCompleted int
	TasksCompleted    int
}

// Totals sums every daily aggregate.
type Totals struct {
	FocusSeconds int64
	Sessions     int
	Tasks        int
}

// DefaultGoalMinutes is used when no daily_goal_minutes setting is stored.
const DefaultGoalMinutes = 120

type DailyGoal struct {
	Date            string
	TargetMinutes   int
	AchievedMinutes int
}

// Progress is achieved/target clamped to [0, 1].
func (g DailyGoal) Progress() float64 {
	if g.TargetMinutes <= 0 {
		return 0
	}
	p := float64(g.AchievedMinutes) / float64(g.TargetMinutes)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (g DailyGoal) Achieved() bool {
	return g.AchievedMinutes >= g.TargetMinutes
}

type Setting struct {
	Key   string
	Value string
}

// SessionFilter is used to filter sessions in queries.
type SessionFilter struct {
	TaskID *int64
	Kind   SessionKind
	From   *time.Time
	To     *time.Time
	Limit  int
}
