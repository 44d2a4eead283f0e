package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// GoalSettingKey holds the default daily target in minutes.
const GoalSettingKey = "daily_goal_minutes"

// resolveDate maps "" to today and validates anything else.
func (s *Store) resolveDate(date string) (string, error) {
	if date == "" {
		return s.Today(), nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", fmt.Errorf("date %q: %w", date, ErrInvalid)
	}
	return date, nil
}

func defaultGoalTarget(q querier) int {
	var v string
	if err := q.QueryRow(`SELECT value FROM settings WHERE key = ?`, GoalSettingKey).Scan(&v); err != nil {
		return DefaultGoalMinutes
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultGoalMinutes
	}
	return n
}

func getGoal(q querier, date string) (DailyGoal, bool, error) {
	g := DailyGoal{Date: date}
	err := q.QueryRow(
		`SELECT target_minutes, achieved_minutes FROM daily_goals WHERE date = ?`, date,
	).Scan(&g.TargetMinutes, &g.AchievedMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		g.TargetMinutes = defaultGoalTarget(q)
		return g, false, nil
	}
	if err != nil {
		return g, false, fmt.Errorf("get goal %s: %w", date, err)
	}
	return g, true, nil
}

func putGoal(q querier, g DailyGoal) error {
	_, err := q.Exec(
		`INSERT INTO daily_goals (date, target_minutes, achieved_minutes) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET target_minutes = excluded.target_minutes,
		                                 achieved_minutes = excluded.achieved_minutes`,
		g.Date, g.TargetMinutes, g.AchievedMinutes,
	)
	if err != nil {
		return fmt.Errorf("save goal %s: %w", g.Date, err)
	}
	return nil
}

// GetDailyGoal returns the goal for date ("" for today). A date with no
// stored row yields the default target and zero achieved minutes.
func (s *Store) GetDailyGoal(date string) (DailyGoal, error) {
	d, err := s.resolveDate(date)
	if err != nil {
		return DailyGoal{}, fmt.Errorf("get daily goal: %w", err)
	}
	g, _, err := getGoal(s.db, d)
	return g, err
}

// SetGoalTarget sets the target for date and makes it the default for
// future dates.
func (s *Store) SetGoalTarget(minutes int, date string) error {
	if minutes <= 0 {
		return fmt.Errorf("set goal target: %d minutes: %w", minutes, ErrInvalid)
	}
	d, err := s.resolveDate(date)
	if err != nil {
		return fmt.Errorf("set goal target: %w", err)
	}
	return s.withTx(func(tx *sql.Tx) error {
		g, _, err := getGoal(tx, d)
		if err != nil {
			return err
		}
		g.TargetMinutes = minutes
		if err := putGoal(tx, g); err != nil {
			return err
		}
		return setSetting(tx, GoalSettingKey, strconv.Itoa(minutes))
	})
}

// AddAchievedMinutes credits minutes to date's goal, creating the row with
// the default target when needed.
func (s *Store) AddAchievedMinutes(minutes int, date string) error {
	if minutes < 0 {
		return fmt.Errorf("add achieved minutes: %d: %w", minutes, ErrInvalid)
	}
	d, err := s.resolveDate(date)
	if err != nil {
		return fmt.Errorf("add achieved minutes: %w", err)
	}
	return s.withTx(func(tx *sql.Tx) error {
		g, _, err := getGoal(tx, d)
		if err != nil {
			return err
		}
		g.AchievedMinutes += minutes
		return putGoal(tx, g)
	})
}

// Streak counts consecutive achieved days ending today. An unmet today
// does not break the streak; the count then starts from yesterday.
func (s *Store) Streak() (int, error) {
	rows, err := s.db.Query(`SELECT date, target_minutes, achieved_minutes FROM daily_goals`)
	if err != nil {
		return 0, fmt.Errorf("streak: %w", err)
	}
	defer rows.Close()

	goals := make(map[string]DailyGoal)
	for rows.Next() {
		var g DailyGoal
		if err := rows.Scan(&g.Date, &g.TargetMinutes, &g.AchievedMinutes); err != nil {
			return 0, err
		}
		goals[g.Date] = g
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return countStreak(s.now(), goals), nil
}

func countStreak(today time.Time, goals map[string]DailyGoal) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, today.Location())
	streak := 0
	graced := false
	for {
		g, ok := goals[day.Format(DateLayout)]
		if ok && g.Achieved() {
			streak++
			day = day.AddDate(0, 0, -1)
			continue
		}
		if !graced && streak == 0 {
			graced = true
			day = day.AddDate(0, 0, -1)
			continue
		}
		return streak
	}
}
