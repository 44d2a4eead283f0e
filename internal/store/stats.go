package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func getAggregate(q querier, date string) (DailyAggregate, bool, error) {
	agg := DailyAggregate{Date: date}
	err := q.QueryRow(
		`SELECT total_focus_seconds, sessions_completed, tasks_completed FROM daily_stats WHERE date = ?`, date,
	).Scan(&agg.TotalFocusSeconds, &agg.SessionsCompleted, &agg.TasksCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return agg, false, nil
	}
	if err != nil {
		return agg, false, fmt.Errorf("get aggregate %s: %w", date, err)
	}
	return agg, true, nil
}

// bumpAggregate adds the deltas to the row for date, creating it when
// missing. Callers hold the store's write lock.
func bumpAggregate(q querier, date string, focusSeconds int64, sessions, tasks int) error {
	agg, ok, err := getAggregate(q, date)
	if err != nil {
		return err
	}
	agg.TotalFocusSeconds += focusSeconds
	agg.SessionsCompleted += sessions
	agg.TasksCompleted += tasks

	if ok {
		_, err = q.Exec(
			`UPDATE daily_stats SET total_focus_seconds = ?, sessions_completed = ?, tasks_completed = ? WHERE date = ?`,
			agg.TotalFocusSeconds, agg.SessionsCompleted, agg.TasksCompleted, date,
		)
	} else {
		_, err = q.Exec(
			`INSERT INTO daily_stats (date, total_focus_seconds, sessions_completed, tasks_completed) VALUES (?, ?, ?, ?)`,
			date, agg.TotalFocusSeconds, agg.SessionsCompleted, agg.TasksCompleted,
		)
	}
	if err != nil {
		return fmt.Errorf("update aggregate %s: %w", date, err)
	}
	return nil
}

// DailyAggregates returns exactly days entries ending today, oldest first.
// Dates without activity are zero-filled.
func (s *Store) DailyAggregates(days int) ([]DailyAggregate, error) {
	if days <= 0 {
		return nil, fmt.Errorf("daily aggregates: days %d: %w", days, ErrInvalid)
	}
	now := s.now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := s.db.Query(
		`SELECT date, total_focus_seconds, sessions_completed, tasks_completed
		 FROM daily_stats WHERE date >= ? AND date <= ?`,
		start.Format(DateLayout), end.Format(DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("daily aggregates: %w", err)
	}
	defer rows.Close()

	byDate := make(map[string]DailyAggregate)
	for rows.Next() {
		var agg DailyAggregate
		if err := rows.Scan(&agg.Date, &agg.TotalFocusSeconds, &agg.SessionsCompleted, &agg.TasksCompleted); err != nil {
			return nil, err
		}
		byDate[agg.Date] = agg
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]DailyAggregate, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		agg, ok := byDate[key]
		if !ok {
			agg = DailyAggregate{Date: key}
		}
		out = append(out, agg)
	}
	return out, nil
}

// TodayAggregate returns today's rollup, zero-valued if nothing was recorded.
func (s *Store) TodayAggregate() (DailyAggregate, error) {
	agg, _, err := getAggregate(s.db, s.Today())
	return agg, err
}

// TotalAggregates sums every recorded day.
func (s *Store) TotalAggregates() (Totals, error) {
	var t Totals
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(total_focus_seconds), 0),
		       COALESCE(SUM(sessions_completed), 0),
		       COALESCE(SUM(tasks_completed), 0)
		FROM daily_stats`,
	).Scan(&t.FocusSeconds, &t.Sessions, &t.Tasks)
	if err != nil {
		return Totals{}, fmt.Errorf("total aggregates: %w", err)
	}
	return t, nil
}
