package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const sessionColumns = `id, task_id, start_time, end_time, duration_seconds, kind, completed`

func scanSession(row rowScanner) (Session, error) {
	var sess Session
	var startTime string
	var endTime sql.NullString
	var taskID sql.NullInt64
	var kind string
	var completed int
	if err := row.Scan(&sess.ID, &taskID, &startTime, &endTime, &sess.DurationSeconds, &kind, &completed); err != nil {
		return Session{}, err
	}
	if taskID.Valid {
		id := taskID.Int64
		sess.TaskID = &id
	}
	sess.StartTime, _ = time.Parse(time.RFC3339, startTime)
	if endTime.Valid {
		t, _ := time.Parse(time.RFC3339, endTime.String)
		sess.EndTime = &t
	}
	sess.Kind = SessionKind(kind)
	sess.Completed = completed == 1
	return sess, nil
}

// StartSession opens a session of the given kind, optionally bound to a task.
func (s *Store) StartSession(taskID *int64, kind SessionKind) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("start session: kind %q: %w", kind, ErrInvalid)
	}
	if taskID != nil {
		if _, err := s.GetTask(*taskID); err != nil {
			return 0, fmt.Errorf("start session: %w", err)
		}
	}
	res, err := s.db.Exec(
		`INSERT INTO sessions (task_id, start_time, kind) VALUES (?, ?, ?)`,
		taskID, s.stamp(), string(kind),
	)
	if err != nil {
		return 0, fmt.Errorf("start session: %w", err)
	}
	return res.LastInsertId()
}

// EndSession closes a session. For work sessions the duration is added to
// the task total and to today's aggregate, and a completed session bumps
// today's session counter. All writes happen in one transaction.
//
// Ending the same session twice counts it twice.
func (s *Store) EndSession(id int64, durationSeconds int64, completed bool) error {
	if durationSeconds < 0 {
		return fmt.Errorf("end session %d: negative duration: %w", id, ErrInvalid)
	}
	return s.withTx(func(tx *sql.Tx) error {
		var taskID sql.NullInt64
		var kind string
		err := tx.QueryRow(`SELECT task_id, kind FROM sessions WHERE id = ?`, id).Scan(&taskID, &kind)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("end session %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("end session %d: %w", id, err)
		}

		done := 0
		if completed {
			done = 1
		}
		if _, err := tx.Exec(
			`UPDATE sessions SET end_time = ?, duration_seconds = ?, completed = ? WHERE id = ?`,
			s.stamp(), durationSeconds, done, id,
		); err != nil {
			return fmt.Errorf("end session %d: %w", id, err)
		}

		if SessionKind(kind) != SessionWork {
			return nil
		}
		if taskID.Valid {
			if _, err := tx.Exec(
				`UPDATE tasks SET total_focus_seconds = total_focus_seconds + ? WHERE id = ?`,
				durationSeconds, taskID.Int64,
			); err != nil {
				return fmt.Errorf("end session %d: credit task: %w", id, err)
			}
		}
		return bumpAggregate(tx, s.Today(), durationSeconds, done, 0)
	})
}

func (s *Store) GetSession(id int64) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get session %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return &sess, nil
}

// OpenSession returns the most recent session without an end time, or nil.
func (s *Store) OpenSession() (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		`SELECT ` + sessionColumns + ` FROM sessions WHERE end_time IS NULL ORDER BY id DESC LIMIT 1`,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get open session: %w", err)
	}
	return &sess, nil
}

// SessionsForTask returns a task's sessions, newest first.
func (s *Store) SessionsForTask(taskID int64) ([]Session, error) {
	return s.ListSessions(SessionFilter{TaskID: &taskID})
}

func (s *Store) ListSessions(f SessionFilter) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE 1=1`
	var args []any

	if f.TaskID != nil {
		query += ` AND task_id = ?`
		args = append(args, *f.TaskID)
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(f.Kind))
	}
	if f.From != nil {
		query += ` AND start_time >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		query += ` AND start_time < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	query += ` ORDER BY start_time DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}
