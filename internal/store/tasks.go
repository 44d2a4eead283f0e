package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const taskColumns = `id, name, completed, created_at, completed_at, total_focus_seconds`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var t Task
	var createdAt string
	var completedAt sql.NullString
	var completed int
	if err := row.Scan(&t.ID, &t.Name, &completed, &createdAt, &completedAt, &t.TotalFocusSeconds); err != nil {
		return Task{}, err
	}
	t.Completed = completed == 1
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if completedAt.Valid {
		ts, _ := time.Parse(time.RFC3339, completedAt.String)
		t.CompletedAt = &ts
	}
	return t, nil
}

func (s *Store) CreateTask(name string) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create task: empty name: %w", ErrInvalid)
	}
	res, err := s.db.Exec(
		`INSERT INTO tasks (name, created_at) VALUES (?, ?)`,
		name, s.stamp(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTask(id)
}

func (s *Store) GetTask(id int64) (*Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %d: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns incomplete tasks first, then newest first within
// each group.
func (s *Store) ListTasks(includeCompleted bool) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	if !includeCompleted {
		query += ` WHERE completed = 0`
	}
	query += ` ORDER BY completed ASC, created_at DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) RenameTask(id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rename task %d: empty name: %w", id, ErrInvalid)
	}
	res, err := s.db.Exec(`UPDATE tasks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename task %d: %w", id, err)
	}
	return checkRowsAffected(res, "rename task", id)
}

// DeleteTask removes a task together with its sessions. Daily aggregates
// are left untouched.
func (s *Store) DeleteTask(id int64) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return checkRowsAffected(res, "delete task", id)
}

// CompleteTask marks a task done and counts it in today's aggregate.
func (s *Store) CompleteTask(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`UPDATE tasks SET completed = 1, completed_at = ? WHERE id = ?`,
			s.stamp(), id,
		)
		if err != nil {
			return fmt.Errorf("complete task %d: %w", id, err)
		}
		if err := checkRowsAffected(res, "complete task", id); err != nil {
			return err
		}
		return bumpAggregate(tx, s.Today(), 0, 0, 1)
	})
}

// UncompleteTask clears the completion flag. The daily tasks counter is
// not decremented.
func (s *Store) UncompleteTask(id int64) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET completed = 0, completed_at = NULL WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("uncomplete task %d: %w", id, err)
	}
	return checkRowsAffected(res, "uncomplete task", id)
}

// AddFocusTime adjusts a task's accumulated focus time without touching
// sessions or aggregates. The total never drops below zero.
func (s *Store) AddFocusTime(id int64, seconds int64) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET total_focus_seconds = MAX(total_focus_seconds + ?, 0) WHERE id = ?`,
		seconds, id,
	)
	if err != nil {
		return fmt.Errorf("add focus time to task %d: %w", id, err)
	}
	return checkRowsAffected(res, "add focus time to task", id)
}

func checkRowsAffected(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, ErrNotFound)
	}
	return nil
}
