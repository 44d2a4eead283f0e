package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// DateLayout is the key format of daily aggregates and goals.
const DateLayout = "2006-01-02"

type Store struct {
	db *sql.DB

	// mu serializes every transaction that touches daily_stats or
	// daily_goals so two writers never interleave on the same date.
	mu  sync.Mutex
	now func() time.Time
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SetClock replaces the time source used for timestamps and for "today".
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the current local date key.
func (s *Store) Today() string {
	return s.now().Format(DateLayout)
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// withTx runs fn inside a transaction. Any error rolls back every write
// fn made.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS tasks (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		name                TEXT NOT NULL,
		completed           INTEGER NOT NULL DEFAULT 0,
		created_at          TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		completed_at        TEXT,
		total_focus_seconds INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id          INTEGER REFERENCES tasks(id) ON DELETE CASCADE,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		kind             TEXT NOT NULL DEFAULT 'work' CHECK (kind IN ('work', 'break')),
		completed        INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_task  ON sessions(task_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time);

	CREATE TABLE IF NOT EXISTS daily_stats (
		date                TEXT PRIMARY KEY,
		total_focus_seconds INTEGER NOT NULL DEFAULT 0,
		sessions_completed  INTEGER NOT NULL DEFAULT 0,
		tasks_completed     INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS daily_goals (
		date             TEXT PRIMARY KEY,
		target_minutes   INTEGER NOT NULL DEFAULT 120,
		achieved_minutes INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('work_duration',              '25'),
		('break_duration',             '5'),
		('long_break_duration',        '15'),
		('sessions_before_long_break', '4'),
		('alarm_sound',                'chime'),
		('daily_goal_minutes',         '120');
	`
	_, err := s.db.Exec(ddl)
	return err
}
