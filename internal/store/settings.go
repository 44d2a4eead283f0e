package store

import (
	"database/sql"
	"errors"
	"fmt"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

// GetSettingOr returns def when key is not stored.
func (s *Store) GetSettingOr(key, def string) (string, error) {
	v, err := s.GetSetting(key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return v, err
}

func (s *Store) SetSetting(key, value string) error {
	if key == "" {
		return fmt.Errorf("set setting: empty key: %w", ErrInvalid)
	}
	return setSetting(s.db, key, value)
}

func setSetting(q querier, key, value string) error {
	_, err := q.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Settings returns every stored setting keyed by name.
func (s *Store) Settings() (map[string]string, error) {
	all, err := s.GetAllSettings()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(all))
	for _, st := range all {
		m[st.Key] = st.Value
	}
	return m, nil
}

// PutSettings writes every pair in one transaction.
func (s *Store) PutSettings(values map[string]string) error {
	return s.withTx(func(tx *sql.Tx) error {
		for key, value := range values {
			if key == "" {
				return fmt.Errorf("put settings: empty key: %w", ErrInvalid)
			}
			if err := setSetting(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}
