package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// SettingRoot names the setting holding the database root path.
const SettingRoot = "database-root"

// ErrSettingNotFound indicates a setting has never been written.
var ErrSettingNotFound = errors.New("setting not found")

// SettingStore reads and writes named settings.
type SettingStore struct {
	q querier
}

// Get returns the value of the named setting.
func (s *SettingStore) Get(name string) (string, error) {
	var value string
	err := s.q.QueryRow(`SELECT value FROM setting WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", name, ErrSettingNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", name, err)
	}
	return value, nil
}

// Set creates or replaces the named setting.
func (s *SettingStore) Set(name, value string) error {
	_, err := s.q.Exec(`
		INSERT INTO setting (name, value)
		VALUES (?1, ?2)
		ON CONFLICT (name) DO UPDATE SET value = ?2`, name, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", name, err)
	}
	return nil
}
