package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// CurrentSchemaVersion is the version reached after all migrations.
const CurrentSchemaVersion = 2

// MigrationError reports a failed schema migration.
type MigrationError struct {
	Version int
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("schema migration %d failed: %v", e.Version, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

type migration struct {
	version    int
	statements []string
}

// migrations are applied in ascending version order.
var migrations = []migration{
	{version: 1, statements: schemaDDL},
	{version: 2, statements: indexDDL},
}

// migrate brings the schema up to CurrentSchemaVersion inside tx. Each
// migration's statements are followed by a version bump, so a database left
// at any earlier version resumes where it stopped.
func migrate(tx *sql.Tx) error {
	if _, err := tx.Exec(schemaVersionTableDDL); err != nil {
		return &MigrationError{Version: 0, Err: err}
	}

	current, err := schemaVersion(tx)
	if err != nil {
		return &MigrationError{Version: 0, Err: err}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := tx.Exec(stmt); err != nil {
				return &MigrationError{Version: m.version, Err: err}
			}
		}
		if err := setSchemaVersion(tx, m.version); err != nil {
			return &MigrationError{Version: m.version, Err: err}
		}
	}

	return nil
}

// schemaVersion returns the recorded version, or 0 when none is recorded.
func schemaVersion(q querier) (int, error) {
	var version int
	err := q.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func setSchemaVersion(q querier, version int) error {
	res, err := q.Exec(`UPDATE schema_version SET version = ?`, version)
	if err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := q.Exec(`INSERT INTO schema_version (version) VALUES (?)`, version); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (d *Database) SchemaVersion() (int, error) {
	return schemaVersion(d.db)
}
