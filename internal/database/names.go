package database

import (
	"database/sql"
	"fmt"

	"github.com/aidanlsb/tagr/internal/model"
	"github.com/aidanlsb/tagr/internal/query"
	"github.com/aidanlsb/tagr/internal/sqlutil"
)

// missingNames returns the names with no row in table, in first-seen input
// order and without duplicates. All candidates are checked in one statement
// by joining a VALUES list against the table. table is always a constant.
func missingNames(q querier, table string, names []string, casing query.Casing) ([]string, error) {
	candidates := dedupe(names)
	if len(candidates) == 0 {
		return nil, nil
	}

	collation := casing.Collation()

	b := sqlutil.NewBuilder()
	b.PushSQL("WITH candidate (name) AS (VALUES ").PushValues(candidates).PushSQL(")")
	b.PushSQL("SELECT candidate.name")
	b.PushSQL("FROM candidate")
	b.PushSQL("LEFT JOIN " + table + " ON " + table + ".name" + collation + " = candidate.name")
	b.PushSQL("WHERE " + table + ".id IS NULL")

	rows, err := q.Query(b.SQL(), b.Params()...)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s names: %w", table, err)
	}
	found, err := sqlutil.ScanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s names: %w", table, err)
	}

	absent := make(map[string]bool, len(found))
	for _, name := range found {
		absent[name] = true
	}
	var missing []string
	for _, name := range candidates {
		if absent[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func scanTag(rows *sql.Rows) (model.Tag, error) {
	var t model.Tag
	err := rows.Scan(&t.ID, &t.Name)
	return t, err
}

func scanValue(rows *sql.Rows) (model.Value, error) {
	var v model.Value
	err := rows.Scan(&v.ID, &v.Name)
	return v, err
}

func count(q querier, stmt string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRow(stmt, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// TagStore answers questions about tags.
type TagStore struct {
	q querier
}

// Missing returns the names for which no tag exists.
func (s *TagStore) Missing(names []string, casing query.Casing) ([]string, error) {
	return missingNames(s.q, "tag", names, casing)
}

// All returns every tag ordered by name.
func (s *TagStore) All() ([]model.Tag, error) {
	rows, err := s.q.Query(`SELECT id, name FROM tag ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return sqlutil.ScanRows(rows, scanTag)
}

// Count returns the number of tags.
func (s *TagStore) Count() (int64, error) {
	n, err := count(s.q, `SELECT count(1) FROM tag`)
	if err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return n, nil
}

// ValueStore answers questions about values.
type ValueStore struct {
	q querier
}

// Missing returns the names for which no value exists.
func (s *ValueStore) Missing(names []string, casing query.Casing) ([]string, error) {
	return missingNames(s.q, "value", names, casing)
}

// All returns every value ordered by name.
func (s *ValueStore) All() ([]model.Value, error) {
	rows, err := s.q.Query(`SELECT id, name FROM value ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}
	return sqlutil.ScanRows(rows, scanValue)
}

// ForTag returns the values applied with the named tag, ordered by name.
func (s *ValueStore) ForTag(tag string, casing query.Casing) ([]model.Value, error) {
	collation := casing.Collation()
	rows, err := s.q.Query(`
		SELECT DISTINCT v.id, v.name
		FROM value v
		INNER JOIN file_tag ft ON ft.value_id = v.id
		INNER JOIN tag t ON t.id = ft.tag_id
		WHERE t.name`+collation+` = ?
		ORDER BY v.name`, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list values for tag %s: %w", tag, err)
	}
	return sqlutil.ScanRows(rows, scanValue)
}

// Count returns the number of values.
func (s *ValueStore) Count() (int64, error) {
	n, err := count(s.q, `SELECT count(1) FROM value`)
	if err != nil {
		return 0, fmt.Errorf("failed to count values: %w", err)
	}
	return n, nil
}
