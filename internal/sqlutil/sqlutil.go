// Package sqlutil holds small helpers shared by the SQL-producing packages.
package sqlutil

import (
	"database/sql"
)

// ScanRows scans all rows into a slice using the provided scanner.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ScanStrings collects a single text column.
func ScanStrings(rows *sql.Rows) ([]string, error) {
	return ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var s string
		err := rows.Scan(&s)
		return s, err
	})
}
