package database

import (
	"database/sql"
	"fmt"

	"github.com/aidanlsb/tagr/internal/model"
	"github.com/aidanlsb/tagr/internal/sqlutil"
)

// ImplicationStore reads tag implications.
type ImplicationStore struct {
	q querier
}

// All returns every implication ordered by tag, value, implied tag and
// implied value names. Value ids of 0 come back as zero Values.
func (s *ImplicationStore) All() ([]model.Implication, error) {
	rows, err := s.q.Query(`
		SELECT t.id, t.name,
		       coalesce(v.id, 0), coalesce(v.name, ''),
		       it.id, it.name,
		       coalesce(iv.id, 0), coalesce(iv.name, '')
		FROM implication i
		INNER JOIN tag t ON t.id = i.tag_id
		LEFT JOIN value v ON v.id = i.value_id
		INNER JOIN tag it ON it.id = i.implied_tag_id
		LEFT JOIN value iv ON iv.id = i.implied_value_id
		ORDER BY t.name, v.name, it.name, iv.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list implications: %w", err)
	}

	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (model.Implication, error) {
		var i model.Implication
		err := rows.Scan(
			&i.Tag.ID, &i.Tag.Name,
			&i.Value.ID, &i.Value.Name,
			&i.ImpliedTag.ID, &i.ImpliedTag.Name,
			&i.ImpliedValue.ID, &i.ImpliedValue.Name,
		)
		return i, err
	})
}

// Count returns the number of implications.
func (s *ImplicationStore) Count() (int64, error) {
	n, err := count(s.q, `SELECT count(1) FROM implication`)
	if err != nil {
		return 0, fmt.Errorf("failed to count implications: %w", err)
	}
	return n, nil
}
