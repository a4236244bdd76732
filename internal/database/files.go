package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aidanlsb/tagr/internal/model"
	"github.com/aidanlsb/tagr/internal/query"
	"github.com/aidanlsb/tagr/internal/sqlutil"
)

// FileStore runs file queries.
type FileStore struct {
	q      querier
	tags   *TagStore
	values *ValueStore
	log    Logger
}

// Query returns the files matching the query text. Text that parses to no
// expression returns every file that passes the options' filters.
func (s *FileStore) Query(text string, opts query.Options) ([]model.File, error) {
	expr, err := s.prepare(text, opts)
	if err != nil {
		return nil, err
	}
	return s.run(query.CompileFiles(expr, opts))
}

// QueryCount returns the number of files Query would return.
func (s *FileStore) QueryCount(text string, opts query.Options) (int64, error) {
	expr, err := s.prepare(text, opts)
	if err != nil {
		return 0, err
	}
	return s.runCount(query.CompileCount(expr, opts))
}

// All returns every file that passes the options' filters.
func (s *FileStore) All(opts query.Options) ([]model.File, error) {
	return s.run(query.CompileFiles(nil, opts))
}

// AllCount returns the number of files All would return.
func (s *FileStore) AllCount(opts query.Options) (int64, error) {
	return s.runCount(query.CompileCount(nil, opts))
}

// prepare parses and validates query text. It returns a nil expression for
// empty text.
func (s *FileStore) prepare(text string, opts query.Options) (query.Expr, error) {
	expr, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, nil
	}
	if err := query.NewValidator(s.tags, s.values).Validate(expr, opts.Casing); err != nil {
		return nil, err
	}
	return expr, nil
}

func (s *FileStore) run(stmt query.Statement) ([]model.File, error) {
	s.trace(stmt)
	start := time.Now()

	rows, err := s.q.Query(stmt.SQL, stmt.Params...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	files, err := sqlutil.ScanRows(rows, scanFile)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	s.log.Debugf("query returned %d files in %s", len(files), time.Since(start))
	return files, nil
}

func (s *FileStore) runCount(stmt query.Statement) (int64, error) {
	s.trace(stmt)
	start := time.Now()

	n, err := count(s.q, stmt.SQL, stmt.Params...)
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}

	s.log.Debugf("count query returned %d in %s", n, time.Since(start))
	return n, nil
}

func (s *FileStore) trace(stmt query.Statement) {
	s.log.Debugf("SQL:\n%s", stmt.SQL)
	if len(stmt.Params) > 0 {
		parts := make([]string, len(stmt.Params))
		for i, p := range stmt.Params {
			parts[i] = fmt.Sprintf("?%d=%#v", i+1, p)
		}
		s.log.Debugf("params: %s", strings.Join(parts, " "))
	}
}

func scanFile(rows *sql.Rows) (model.File, error) {
	var f model.File
	var modTime any
	if err := rows.Scan(&f.ID, &f.Directory, &f.Name, &f.Fingerprint, &modTime, &f.Size, &f.IsDir); err != nil {
		return f, err
	}
	t, err := parseModTime(modTime)
	if err != nil {
		return f, fmt.Errorf("file %d: %w", f.ID, err)
	}
	f.ModTime = t
	return f, nil
}

var modTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseModTime accepts the representations a DATETIME column can come back
// as: a driver-parsed time, text in a common layout, or Unix seconds.
func parseModTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return t, nil
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case float64:
		return time.Unix(int64(t), 0).UTC(), nil
	case []byte:
		return parseModTimeText(string(t))
	case string:
		return parseModTimeText(t)
	default:
		return time.Time{}, fmt.Errorf("unsupported mod_time type %T", v)
	}
}

func parseModTimeText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// time.Time.String appends the monotonic clock reading.
	if i := strings.Index(s, " m="); i >= 0 {
		s = s[:i]
	}
	for _, layout := range modTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid mod_time %q", s)
}
