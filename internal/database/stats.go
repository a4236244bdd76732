package database

import (
	"fmt"
	"time"
)

// Stats summarizes the contents of a database.
type Stats struct {
	SchemaVersion    int
	TagCount         int64
	ValueCount       int64
	FileCount        int64
	DirectoryCount   int64
	TaggingCount     int64
	ImplicationCount int64
	TotalSize        int64
	LastModified     time.Time // zero when there are no files
}

// Stats gathers database statistics.
func (d *Database) Stats() (*Stats, error) {
	var stats Stats
	var err error

	if stats.SchemaVersion, err = d.SchemaVersion(); err != nil {
		return nil, err
	}
	if stats.TagCount, err = d.Tags().Count(); err != nil {
		return nil, err
	}
	if stats.ValueCount, err = d.Values().Count(); err != nil {
		return nil, err
	}
	if stats.ImplicationCount, err = d.Implications().Count(); err != nil {
		return nil, err
	}

	var modTime any
	err = d.db.QueryRow(`
		SELECT count(1),
		       coalesce(sum(CASE WHEN is_dir THEN 1 ELSE 0 END), 0),
		       coalesce(sum(CASE WHEN is_dir THEN 0 ELSE size END), 0),
		       max(mod_time)
		FROM file`).Scan(&stats.FileCount, &stats.DirectoryCount, &stats.TotalSize, &modTime)
	if err != nil {
		return nil, fmt.Errorf("failed to gather file statistics: %w", err)
	}
	if stats.LastModified, err = parseModTime(modTime); err != nil {
		return nil, err
	}

	if stats.TaggingCount, err = count(d.db, `SELECT count(1) FROM file_tag`); err != nil {
		return nil, fmt.Errorf("failed to count taggings: %w", err)
	}

	return &stats, nil
}
