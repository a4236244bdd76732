// Package testutil provides reusable helpers for tagr tests: a temporary,
// seedable database and a runner for the built CLI.
package testutil

import (
	"database/sql"
	"errors"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aidanlsb/tagr/internal/database"
)

// BaseModTime is the modification time given to seeded files. Each file
// added gets this time plus one second per previously added file.
var BaseModTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// TestDB is a temporary on-disk database that tests seed directly.
type TestDB struct {
	Path string // database file
	Root string // directory the database is rooted at
	DB   *database.Database

	t     *testing.T
	files int
}

// NewTestDB creates and opens a database at <tmp>/.tagr/db. It is closed
// when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	root := t.TempDir()
	dbPath := filepath.Join(root, database.DirName, database.FileName)
	if err := database.Create(dbPath, ".."); err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &TestDB{Path: dbPath, Root: db.Root(), DB: db, t: t}
}

func (d *TestDB) sql() *sql.DB {
	return d.DB.DB()
}

// Tag returns the id of the named tag, creating it if needed.
func (d *TestDB) Tag(name string) int64 {
	d.t.Helper()
	return d.idFor("tag", name)
}

// Value returns the id of the named value, creating it if needed. The empty
// name is the "no value" id 0.
func (d *TestDB) Value(name string) int64 {
	d.t.Helper()
	if name == "" {
		return 0
	}
	return d.idFor("value", name)
}

func (d *TestDB) idFor(table, name string) int64 {
	d.t.Helper()

	var id int64
	err := d.sql().QueryRow(`SELECT id FROM `+table+` WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id
	}
	if !errors.Is(err, sql.ErrNoRows) {
		d.t.Fatalf("failed to look up %s %q: %v", table, name, err)
	}

	res, err := d.sql().Exec(`INSERT INTO `+table+` (name) VALUES (?)`, name)
	if err != nil {
		d.t.Fatalf("failed to insert %s %q: %v", table, name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		d.t.Fatalf("failed to read %s id: %v", table, err)
	}
	return id
}

// File records a regular file at the slash-separated path p and returns its id.
func (d *TestDB) File(p string, size int64) int64 {
	d.t.Helper()
	return d.addFile(p, size, false)
}

// Dir records a directory at the slash-separated path p and returns its id.
func (d *TestDB) Dir(p string) int64 {
	d.t.Helper()
	return d.addFile(p, 0, true)
}

func (d *TestDB) addFile(p string, size int64, isDir bool) int64 {
	d.t.Helper()

	modTime := BaseModTime.Add(time.Duration(d.files) * time.Second)
	d.files++

	res, err := d.sql().Exec(`
		INSERT INTO file (directory, name, fingerprint, mod_time, size, is_dir)
		VALUES (?, ?, ?, ?, ?, ?)`,
		path.Dir(p), path.Base(p), "fp-"+p, modTime.Format("2006-01-02 15:04:05.999999999-07:00"), size, isDir)
	if err != nil {
		d.t.Fatalf("failed to insert file %s: %v", p, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		d.t.Fatalf("failed to read file id: %v", err)
	}
	return id
}

// Apply tags the file with each of tags, written as "name" or "name=value".
func (d *TestDB) Apply(fileID int64, tags ...string) {
	d.t.Helper()
	for _, tag := range tags {
		tagID, valueID := d.pair(tag)
		if _, err := d.sql().Exec(`
			INSERT OR IGNORE INTO file_tag (file_id, tag_id, value_id)
			VALUES (?, ?, ?)`, fileID, tagID, valueID); err != nil {
			d.t.Fatalf("failed to tag file %d with %s: %v", fileID, tag, err)
		}
	}
}

// Imply records that from implies to, each written as "name" or "name=value".
func (d *TestDB) Imply(from, to string) {
	d.t.Helper()
	tagID, valueID := d.pair(from)
	impliedTagID, impliedValueID := d.pair(to)
	if _, err := d.sql().Exec(`
		INSERT OR IGNORE INTO implication (tag_id, value_id, implied_tag_id, implied_value_id)
		VALUES (?, ?, ?, ?)`, tagID, valueID, impliedTagID, impliedValueID); err != nil {
		d.t.Fatalf("failed to add implication %s -> %s: %v", from, to, err)
	}
}

func (d *TestDB) pair(s string) (tagID, valueID int64) {
	d.t.Helper()
	name, value, _ := strings.Cut(s, "=")
	return d.Tag(name), d.Value(value)
}
