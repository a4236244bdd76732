// Package database handles the SQLite tag database: its lifecycle, schema
// migrations and the stores that read tags, values, files and implications.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	// DirName is the directory holding a database, conventionally at the
	// root of the tagged tree.
	DirName = ".tagr"
	// FileName is the default database file name within DirName.
	FileName = "db"
)

var (
	// ErrDatabaseNotFound indicates Open was given a path with no database.
	ErrDatabaseNotFound = errors.New("database not found")
	// ErrDatabaseExists indicates Create was given a path that already exists.
	ErrDatabaseExists = errors.New("database already exists")
)

// Logger receives diagnostic output such as compiled SQL.
type Logger interface {
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Database is an open tag database. It holds a single connection for its
// whole lifetime; callers must Close it.
type Database struct {
	db   *sql.DB
	path string
	root string
	log  Logger
}

// Create creates a new database at path whose stored file paths are
// relative to root. root is stored as given; a relative root is resolved
// against the database file's directory when the database is opened.
func Create(path, root string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrDatabaseExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := openConnection(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := migrate(tx); err != nil {
		return err
	}
	if err := (&SettingStore{q: tx}).Set(SettingRoot, root); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit database creation: %w", err)
	}
	return nil
}

// Open opens the existing database at path, applying any pending migrations.
func Open(path string) (*Database, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDatabaseNotFound)
		}
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	db, err := openConnection(path)
	if err != nil {
		return nil, err
	}

	d := &Database{db: db, path: path, log: nopLogger{}}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	root, err := d.resolveRoot()
	if err != nil {
		db.Close()
		return nil, err
	}
	d.root = root

	return d, nil
}

// OpenInMemory opens an empty, fully migrated in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	db, err := openConnection(":memory:")
	if err != nil {
		return nil, err
	}

	d := &Database{db: db, path: ":memory:", log: nopLogger{}}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

func openConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and the
	// tool never issues concurrent statements.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA temp_store = MEMORY`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	return db, nil
}

// initialize runs pending migrations in a single transaction.
func (d *Database) initialize() error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := migrate(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migrations: %w", err)
	}
	return nil
}

// resolveRoot reads the root setting and resolves it against the database
// file's directory. A database without the setting is rooted at the parent
// of its directory.
func (d *Database) resolveRoot() (string, error) {
	abs, err := filepath.Abs(d.path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	dbDir := filepath.Dir(abs)

	setting, err := d.Settings().Get(SettingRoot)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			return "", err
		}
		setting = ".."
	}

	root := setting
	if !filepath.IsAbs(root) {
		root = filepath.Join(dbDir, root)
	}
	root = filepath.Clean(root)

	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return root, nil
}

// Close releases the connection. It is safe to call more than once; stores
// used after Close return errors.
func (d *Database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Path returns the database file path as given to Open.
func (d *Database) Path() string {
	return d.path
}

// Root returns the absolute directory that stored file paths are relative to.
func (d *Database) Root() string {
	return d.root
}

// SetLogger directs diagnostic output, including compiled SQL, to l.
func (d *Database) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	d.log = l
}

// Tags returns the tag store.
func (d *Database) Tags() *TagStore {
	return &TagStore{q: d.db}
}

// Values returns the value store.
func (d *Database) Values() *ValueStore {
	return &ValueStore{q: d.db}
}

// Files returns the file store.
func (d *Database) Files() *FileStore {
	return &FileStore{q: d.db, tags: d.Tags(), values: d.Values(), log: d.log}
}

// Settings returns the setting store.
func (d *Database) Settings() *SettingStore {
	return &SettingStore{q: d.db}
}

// Implications returns the implication store.
func (d *Database) Implications() *ImplicationStore {
	return &ImplicationStore{q: d.db}
}
