package database_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/tagr/internal/database"
	"github.com/aidanlsb/tagr/internal/query"
	"github.com/aidanlsb/tagr/internal/testutil"
)

func TestCreateAndOpen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, database.DirName, database.FileName)

	if err := database.Create(dbPath, ".."); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected database file: %v", err)
	}

	if err := database.Create(dbPath, ".."); !errors.Is(err, database.ErrDatabaseExists) {
		t.Errorf("second Create error = %v, want ErrDatabaseExists", err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	wantRoot, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if db.Root() != wantRoot {
		t.Errorf("Root() = %q, want %q", db.Root(), wantRoot)
	}

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != database.CurrentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, database.CurrentSchemaVersion)
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := database.Open(filepath.Join(t.TempDir(), "nope", "db"))
	if !errors.Is(err, database.ErrDatabaseNotFound) {
		t.Fatalf("error = %v, want ErrDatabaseNotFound", err)
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	tdb.Apply(tdb.File("/a", 1), "x")
	tdb.DB.Close()

	for i := 0; i < 2; i++ {
		db, err := database.Open(tdb.Path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		n, err := db.Tags().Count()
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n != 1 {
			t.Errorf("tag count after reopen = %d, want 1", n)
		}
		db.Close()
	}
}

func TestCloseTwice(t *testing.T) {
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestUseAfterClose(t *testing.T) {
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := db.Tags().All(); err == nil {
		t.Error("Tags().All: expected error after Close")
	}
	if _, err := db.Files().Query("music", query.Options{}); err == nil {
		t.Error("Files().Query: expected error after Close")
	}
	if err := db.Settings().Set("root", "/srv"); err == nil {
		t.Error("Settings().Set: expected error after Close")
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close after use: %v", err)
	}
}

func TestAbsoluteRootSetting(t *testing.T) {
	dir := t.TempDir()
	root := t.TempDir()
	dbPath := filepath.Join(dir, "tags.db")

	if err := database.Create(dbPath, root); err != nil {
		t.Fatalf("Create: %v", err)
	}
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	want, _ := filepath.EvalSymlinks(root)
	if db.Root() != want {
		t.Errorf("Root() = %q, want %q", db.Root(), want)
	}

	got, err := db.Settings().Get(database.SettingRoot)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != root {
		t.Errorf("stored root = %q, want %q", got, root)
	}
}

func TestSettings(t *testing.T) {
	db, err := database.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Settings().Get("colour"); !errors.Is(err, database.ErrSettingNotFound) {
		t.Fatalf("Get missing = %v, want ErrSettingNotFound", err)
	}
	if err := db.Settings().Set("colour", "red"); err != nil {
		t.Fatal(err)
	}
	if err := db.Settings().Set("colour", "blue"); err != nil {
		t.Fatal(err)
	}
	got, err := db.Settings().Get("colour")
	if err != nil {
		t.Fatal(err)
	}
	if got != "blue" {
		t.Errorf("colour = %q, want blue", got)
	}
}
