package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidanlsb/tagr/internal/database"
)

func evalDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestFindDatabase(t *testing.T) {
	root := evalDir(t)
	dbPath := filepath.Join(root, database.DirName, database.FileName)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dbPath, nil, 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "music", "jazz")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	for _, start := range []string{root, nested} {
		got, err := FindDatabase(start)
		if err != nil {
			t.Fatalf("FindDatabase(%q): %v", start, err)
		}
		if got != dbPath {
			t.Errorf("FindDatabase(%q) = %q, want %q", start, got, dbPath)
		}
	}
}

func TestFindDatabaseNone(t *testing.T) {
	// A directory named like the database is not a database.
	root := evalDir(t)
	if err := os.MkdirAll(filepath.Join(root, database.DirName, database.FileName), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindDatabase(root)
	if err == nil {
		// A database above the temp dir would be found legitimately.
		if filepath.Dir(filepath.Dir(got)) == root {
			t.Fatalf("directory mistaken for database: %s", got)
		}
		return
	}
	if !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("error = %v, want ErrNoDatabase", err)
	}
}

func TestStored(t *testing.T) {
	root := evalDir(t)
	outside := evalDir(t)
	cwd := filepath.Join(root, "music")

	tests := []struct {
		name string
		p    string
		want string
	}{
		{name: "relative to cwd", p: "jazz", want: "music/jazz"},
		{name: "dot is cwd", p: ".", want: "music"},
		{name: "parent is root", p: "..", want: "."},
		{name: "absolute inside", p: filepath.Join(root, "docs", "a.pdf"), want: "docs/a.pdf"},
		{name: "absolute outside", p: outside, want: filepath.ToSlash(outside)},
		{name: "sibling prefix is outside", p: root + "x", want: filepath.ToSlash(root + "x")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stored(root, cwd, tt.p); got != tt.want {
				t.Errorf("Stored(%q) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

func TestAbsoluteAndDisplay(t *testing.T) {
	root := filepath.FromSlash("/srv/media")

	if got, want := Absolute(root, "music/a.mp3"), filepath.FromSlash("/srv/media/music/a.mp3"); got != want {
		t.Errorf("Absolute = %q, want %q", got, want)
	}
	if got, want := Absolute(root, "/elsewhere/b"), filepath.FromSlash("/elsewhere/b"); got != want {
		t.Errorf("Absolute = %q, want %q", got, want)
	}

	cwd := filepath.FromSlash("/srv/media/music")
	if got, want := Display(cwd, filepath.FromSlash("/srv/media/music/jazz/a.mp3")), filepath.FromSlash("jazz/a.mp3"); got != want {
		t.Errorf("Display = %q, want %q", got, want)
	}
	if got, want := Display(cwd, filepath.FromSlash("/srv/media/docs/b.pdf")), filepath.FromSlash("/srv/media/docs/b.pdf"); got != want {
		t.Errorf("Display = %q, want %q", got, want)
	}
	if got := Display(cwd, cwd); got != cwd {
		t.Errorf("Display(cwd) = %q, want %q", got, cwd)
	}
}

func TestIsRoot(t *testing.T) {
	for _, p := range []string{".", "/", "./", ""} {
		if !IsRoot(p) {
			t.Errorf("IsRoot(%q) = false", p)
		}
	}
	if IsRoot("music") {
		t.Error(`IsRoot("music") = true`)
	}
}
