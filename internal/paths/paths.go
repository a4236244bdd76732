// Package paths converts between the paths a user types, the root-relative
// paths stored in a database, and the paths printed back. It also locates
// databases by searching upward from a directory.
package paths

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/tagr/internal/database"
)

// ErrNoDatabase indicates FindDatabase reached the filesystem root without
// finding a database.
var ErrNoDatabase = errors.New("no database found in this directory or any parent")

// FindDatabase returns the path of the nearest .tagr/db at or above start.
func FindDatabase(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, database.DirName, database.FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoDatabase
		}
		dir = parent
	}
}

// Stored converts a user-supplied path into the form the database stores:
// slash-separated and relative to root when it lies inside root, absolute
// otherwise. Relative input is resolved against cwd. The root itself
// becomes ".".
func Stored(root, cwd, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(cwd, p)
	}
	p = filepath.Clean(p)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}

	if rel, ok := within(root, p); ok {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(p)
}

// Absolute converts a stored path back into an absolute OS path.
func Absolute(root, stored string) string {
	p := filepath.FromSlash(stored)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// Display renders an absolute path for output: relative to cwd when it lies
// beneath cwd, unchanged otherwise.
func Display(cwd, abs string) string {
	if rel, ok := within(cwd, abs); ok && rel != "." {
		return rel
	}
	return abs
}

// within reports p relative to base when p is base or lies beneath it.
func within(base, p string) (string, bool) {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// IsRoot reports whether a stored path names the database root, which
// places no restriction on a path scope.
func IsRoot(stored string) bool {
	s := path.Clean(stored)
	return s == "." || s == "/"
}
