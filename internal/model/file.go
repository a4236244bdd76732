// Package model defines the entities stored in a tag database.
// These types are shared by the database layer and the CLI output.
package model

import (
	"path/filepath"
	"time"
)

// File is a tracked file or directory.
type File struct {
	ID int64 `json:"id"`

	// Directory holds the containing directory, relative to the database
	// root when the file lies inside it.
	Directory string `json:"directory"`

	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	ModTime     time.Time `json:"mod_time"`
	Size        int64     `json:"size"`
	IsDir       bool      `json:"is_dir"`
}

// Path returns the directory and name joined.
func (f File) Path() string {
	return filepath.Join(f.Directory, f.Name)
}
