package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aidanlsb/tagr/internal/query"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
database = "/srv/media/.tagr/db"

[query]
ignore_case = true
sort = "size"

[ui]
accent = "39"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Config{
		Database: "/srv/media/.tagr/db",
		Query:    QueryConfig{IgnoreCase: true, Sort: "size"},
		UI:       UIConfig{Accent: "39"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	opts := cfg.QueryOptions()
	if opts.Casing != query.CaseInsensitive || opts.Specificity != query.TagsAll || opts.Sort != query.SortSize {
		t.Errorf("unexpected query options %+v", opts)
	}
}

func TestLoadFromRelativeDatabase(t *testing.T) {
	path := writeConfig(t, `database = "library/.tagr/db"`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(filepath.Dir(path), "library", ".tagr", "db")
	if cfg.Database != want {
		t.Errorf("Database = %q, want %q", cfg.Database, want)
	}
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed", content: "database = ", wantErr: "failed to parse config"},
		{name: "unknown key", content: "[query]\nexplicitly = true", wantErr: "unknown key"},
		{name: "bad sort", content: "[query]\nsort = \"colour\"", wantErr: "invalid sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected empty config (-want +got):\n%s", diff)
	}
}

func TestDefaultPathPrefersXDGStyle(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	xdgPath := filepath.Join(home, ".config", "tagr", "config.toml")
	if err := os.MkdirAll(filepath.Dir(xdgPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdgPath, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if got := DefaultPath(); got != xdgPath {
		t.Errorf("DefaultPath() = %q, want %q", got, xdgPath)
	}
}
