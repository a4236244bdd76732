package cli

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/tagr/internal/config"
	"github.com/aidanlsb/tagr/internal/query"
)

func parseQueryFlags(t *testing.T, args ...string) (*queryFlags, *pflag.FlagSet) {
	t.Helper()
	var f queryFlags
	fs := pflag.NewFlagSet("files", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %v: %v", args, err)
	}
	return &f, fs
}

func TestQueryFlagsOptions(t *testing.T) {
	root := filepath.FromSlash("/srv/media")
	cwd := filepath.Join(root, "photos")
	defaults := &config.Config{Query: config.QueryConfig{IgnoreCase: true, Explicit: true, Sort: "time"}}

	tests := []struct {
		name     string
		args     []string
		defaults *config.Config
		want     query.Options
	}{
		{
			name: "no flags no config",
			want: query.Options{},
		},
		{
			name:     "config defaults apply",
			defaults: defaults,
			want:     query.Options{Casing: query.CaseInsensitive, Specificity: query.TagsExplicitOnly, Sort: query.SortTime},
		},
		{
			name:     "flags override config",
			args:     []string{"--ignore-case=false", "--explicit=false", "--sort", "size"},
			defaults: defaults,
			want:     query.Options{Casing: query.CaseSensitive, Specificity: query.TagsAll, Sort: query.SortSize},
		},
		{
			name: "file type",
			args: []string{"-d"},
			want: query.Options{FileType: query.FileTypeDirectoryOnly},
		},
		{
			name: "path relative to cwd",
			args: []string{"-p", "2024"},
			want: query.Options{Path: "photos/2024"},
		},
		{
			name: "root path is no restriction",
			args: []string{"--path", ".."},
			want: query.Options{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, fs := parseQueryFlags(t, tt.args...)
			got, err := f.options(fs, tt.defaults, root, cwd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestQueryFlagsOptionsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-d", "-f"},
		{"--sort", "colour"},
	} {
		f, fs := parseQueryFlags(t, args...)
		_, err := f.options(fs, nil, "/", "/")
		if err == nil {
			t.Fatalf("options(%v): expected error", args)
		}
		if code, _, _ := classifyError(err); code != ErrInvalidInput {
			t.Errorf("options(%v): code = %s, want %s", args, code, ErrInvalidInput)
		}
	}
}

func TestQueryFlagsSeparator(t *testing.T) {
	f, _ := parseQueryFlags(t)
	if got := f.separator(); got != "\n" {
		t.Errorf("separator = %q, want newline", got)
	}
	f, _ = parseQueryFlags(t, "-0")
	if got := f.separator(); got != "\x00" {
		t.Errorf("separator = %q, want NUL", got)
	}
}
