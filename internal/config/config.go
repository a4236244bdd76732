// Package config handles the optional tagr configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/tagr/internal/query"
)

// Config represents the tagr configuration.
type Config struct {
	// Database is the default database path, used when neither --database
	// nor TAGR_DB is given.
	Database string `toml:"database"`

	// Query holds defaults for query flags.
	Query QueryConfig `toml:"query"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// QueryConfig holds query defaults. Flags given on the command line win.
type QueryConfig struct {
	IgnoreCase bool   `toml:"ignore_case"`
	Explicit   bool   `toml:"explicit"`
	Sort       string `toml:"sort"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path. A relative database
// path is resolved against the config file's directory.
func LoadFrom(path string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if _, err := query.ParseSort(config.Query.Sort); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if config.Database != "" && !filepath.IsAbs(config.Database) {
		config.Database = filepath.Join(filepath.Dir(path), config.Database)
	}
	return &config, nil
}

// QueryOptions returns the query options implied by the config.
func (c *Config) QueryOptions() query.Options {
	var opts query.Options
	if c.Query.IgnoreCase {
		opts.Casing = query.CaseInsensitive
	}
	if c.Query.Explicit {
		opts.Specificity = query.TagsExplicitOnly
	}
	// LoadFrom has already rejected invalid sorts.
	opts.Sort, _ = query.ParseSort(c.Query.Sort)
	return opts
}

// DefaultPath returns the default config file path.
// Checks ~/.config/tagr/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "tagr", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "tagr", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
