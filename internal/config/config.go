// Package config provides configuration loading and validation for exabind.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gerunddev/exabind/internal/log"
)

const appName = "exabind"

// ErrShortcutsFileNotFound is returned when the shortcuts file does not exist.
var ErrShortcutsFileNotFound = errors.New("shortcuts file not found")

// Config holds all exabind configuration settings.
type Config struct {
	ShortcutsFile string      `koanf:"shortcuts_file"` // kglobalshortcutsrc to read
	DatabasePath  string      `koanf:"database_path"`  // snapshot database
	LogLevel      string      `koanf:"log_level"`      // debug, info, warn, error
	FriendlyNames string      `koanf:"friendly_names"` // "positional" or "section"
	Show          ShowConfig  `koanf:"show"`
	Theme         ThemeConfig `koanf:"theme"`

	// expandedPaths tracks whether ExpandPaths has been called.
	expandedPaths bool
}

// ShowConfig holds defaults for the show command.
type ShowConfig struct {
	Sort string `koanf:"sort"` // "name" or "count"
}

// ThemeConfig holds the colors used by the terminal views.
type ThemeConfig struct {
	Accent string `koanf:"accent"` // category titles and focus borders
	Keycap string `koanf:"keycap"` // key labels
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ShortcutsFile: filepath.Join(xdg.ConfigHome, "kglobalshortcutsrc"),
		DatabasePath:  filepath.Join(xdg.DataHome, appName, "snapshots.db"),
		LogLevel:      "info",
		FriendlyNames: "positional",
		Show: ShowConfig{
			Sort: "name",
		},
		Theme: ThemeConfig{
			Accent: "#78dce8",
			Keycap: "#ffd866",
		},
	}
}

// DefaultPath returns the standard config file location
// ($XDG_CONFIG_HOME/exabind/config.toml).
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Load reads config from the standard location, falling back to defaults if
// the file doesn't exist.
func Load() (*Config, error) {
	return LoadFromPath(DefaultPath())
}

// LoadFromPath reads config from a specific path.
// If the file doesn't exist, returns default config.
// If the file exists but is invalid, returns an error.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug("no config file, using defaults", "path", path)
		if err := cfg.ExpandPaths(); err != nil {
			return nil, fmt.Errorf("failed to expand paths: %w", err)
		}
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	var errs []error

	if c.ShortcutsFile == "" {
		errs = append(errs, errors.New("shortcuts_file must be non-empty"))
	}

	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database_path must be non-empty"))
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	switch c.FriendlyNames {
	case "positional", "section":
	default:
		errs = append(errs, fmt.Errorf("friendly_names must be \"positional\" or \"section\", got %q", c.FriendlyNames))
	}

	switch c.Show.Sort {
	case "name", "count":
	default:
		errs = append(errs, fmt.Errorf("show.sort must be \"name\" or \"count\", got %q", c.Show.Sort))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ExpandPaths expands ~ to home directory in all path fields.
func (c *Config) ExpandPaths() error {
	if c.expandedPaths {
		return nil
	}

	var err error

	c.ShortcutsFile, err = expandPath(c.ShortcutsFile)
	if err != nil {
		return fmt.Errorf("failed to expand shortcuts_file: %w", err)
	}

	c.DatabasePath, err = expandPath(c.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to expand database_path: %w", err)
	}

	c.expandedPaths = true
	return nil
}

// ResolveShortcutsPath returns the shortcuts file to read: override when set,
// the configured file otherwise. The file must exist.
func (c *Config) ResolveShortcutsPath(override string) (string, error) {
	path := c.ShortcutsFile
	if override != "" {
		var err error
		path, err = expandPath(override)
		if err != nil {
			return "", fmt.Errorf("failed to expand shortcuts file path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w at: %s\nProvide path with --shortcuts-file or place file at default location",
			ErrShortcutsFileNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat shortcuts file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("shortcuts file is a directory: %s", path)
	}

	return path, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Clean(path), nil
}
