package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/timecraft/config.yaml"

// Config holds all timecraft configuration.
type Config struct {
	History  HistoryConfig  `yaml:"history"`
	Sessions SessionsConfig `yaml:"sessions"`
	Typos    TyposConfig    `yaml:"typos"`
	Aliases  AliasesConfig  `yaml:"aliases"`
	Replay   ReplayConfig   `yaml:"replay"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type HistoryConfig struct {
	Path     string `yaml:"path"`
	Timezone string `yaml:"timezone"`
}

type SessionsConfig struct {
	GapMinutes int `yaml:"gap_minutes"`
}

type TyposConfig struct {
	MinTokenLength int      `yaml:"min_token_length"`
	Vocabulary     []string `yaml:"vocabulary"`
}

// AliasEntry is one suggested alias in the config file.
type AliasEntry struct {
	Alias   string `yaml:"alias"`
	Command string `yaml:"command"`
}

type AliasesConfig struct {
	TopN     int                     `yaml:"top_n"`
	MinCount int                     `yaml:"min_count"`
	Table    map[string][]AliasEntry `yaml:"table"`
}

type ReplayConfig struct {
	DelayMS int `yaml:"delay_ms"`
}

type StorageConfig struct {
	Path              string `yaml:"path"`
	SQLiteFile        string `yaml:"sqlite_file"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var (
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"text", "json"}
	validJournalModes = []string{"wal", "delete", "truncate", "persist", "memory", "off"}
)

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML,
// or fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Sessions.GapMinutes <= 0 {
		return fmt.Errorf("sessions.gap_minutes must be positive, got %d", c.Sessions.GapMinutes)
	}
	if c.Typos.MinTokenLength < 1 {
		return fmt.Errorf("typos.min_token_length must be at least 1, got %d", c.Typos.MinTokenLength)
	}
	if len(c.Typos.Vocabulary) == 0 {
		return errors.New("typos.vocabulary must not be empty")
	}
	if c.Aliases.TopN < 0 || c.Aliases.MinCount < 0 {
		return errors.New("aliases.top_n and aliases.min_count must not be negative")
	}
	if c.Replay.DelayMS < 0 {
		return fmt.Errorf("replay.delay_ms must not be negative, got %d", c.Replay.DelayMS)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("logging.level %q is not one of %s", c.Logging.Level, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("logging.format %q is not one of %s", c.Logging.Format, strings.Join(validLogFormats, ", "))
	}
	if !contains(validJournalModes, strings.ToLower(c.Storage.SQLiteJournalMode)) {
		return fmt.Errorf("storage.sqlite_journal_mode %q is not supported", c.Storage.SQLiteJournalMode)
	}
	return nil
}

// Location resolves history.timezone. Empty means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.History.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.History.Timezone)
	if err != nil {
		return nil, fmt.Errorf("history.timezone: %w", err)
	}
	return loc, nil
}

// SessionGap is the configured idle gap as a duration.
func (c *Config) SessionGap() time.Duration {
	return time.Duration(c.Sessions.GapMinutes) * time.Minute
}

// ReplayDelay is the configured pause between replayed commands.
func (c *Config) ReplayDelay() time.Duration {
	return time.Duration(c.Replay.DelayMS) * time.Millisecond
}

// HistoryPath returns the history file path with ~ expanded.
func (c *Config) HistoryPath() (string, error) {
	return expandPath(c.History.Path)
}

// DatabasePath returns the full path to the SQLite archive.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// ExpandPath is expandPath for callers outside the package.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
