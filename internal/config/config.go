// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// missionchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.missionchat/config.toml
//   - ~/.missionchat/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/missionchat/internal/classify"
	"github.com/jeranaias/missionchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete missionchat configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Message log storage
	Storage StorageConfig `toml:"storage" json:"storage"`

	// Keyword classifier
	Classifier ClassifierConfig `toml:"classifier" json:"classifier"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui"`

	// Diagnostic log file
	Log LogConfig `toml:"log" json:"log"`
}

// StorageConfig selects where the message log is kept.
type StorageConfig struct {
	// Backend is "csv" (default) or "sqlite"
	Backend string `toml:"backend" json:"backend"`

	// Path of the CSV log, relative to the working directory unless absolute
	Path string `toml:"path" json:"path"`

	// SQLitePath is the database file used by the sqlite backend
	SQLitePath string `toml:"sqlite_path" json:"sqlite_path"`
}

// ClassifierConfig overrides the built-in keyword lists.
// Empty lists keep the built-in ones.
type ClassifierConfig struct {
	Greetings     []string `toml:"greetings" json:"greetings"`
	NegativeWords []string `toml:"negative_words" json:"negative_words"`
	PositiveWords []string `toml:"positive_words" json:"positive_words"`

	// LexiconFile is a YAML file with greetings/negative/positive lists.
	// Inline lists above take precedence over the file.
	LexiconFile string `toml:"lexicon_file" json:"lexicon_file"`

	// UnicodeFold applies NFKC normalization before matching
	UnicodeFold bool `toml:"unicode_fold" json:"unicode_fold"`
}

// UIConfig holds display settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme"`

	// TailSize is the number of recent entries shown in the log table
	TailSize int `toml:"tail_size" json:"tail_size"`

	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	// Path of the log file; empty uses ~/.missionchat/logs/missionchat.log
	Path  string `toml:"path" json:"path"`
	Debug bool   `toml:"debug" json:"debug"`
}

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Defaults that other packages refer to.
const (
	DefaultStorePath  = "user_messages.csv"
	DefaultSQLitePath = "user_messages.db"
	DefaultTailSize   = 10
	MaxTailSize       = 1000
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Storage: StorageConfig{
			Backend:    BackendCSV,
			Path:       DefaultStorePath,
			SQLitePath: DefaultSQLitePath,
		},
		UI: UIConfig{
			Theme:     "auto",
			TailSize:  DefaultTailSize,
			AltScreen: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the missionchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".missionchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that fails to parse is skipped; the defaults are returned together
// with the load error so callers can warn about it.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension (.json, otherwise TOML).
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML with a short header.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# missionchat configuration file\n")
	b.WriteString("# storage.backend: csv | sqlite\n")
	b.WriteString("# ui.theme: auto | dark | light\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	switch c.Storage.Backend {
	case BackendCSV:
		if strings.TrimSpace(c.Storage.Path) == "" {
			errs = append(errs, ValidationError{"storage.path", "must not be empty for the csv backend"})
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			errs = append(errs, ValidationError{"storage.sqlite_path", "must not be empty for the sqlite backend"})
		}
	default:
		errs = append(errs, ValidationError{"storage.backend", fmt.Sprintf("unknown backend %q (want csv or sqlite)", c.Storage.Backend)})
	}

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("unknown theme %q (want auto, dark or light)", c.UI.Theme)})
	}

	if c.UI.TailSize < 1 || c.UI.TailSize > MaxTailSize {
		errs = append(errs, ValidationError{"ui.tail_size", fmt.Sprintf("must be between 1 and %d, got %d", MaxTailSize, c.UI.TailSize)})
	}

	if f := c.Classifier.LexiconFile; f != "" {
		if _, err := os.Stat(f); err != nil {
			errs = append(errs, ValidationError{"classifier.lexicon_file", fmt.Sprintf("cannot read %s", f)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have a meaningful default.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = d.Storage.SQLitePath
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.TailSize == 0 {
		c.UI.TailSize = d.UI.TailSize
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
//   - MISSIONCHAT_BACKEND: overrides storage.backend
//   - MISSIONCHAT_STORE_PATH: overrides storage.path
//   - MISSIONCHAT_SQLITE_PATH: overrides storage.sqlite_path
//   - MISSIONCHAT_TAIL_SIZE: overrides ui.tail_size
//   - MISSIONCHAT_THEME: overrides ui.theme
//   - MISSIONCHAT_LOG_PATH: overrides log.path
//   - MISSIONCHAT_DEBUG: overrides log.debug
//   - MISSIONCHAT_UNICODE_FOLD: overrides classifier.unicode_fold
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MISSIONCHAT_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("MISSIONCHAT_STORE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("MISSIONCHAT_SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("MISSIONCHAT_TAIL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.TailSize = n
		}
	}
	if v := os.Getenv("MISSIONCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("MISSIONCHAT_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("MISSIONCHAT_DEBUG"); v != "" {
		c.Log.Debug = envBool(v)
	}
	if v := os.Getenv("MISSIONCHAT_UNICODE_FOLD"); v != "" {
		c.Classifier.UnicodeFold = envBool(v)
	}
}

func envBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// StoreLocation returns the file backing the configured backend.
func (c *Config) StoreLocation() string {
	if c.Storage.Backend == BackendSQLite {
		return c.Storage.SQLitePath
	}
	return c.Storage.Path
}

// Lexicon builds the classifier word lists: the lexicon file (if any), then
// inline lists, then built-in defaults for anything still empty.
func (c ClassifierConfig) Lexicon() (classify.Lexicon, error) {
	var lex classify.Lexicon
	if c.LexiconFile != "" {
		fromFile, err := classify.LoadLexiconFile(c.LexiconFile)
		if err != nil {
			return classify.Lexicon{}, err
		}
		lex = fromFile
	}
	if len(c.Greetings) > 0 {
		lex.Greetings = c.Greetings
	}
	if len(c.NegativeWords) > 0 {
		lex.Negative = c.NegativeWords
	}
	if len(c.PositiveWords) > 0 {
		lex.Positive = c.PositiveWords
	}
	return lex.WithDefaults(), nil
}

// NewClassifier builds a classifier from the configured lexicon.
func (c ClassifierConfig) NewClassifier() (*classify.Classifier, error) {
	lex, err := c.Lexicon()
	if err != nil {
		return nil, err
	}
	return classify.New(lex, classify.WithUnicodeFold(c.UnicodeFold)), nil
}

// =============================================================================
// COPY AND DISPLAY
// =============================================================================

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Classifier.Greetings = append([]string(nil), c.Classifier.Greetings...)
	clone.Classifier.NegativeWords = append([]string(nil), c.Classifier.NegativeWords...)
	clone.Classifier.PositiveWords = append([]string(nil), c.Classifier.PositiveWords...)
	return &clone
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config encode error: %v>", err)
	}
	return b.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
