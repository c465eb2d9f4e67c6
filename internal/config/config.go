// Package config holds the eventboard settings file and its environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// DBPath is the SQLite database file. ":memory:" is accepted.
	DBPath string `yaml:"db_path"`

	// ColumnWidth is the pixel width of one day column on the board.
	ColumnWidth float64 `yaml:"column_width"`

	// Gesture thresholds in pixels. A drag or resize at or below its
	// threshold is treated as a click and persists nothing.
	DragThresholdPx   float64 `yaml:"drag_threshold_px"`
	ResizeThresholdPx float64 `yaml:"resize_threshold_px"`

	LogCalls bool `yaml:"log_calls"`

	// OrganizerEmail goes into ORGANIZER of exported calendars.
	OrganizerEmail string `yaml:"organizer_email,omitempty"`
}

// DefaultDir is ~/.eventboard, or the working directory when the home
// directory cannot be resolved.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".eventboard"
	}
	return filepath.Join(home, ".eventboard")
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:            filepath.Join(DefaultDir(), "eventboard.db"),
		ColumnWidth:       60,
		DragThresholdPx:   5,
		ResizeThresholdPx: 10,
	}
}

// Normalize replaces zero or negative values with defaults so partial
// files still load.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.ColumnWidth <= 0 {
		c.ColumnWidth = def.ColumnWidth
	}
	if c.DragThresholdPx <= 0 {
		c.DragThresholdPx = def.DragThresholdPx
	}
	if c.ResizeThresholdPx <= 0 {
		c.ResizeThresholdPx = def.ResizeThresholdPx
	}
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg as YAML with 0600 permissions, creating the directory.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Path returns EVENTBOARD_CONFIG or ~/.eventboard/config.yaml.
func Path() string {
	if v := os.Getenv("EVENTBOARD_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// LoadConfig loads the config file from Path and applies environment
// overrides on top.
func LoadConfig() (*Config, error) {
	cfg, err := Load(Path())
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("EVENTBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("EVENTBOARD_COLUMN_WIDTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ColumnWidth = f
		}
	}
	if v := os.Getenv("EVENTBOARD_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
}
