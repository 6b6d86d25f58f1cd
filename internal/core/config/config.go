// Package config handles configuration loading and validation for focusflow.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/focusflow/internal/core/styles"
	"github.com/hay-kot/focusflow/internal/core/task"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverJSON   = "json"
	DriverMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	TUI      TUIConfig      `yaml:"tui" json:"tui"`
	DataDir  string         `yaml:"-" json:"data_dir"` // set by caller, not from config file
}

// StorageConfig selects where the task collection is persisted.
type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite, json, memory
	Key    string `yaml:"key" json:"key"`       // snapshot key (sqlite/memory) or file name stem (json)
}

// DatabaseConfig tunes the SQLite connection pool.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns" json:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout" json:"busy_timeout"` // milliseconds
}

// DefaultsConfig prefills the task form.
type DefaultsConfig struct {
	Priority       string `yaml:"priority" json:"priority"`
	TimeAllocation int    `yaml:"time_allocation" json:"time_allocation"` // minutes
}

// TUIConfig holds presentation preferences.
type TUIConfig struct {
	Theme          string `yaml:"theme" json:"theme"`
	ShowCompleted  *bool  `yaml:"show_completed" json:"show_completed"`
	RenderMarkdown *bool  `yaml:"render_markdown" json:"render_markdown"`
}

// ShowCompletedOrDefault reports whether the task list shows completed tasks.
func (c TUIConfig) ShowCompletedOrDefault() bool {
	return c.ShowCompleted == nil || *c.ShowCompleted
}

// RenderMarkdownOrDefault reports whether descriptions are rendered as markdown.
func (c TUIConfig) RenderMarkdownOrDefault() bool {
	return c.RenderMarkdown == nil || *c.RenderMarkdown
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Key:    "tasks",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		Defaults: DefaultsConfig{
			Priority:       string(task.PriorityMedium),
			TimeAllocation: 25,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Defaults.Priority == "" {
		c.Defaults.Priority = defaults.Defaults.Priority
	}
	if c.Defaults.TimeAllocation == 0 {
		c.Defaults.TimeAllocation = defaults.Defaults.TimeAllocation
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// DefaultDraft returns an empty task draft prefilled from Defaults.
func (c *Config) DefaultDraft() task.Draft {
	return task.Draft{
		Priority:       task.Priority(c.Defaults.Priority),
		TimeAllocation: c.Defaults.TimeAllocation,
	}
}
