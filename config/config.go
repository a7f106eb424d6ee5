// Package config provides configuration loading and management for the
// credence CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete credence configuration
type Config struct {
	Schemas SchemasConfig `yaml:"schemas"`
	Log     LogConfig     `yaml:"log"`
}

// SchemasConfig configures where schema definition files live
type SchemasConfig struct {
	// Path is the directory holding schema definition files (empty =
	// built-in schemas only)
	Path string `yaml:"path"`
	// Pattern matches definition files under Path (doublestar syntax)
	Pattern string `yaml:"pattern"`
	// Watch reloads the registry when definition files change
	Watch bool `yaml:"watch"`
	// Debounce is how long to wait for further file changes before
	// reloading
	Debounce time.Duration `yaml:"debounce"`
}

// LogConfig configures logging output
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Schemas: SchemasConfig{
			Path:     "",
			Pattern:  "**/*.yaml",
			Watch:    false,
			Debounce: 250 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	if c.Schemas.Pattern == "" {
		return fmt.Errorf("schemas.pattern is required")
	}
	if c.Schemas.Debounce < 0 {
		return fmt.Errorf("schemas.debounce must not be negative")
	}
	return nil
}

// SlogLevel maps the configured log level to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Merge overlays non-zero fields from other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Schemas.Path != "" {
		c.Schemas.Path = other.Schemas.Path
	}
	if other.Schemas.Pattern != "" {
		c.Schemas.Pattern = other.Schemas.Pattern
	}
	if other.Schemas.Watch {
		c.Schemas.Watch = true
	}
	if other.Schemas.Debounce != 0 {
		c.Schemas.Debounce = other.Schemas.Debounce
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
