// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure. Every setting is optional;
// a missing file or empty section falls back to working defaults.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Tools   ToolsConfig   `toml:"tools"`
	History HistoryConfig `toml:"history"`
	Process ProcessConfig `toml:"process"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ToolsConfig overrides the external tool binaries, either bare names
// resolved from PATH or absolute paths.
type ToolsConfig struct {
	Magick   string `toml:"magick"`
	FFmpeg   string `toml:"ffmpeg"`
	ExifTool string `toml:"exiftool"`
}

type HistoryConfig struct {
	Enabled *bool  `toml:"enabled"`
	Path    string `toml:"path"`
}

type ProcessConfig struct {
	Output string `toml:"output"`
}

// HistoryEnabled reports whether run history should be recorded. Absent
// means enabled.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// Default returns the zero-config defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file, substitutes environment
// variables, applies defaults, and validates the result. Unresolved
// variables and invalid settings are aggregated into a *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cerr := &ConfigError{Path: path, Missing: missing, Invalid: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

// LoadWithoutValidation reads the configuration file and applies defaults,
// skipping validation and unresolved-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

// LoadOrDefault loads the given path, or when path is empty discovers a
// config file in the standard locations. No file anywhere yields the
// built-in defaults rather than an error.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	found, err := Discover()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(found)
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Tools.Magick == "" {
		c.Tools.Magick = "magick"
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Tools.ExifTool == "" {
		c.Tools.ExifTool = "exiftool"
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
	if c.Process.Output == "" {
		c.Process.Output = "output"
	}
}
