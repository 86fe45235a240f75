// internal/config/error_test.go
package config

import (
	"strings"
	"testing"
)

func TestConfigError_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/mediaport/config.toml"}
	if e.HasErrors() {
		t.Error("expected HasErrors to be false with nothing recorded")
	}
	if got := e.Error(); got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
}

func TestConfigError_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/mediaport/config.toml",
		Missing: []string{"FFMPEG_PATH", "EXIFTOOL_PATH"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected 'missing environment variables', got %q", got)
	}
	if !strings.Contains(got, "FFMPEG_PATH") || !strings.Contains(got, "EXIFTOOL_PATH") {
		t.Errorf("expected var names in error, got %q", got)
	}
}

func TestConfigError_Invalid(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/mediaport/config.toml",
		Invalid: []string{"log.level: must be one of debug, info, warn, error", "log.format: must be text or json"},
	}
	got := e.Error()
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected 'validation failed', got %q", got)
	}
	if !strings.Contains(got, "log.level") {
		t.Errorf("expected field name in error, got %q", got)
	}
}

func TestConfigError_Both(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/mediaport/config.toml",
		Missing: []string{"FFMPEG_PATH"},
		Invalid: []string{"log.level: invalid"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected missing vars section, got %q", got)
	}
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected validation section, got %q", got)
	}
}
