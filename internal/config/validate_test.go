// internal/config/validate_test.go
package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Defaults(t *testing.T) {
	errs := Default().Validate()
	assert.Empty(t, errs, "expected no errors for default config")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "verbose"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log.level"), "expected log.level error, got %v", errs)
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "yaml"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log.format"), "expected log.format error, got %v", errs)
}

func TestValidate_HistoryPathIsDirectory(t *testing.T) {
	cfg := Default()
	cfg.History.Path = t.TempDir()
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "history.path"), "expected history.path error, got %v", errs)
}

func TestValidate_AbsoluteToolMissing(t *testing.T) {
	cfg := Default()
	cfg.Tools.FFmpeg = filepath.Join(t.TempDir(), "no-such-ffmpeg")
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "tools.ffmpeg"), "expected tools.ffmpeg error, got %v", errs)
}

func TestValidate_AbsoluteToolExists(t *testing.T) {
	cfg := Default()
	cfg.Tools.FFmpeg = "/usr/bin/env"
	errs := cfg.Validate()
	assert.Empty(t, errs, "expected no errors, got %v", errs)
}

func TestValidate_BareToolNameNotChecked(t *testing.T) {
	cfg := Default()
	cfg.Tools.Magick = "convert-that-is-not-installed"
	errs := cfg.Validate()
	assert.Empty(t, errs, "bare names are resolved at run time, got %v", errs)
}

// Helper to check for errors containing a specific string.
func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
