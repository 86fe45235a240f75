// internal/config/validate.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"text": true, "json": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be text or json; got %q", c.Log.Format))
	}

	if c.History.Path != "" {
		if info, err := os.Stat(c.History.Path); err == nil && info.IsDir() {
			errs = append(errs, fmt.Sprintf("history.path: %q is a directory, expected a database file", c.History.Path))
		}
	}

	// Bare names resolve from PATH at run time; only explicit paths can be
	// checked here.
	tools := []struct {
		field string
		bin   string
	}{
		{"tools.magick", c.Tools.Magick},
		{"tools.ffmpeg", c.Tools.FFmpeg},
		{"tools.exiftool", c.Tools.ExifTool},
	}
	for _, tool := range tools {
		if filepath.IsAbs(tool.bin) {
			if _, err := os.Stat(tool.bin); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %q does not exist", tool.field, tool.bin))
			}
		}
	}

	return errs
}
