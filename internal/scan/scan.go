// Package scan provides filesystem discovery and housekeeping over media
// trees: walking supported media files, counting extensions, and pruning
// redundant live-photo transcodes.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a discovered file does not resolve to a
// relative path under the walk root.
var ErrOutsideRoot = errors.New("file is outside the root directory")

// supportedExtensions are the media types the pipeline accepts, either for
// a plain copy or for conversion.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".mp4":  true,
	".mov":  true,
	".heic": true,
	".avi":  true,
	".gif":  true,
}

// Supported reports whether a lower-cased extension is in the supported
// media set.
func Supported(ext string) bool {
	return supportedExtensions[ext]
}

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Record describes one discovered media file.
type Record struct {
	Path    string // path as discovered
	RelPath string // path relative to the walk root
	Ext     string // lower-cased extension including the dot
}

// NewRecord builds the Record for a file found under root. Fails with
// ErrOutsideRoot when the file does not live under root.
func NewRecord(root, path string) (Record, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return Record{}, fmt.Errorf("relative path for %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Record{}, fmt.Errorf("%s: %w", path, ErrOutsideRoot)
	}
	return Record{Path: path, RelPath: rel, Ext: Ext(path)}, nil
}

// Walk streams every supported media file under root to fn, in lexical
// order. Unsupported extensions are skipped entirely. Returning an error
// from fn stops the walk.
func Walk(root string, fn func(path, ext string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := Ext(path)
		if !Supported(ext) {
			return nil
		}
		return fn(path, ext)
	})
}

// Find collects every file under root with the given lower-cased extension,
// in lexical order.
func Find(root, ext string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || Ext(path) != ext {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
