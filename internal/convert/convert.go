// Package convert normalizes media files into an output tree: HEIC stills
// become JPEGs, QuickTime and AVI videos become MP4s, everything else is
// copied byte for byte with its timestamps preserved.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/mediaport/internal/runner"
)

// Action is the closed set of normalization behaviors.
type Action int

const (
	ActionCopy Action = iota
	ActionConvertImage
	ActionConvertVideo
)

func (a Action) String() string {
	switch a {
	case ActionConvertImage:
		return "convert-image"
	case ActionConvertVideo:
		return "convert-video"
	default:
		return "copy"
	}
}

// ActionFor returns the normalization action for a lower-cased extension.
func ActionFor(ext string) Action {
	switch ext {
	case ".heic":
		return ActionConvertImage
	case ".mov", ".avi":
		return ActionConvertVideo
	default:
		return ActionCopy
	}
}

// OutputPath maps a source-relative path into the output root, applying the
// action's suffix change.
func OutputPath(outputRoot, relPath string, action Action) string {
	out := filepath.Join(outputRoot, relPath)
	switch action {
	case ActionConvertImage:
		return strings.TrimSuffix(out, filepath.Ext(out)) + ".jpg"
	case ActionConvertVideo:
		return strings.TrimSuffix(out, filepath.Ext(out)) + ".mp4"
	default:
		return out
	}
}

// Result describes one completed normalization.
type Result struct {
	OutputPath string
	Action     Action
	Converted  bool  // true only when an external converter transcoded the file
	Bytes      int64 // size of the source file
}

// Converter normalizes files using external tools behind a runner.
type Converter struct {
	run    runner.Runner
	log    *slog.Logger
	magick string
	ffmpeg string
}

// New creates a Converter invoking the given image and video converter
// binaries.
func New(run runner.Runner, magick, ffmpeg string, log *slog.Logger) *Converter {
	return &Converter{run: run, log: log, magick: magick, ffmpeg: ffmpeg}
}

// Convert normalizes src into dst according to action. dst must already
// carry the action's output suffix (see OutputPath). Parent directories are
// created as needed. On a converter failure no output is left behind.
func (c *Converter) Convert(ctx context.Context, action Action, src, dst string) (Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		return Result{}, fmt.Errorf("stat source: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	res := Result{OutputPath: dst, Action: action, Bytes: info.Size()}

	switch action {
	case ActionConvertImage:
		// Some exports label JPEG bytes with a .heic name; those only
		// need to land at the .jpg path, not a transcode.
		if isJPEG(src) {
			c.log.Info("mislabeled HEIC is already JPEG, copying", "path", src)
			if _, err := CopyFile(src, dst); err != nil {
				return Result{}, err
			}
			return res, nil
		}
		c.log.Info("converting image", "src", src, "dst", dst)
		out, err := c.run.Run(ctx, c.magick, "convert", src, "-auto-orient", dst)
		if err != nil {
			_ = os.Remove(dst)
			return Result{}, fmt.Errorf("%w: %s: %v (output: %s)", ErrConversionFailed, src, err, strings.TrimSpace(string(out)))
		}
		res.Converted = true

	case ActionConvertVideo:
		if _, err := c.run.LookPath(c.ffmpeg); err != nil {
			return Result{}, ErrFFmpegNotFound
		}
		c.log.Info("converting video", "src", src, "dst", dst)
		out, err := c.run.Run(ctx, c.ffmpeg, videoArgs(src, dst)...)
		if err != nil {
			_ = os.Remove(dst)
			return Result{}, fmt.Errorf("%w: %s: %v (output: %s)", ErrConversionFailed, src, err, strings.TrimSpace(string(out)))
		}
		res.Converted = true

	default:
		if _, err := CopyFile(src, dst); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// videoArgs builds the ffmpeg invocation. The stream mapping and pixel
// format flags are a correctness contract: map only the first video and
// audio streams, drop data streams, and force 8-bit 4:2:0 chroma so odd
// source containers survive the transcode.
func videoArgs(src, dst string) []string {
	return []string{
		"-y",
		"-hwaccel", "none",
		"-ignore_unknown",
		"-i", src,
		"-map", "0:v:0",
		"-map", "0:a:0",
		"-dn",
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-vf", "format=yuv420p",
		"-c:a", "aac",
		"-strict", "experimental",
		dst,
	}
}

// isJPEG sniffs for the JPEG SOI marker in the first two bytes.
func isJPEG(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	var sig [2]byte
	if _, err := io.ReadFull(f, sig[:]); err != nil {
		return false
	}
	return sig[0] == 0xFF && sig[1] == 0xD8
}

// CopyFile copies src to dst, preserving the source's permission bits and
// modification time. An existing dst is overwritten. Partial output is
// removed on failure.
func CopyFile(src, dst string) (int64, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("%w: stat source: %v", ErrCopyFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrCopyFailed, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: open source: %v", ErrCopyFailed, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("%w: create destination: %v", ErrCopyFailed, err)
	}
	defer func() { _ = dstFile.Close() }()

	size, err := io.Copy(dstFile, srcFile)
	if err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("%w: copy content: %v", ErrCopyFailed, err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("%w: sync: %v", ErrCopyFailed, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return 0, fmt.Errorf("%w: preserve times: %v", ErrCopyFailed, err)
	}

	return size, nil
}
