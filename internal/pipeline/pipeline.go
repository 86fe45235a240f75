// Package pipeline drives the sidecar-aware normalization flow over a media
// tree: walk, convert or copy, resolve sidecars, stamp metadata, report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/vmunix/mediaport/internal/convert"
	"github.com/vmunix/mediaport/internal/metadata"
	"github.com/vmunix/mediaport/internal/scan"
	"github.com/vmunix/mediaport/pkg/takeout"
)

// Pipeline wires the converter and the metadata applier over directory
// walks. All processing is sequential: one file at a time, one blocking
// tool invocation at a time.
type Pipeline struct {
	conv *convert.Converter
	meta *metadata.Applier
	log  *slog.Logger
}

// New creates a Pipeline.
func New(conv *convert.Converter, meta *metadata.Applier, log *slog.Logger) *Pipeline {
	return &Pipeline{conv: conv, meta: meta, log: log}
}

// Process normalizes every supported media file under inputDir into
// outputDir, mirroring relative paths, and returns the folded report. The
// summary is also persisted as report.txt in the output directory; failure
// to write it is logged, not fatal.
func (p *Pipeline) Process(ctx context.Context, inputDir, outputDir string) (*Report, error) {
	report := NewReport(absPath(inputDir), absPath(outputDir))
	report.StartedAt = time.Now()

	err := scan.Walk(inputDir, func(path, ext string) error {
		p.log.Info("processing file", "path", path)
		outcome := p.processFile(ctx, inputDir, outputDir, path, ext)
		if outcome.Err != nil {
			p.log.Error("processing failed", "path", path, "error", outcome.Err)
		}
		report.Add(outcome)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input: %w", err)
	}
	report.FinishedAt = time.Now()

	if path, err := report.Write(); err != nil {
		p.log.Error("failed to write report", "error", err)
	} else {
		p.log.Info("report written", "path", path)
	}
	return report, nil
}

// processFile runs one file through the per-file state machine: relative
// path, normalize, sidecar, metadata. Any recoverable error lands in the
// outcome; the walk itself never stops for one file.
func (p *Pipeline) processFile(ctx context.Context, inputDir, outputDir, path, ext string) Outcome {
	outcome := Outcome{Path: path, ExtBefore: ext, ExtAfter: ext}

	rec, err := scan.NewRecord(inputDir, path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	action := convert.ActionFor(ext)
	dst := convert.OutputPath(outputDir, rec.RelPath, action)
	outcome.OutputPath = dst
	outcome.ExtAfter = scan.Ext(dst)

	if _, err := os.Stat(dst); err == nil {
		p.log.Warn("output path already exists, overwriting", "path", dst)
	}

	res, err := p.conv.Convert(ctx, action, path, dst)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Bytes = res.Bytes

	if sidecarPath := takeout.FindSidecar(path); sidecarPath != "" {
		md, err := takeout.Load(sidecarPath)
		if err != nil {
			p.log.Warn("could not parse sidecar, continuing without metadata", "path", sidecarPath, "error", err)
			md = takeout.Metadata{}
		}
		if err := p.meta.ApplySidecar(ctx, dst, md); err != nil {
			outcome.Err = err
			return outcome
		}
	} else if res.Converted {
		if err := p.meta.Clone(ctx, path, dst); err != nil {
			outcome.Err = err
			return outcome
		}
	} else {
		p.log.Info("no sidecar found, copy preserves original metadata", "path", path)
	}

	return outcome
}

// Retry re-converts the failed videos in paths: each must live under
// baseDir, its mp4 lands under outputDir mirroring the relative path, and
// tags are cloned from the source afterwards. Entries that are missing or
// outside baseDir are recorded as failures and skipped.
func (p *Pipeline) Retry(ctx context.Context, paths []string, baseDir, outputDir string, showProgress bool) (*Report, error) {
	report := NewReport(absPath(baseDir), absPath(outputDir))
	report.StartedAt = time.Now()

	bar := newBar(len(paths), "retrying videos", showProgress)
	for _, path := range paths {
		report.Add(p.retryFile(ctx, path, baseDir, outputDir))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	report.FinishedAt = time.Now()

	p.log.Info("retry finished", "succeeded", report.Succeeded, "total", report.Total)
	return report, nil
}

func (p *Pipeline) retryFile(ctx context.Context, path, baseDir, outputDir string) Outcome {
	outcome := Outcome{Path: path, ExtBefore: scan.Ext(path), ExtAfter: ".mp4"}

	if _, err := os.Stat(path); err != nil {
		outcome.Err = fmt.Errorf("stat source: %w", err)
		p.log.Error("file does not exist", "path", path)
		return outcome
	}

	rec, err := scan.NewRecord(baseDir, path)
	if err != nil {
		outcome.Err = err
		p.log.Error("file is not under the base directory", "path", path, "base", baseDir)
		return outcome
	}

	dst := convert.OutputPath(outputDir, rec.RelPath, convert.ActionConvertVideo)
	outcome.OutputPath = dst

	if _, err := p.conv.Convert(ctx, convert.ActionConvertVideo, path, dst); err != nil {
		outcome.Err = err
		p.log.Error("conversion failed", "path", path, "error", err)
		return outcome
	}
	if err := p.meta.Clone(ctx, path, dst); err != nil {
		outcome.Err = err
		p.log.Error("metadata clone failed", "path", path, "error", err)
		return outcome
	}

	p.log.Info("successfully processed", "path", path)
	return outcome
}

// ConvertInPlace converts every .heic under root to a .jpg beside it,
// clones the tags from the original, and removes the original once both
// steps succeeded. With keepOriginals the .heic files are left in place.
func (p *Pipeline) ConvertInPlace(ctx context.Context, root string, keepOriginals, showProgress bool) (*Report, error) {
	paths, err := scan.Find(root, ".heic")
	if err != nil {
		return nil, fmt.Errorf("scan for heic files: %w", err)
	}

	report := NewReport(absPath(root), absPath(root))
	report.StartedAt = time.Now()

	bar := newBar(len(paths), "converting heic", showProgress)
	for _, path := range paths {
		report.Add(p.convertInPlaceFile(ctx, path, keepOriginals))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	report.FinishedAt = time.Now()

	return report, nil
}

func (p *Pipeline) convertInPlaceFile(ctx context.Context, path string, keepOriginal bool) Outcome {
	outcome := Outcome{Path: path, ExtBefore: ".heic", ExtAfter: ".jpg"}

	dst := strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	outcome.OutputPath = dst

	res, err := p.conv.Convert(ctx, convert.ActionConvertImage, path, dst)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Bytes = res.Bytes

	if err := p.meta.Clone(ctx, path, dst); err != nil {
		outcome.Err = err
		return outcome
	}

	if !keepOriginal {
		if err := os.Remove(path); err != nil {
			outcome.Err = fmt.Errorf("remove original: %w", err)
			p.log.Warn("could not remove original", "path", path, "error", err)
			return outcome
		}
	}
	return outcome
}

func newBar(total int, description string, show bool) *progressbar.ProgressBar {
	if !show {
		return nil
	}
	return progressbar.Default(int64(total), description)
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
