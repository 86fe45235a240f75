package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/config"
	"github.com/vmunix/mediaport/internal/convert"
	"github.com/vmunix/mediaport/internal/history"
	"github.com/vmunix/mediaport/internal/metadata"
	"github.com/vmunix/mediaport/internal/pipeline"
	"github.com/vmunix/mediaport/internal/runner"
)

var (
	configPath string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "mediaport",
	Short: "Bulk maintenance for exported media trees",
	Long: `mediaport - bulk maintenance for exported photo and video trees

Normalizes an exported media tree into widely playable formats
(HEIC to JPEG, QuickTime/AVI to MP4), re-applies capture metadata
from Takeout JSON sidecars, and ships the small companion tools:
extension census, redundant-transcode pruning, failed-conversion
retry, tree diffing, and in-place HEIC conversion.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: discovered)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediaport {{.Version}}\n")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// loadConfig loads the explicit --config path or a discovered file, falling
// back to built-in defaults when none exists.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger on stderr so command output on
// stdout stays clean.
func newLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func newPipeline(cfg *config.Config, log *slog.Logger) *pipeline.Pipeline {
	run := runner.NewExec(log.With("component", "runner"))
	conv := convert.New(run, cfg.Tools.Magick, cfg.Tools.FFmpeg, log.With("component", "convert"))
	meta := metadata.New(run, cfg.Tools.ExifTool, log.With("component", "metadata"))
	return pipeline.New(conv, meta, log.With("component", "pipeline"))
}

// requireDir fails with a command error when path is not an existing
// directory. Commands treat a bad top-level directory as fatal.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory %s does not exist", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// recordRun persists the report into the history database. History is best
// effort: any problem logs a warning and the command result stands.
func recordRun(ctx context.Context, cfg *config.Config, log *slog.Logger, command string, report *pipeline.Report, skip bool) {
	if skip || !cfg.HistoryEnabled() {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		log.Warn("history unavailable, run not recorded", "path", cfg.History.Path, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	run := &history.Run{
		Command:    command,
		InputPath:  report.InputDir,
		OutputPath: report.OutputDir,
		Total:      report.Total,
		Succeeded:  report.Succeeded,
		Failed:     report.FailedCount(),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	failures := make([]history.Failure, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, history.Failure{Path: f.Path, Reason: f.Err.Error()})
	}

	if err := store.RecordRun(ctx, run, failures); err != nil {
		log.Warn("could not record run", "error", err)
		return
	}
	log.Debug("run recorded", "id", run.ID, "command", command)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

type reportView struct {
	InputDir  string         `json:"input_dir"`
	OutputDir string         `json:"output_dir"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Bytes     int64          `json:"bytes"`
	ExtCounts map[string]int `json:"ext_counts"`
	Failures  []failureView  `json:"failures,omitempty"`
}

type failureView struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// reportJSON flattens a report for machine output; extension pairs render
// as "in -> out" keys.
func reportJSON(r *pipeline.Report) reportView {
	v := reportView{
		InputDir:  r.InputDir,
		OutputDir: r.OutputDir,
		Total:     r.Total,
		Succeeded: r.Succeeded,
		Failed:    r.FailedCount(),
		Bytes:     r.Bytes,
		ExtCounts: make(map[string]int, len(r.ExtCounts)),
	}
	for pair, n := range r.ExtCounts {
		key := pair.Before
		if pair.After != pair.Before {
			key = pair.Before + " -> " + pair.After
		}
		v.ExtCounts[key] = n
	}
	for _, f := range r.Failures {
		v.Failures = append(v.Failures, failureView{Path: f.Path, Reason: f.Err.Error()})
	}
	return v
}
