package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/config"
	"github.com/vmunix/mediaport/internal/history"
	"github.com/vmunix/mediaport/internal/scan"
)

var retryCmd = &cobra.Command{
	Use:   "retry [list-file]",
	Short: "Re-convert videos that failed in an earlier run",
	Long: `Re-convert failed videos to MP4, preserving each file's path relative
to the base directory, then clone tags from the source file.

The list file holds one video path per line; blank lines are skipped.
With --last-run the failed video paths recorded by the most recent run
are used instead, along with that run's input and output directories
unless overridden.

Examples:
  mediaport retry failed.txt --base-dir ~/Takeout/Photos
  mediaport retry --last-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRetryCmd,
}

func init() {
	rootCmd.AddCommand(retryCmd)
	retryCmd.Flags().String("base-dir", "", "Base directory common to the listed files")
	retryCmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	retryCmd.Flags().Bool("last-run", false, "Retry the failures of the most recent recorded run")
	retryCmd.Flags().Bool("no-history", false, "Skip recording this run in history")
}

func runRetryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	baseDir, _ := cmd.Flags().GetString("base-dir")
	outputDir, _ := cmd.Flags().GetString("output")
	lastRun, _ := cmd.Flags().GetBool("last-run")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	var paths []string
	switch {
	case lastRun:
		if len(args) > 0 {
			return fmt.Errorf("cannot combine a list file with --last-run")
		}
		paths, baseDir, outputDir, err = lastRunFailures(cmd.Context(), cfg, baseDir, outputDir)
		if err != nil {
			return err
		}
	case len(args) == 1:
		if baseDir == "" {
			return fmt.Errorf("--base-dir is required with a list file")
		}
		paths, err = readPathList(args[0])
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide a list file or --last-run")
	}

	if err := requireDir(baseDir); err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = cfg.Process.Output
	}

	if len(paths) == 0 {
		fmt.Println("Nothing to retry.")
		return nil
	}

	p := newPipeline(cfg, log)
	report, err := p.Retry(cmd.Context(), paths, baseDir, outputDir, !jsonOutput)
	if err != nil {
		return err
	}

	recordRun(cmd.Context(), cfg, log, "retry", report, noHistory)

	if jsonOutput {
		printJSON(reportJSON(report))
		return nil
	}

	fmt.Printf("Processed %d out of %d files successfully.\n", report.Succeeded, report.Total)
	if report.FailedCount() > 0 {
		fmt.Println("\nStill failing:")
		for _, f := range report.Failures {
			fmt.Printf("  %s\n", f.Path)
		}
	}
	return nil
}

func readPathList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}

// lastRunFailures pulls the video failures of the most recent recorded run,
// defaulting the base and output directories to that run's unless set.
func lastRunFailures(ctx context.Context, cfg *config.Config, baseDir, outputDir string) ([]string, string, string, error) {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, "", "", fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	run, err := store.LastRun(ctx, "")
	if err != nil {
		return nil, "", "", fmt.Errorf("find last run: %w", err)
	}
	failures, err := store.Failures(ctx, run.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("load failures: %w", err)
	}

	var paths []string
	for _, f := range failures {
		switch scan.Ext(f.Path) {
		case ".mov", ".avi":
			paths = append(paths, f.Path)
		}
	}
	if baseDir == "" {
		baseDir = run.InputPath
	}
	if outputDir == "" {
		outputDir = run.OutputPath
	}
	return paths, baseDir, outputDir, nil
}
