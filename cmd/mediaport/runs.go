package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/history"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `List the runs recorded in the history database, most recent first.

Examples:
  mediaport runs
  mediaport runs --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: runRunsCmd,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list")
}

func runRunsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if jsonOutput {
		printJSON(runs)
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-10s %-8s %-18s %7s %7s %7s\n", "ID", "COMMAND", "STARTED", "TOTAL", "OK", "FAILED")
	for _, r := range runs {
		failed := fmt.Sprintf("%d", r.Failed)
		if r.Failed > 0 {
			failed = color.RedString("%d", r.Failed)
		}
		fmt.Printf("%-10s %-8s %-18s %7d %7d %7s\n",
			shortID(r.ID), r.Command, humanize.Time(r.StartedAt), r.Total, r.Succeeded, failed)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
