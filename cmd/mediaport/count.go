package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/scan"
)

var countCmd = &cobra.Command{
	Use:   "count <dir>",
	Short: "Count file extensions under a directory",
	Long: `Recursively count every file extension under the directory. Files
without an extension are bucketed under ` + scan.NoExtension + `.

Examples:
  mediaport count ~/Takeout/Photos
  mediaport count ~/Takeout/Photos --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCountCmd,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCountCmd(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := requireDir(dir); err != nil {
		return err
	}

	counts, err := scan.CountExtensions(dir)
	if err != nil {
		return fmt.Errorf("count extensions: %w", err)
	}
	sorted := scan.SortedCounts(counts)

	if jsonOutput {
		printJSON(sorted)
		return nil
	}

	fmt.Printf("File extension counts for %s:\n\n", dir)
	total := 0
	for _, c := range sorted {
		fmt.Printf("  %-16s %s\n", c.Ext, color.CyanString("%d", c.Count))
		total += c.Count
	}
	fmt.Printf("\n%s files total\n", color.GreenString("%d", total))
	return nil
}
