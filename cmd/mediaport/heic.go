package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var heicCmd = &cobra.Command{
	Use:   "heic <dir>",
	Short: "Convert HEIC images to JPEG in place",
	Long: `Convert every .heic file under the directory to a .jpg beside it,
clone the tags from the original, and remove the original once both
steps succeed.

HEIC files that already contain JPEG bytes (a common mislabeling in
exports) are renamed rather than transcoded.

Examples:
  mediaport heic ~/Takeout/Photos
  mediaport heic ~/Takeout/Photos --keep-originals`,
	Args: cobra.ExactArgs(1),
	RunE: runHeicCmd,
}

func init() {
	rootCmd.AddCommand(heicCmd)
	heicCmd.Flags().Bool("keep-originals", false, "Leave the .heic files in place")
	heicCmd.Flags().Bool("no-history", false, "Skip recording this run in history")
}

func runHeicCmd(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := requireDir(dir); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	keepOriginals, _ := cmd.Flags().GetBool("keep-originals")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	p := newPipeline(cfg, log)
	report, err := p.ConvertInPlace(cmd.Context(), dir, keepOriginals, !jsonOutput)
	if err != nil {
		return err
	}

	recordRun(cmd.Context(), cfg, log, "heic", report, noHistory)

	if jsonOutput {
		printJSON(reportJSON(report))
		return nil
	}

	fmt.Println("\n=== Conversion Summary ===")
	fmt.Printf("  Total .heic files found : %d\n", report.Total)
	fmt.Printf("  Successfully converted  : %d\n", report.Succeeded)
	fmt.Printf("  Failed                  : %d\n", report.FailedCount())
	if report.FailedCount() > 0 {
		fmt.Println("\nFailures:")
		for _, f := range report.Failures {
			fmt.Printf("  %s\n", f.Path)
		}
	}
	return nil
}
