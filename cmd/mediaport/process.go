package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <input-dir>",
	Short: "Normalize a media tree into an output directory",
	Long: `Normalize every supported media file under the input directory into
the output directory, mirroring the folder structure.

HEIC images become JPEGs, QuickTime and AVI videos become MP4s, and
everything else is copied unchanged. When a Takeout JSON sidecar sits
next to a file its capture time, GPS position, and description are
written into the output; converted files without a sidecar get their
tags cloned from the original instead.

A report.txt summarizing the run is written into the output directory.

Examples:
  mediaport process ~/Takeout/Photos
  mediaport process ~/Takeout/Photos --output /media/normalized`,
	Args: cobra.ExactArgs(1),
	RunE: runProcessCmd,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	processCmd.Flags().Bool("no-history", false, "Skip recording this run in history")
}

func runProcessCmd(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	if err := requireDir(inputDir); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.Process.Output
	}
	noHistory, _ := cmd.Flags().GetBool("no-history")

	p := newPipeline(cfg, log)
	report, err := p.Process(cmd.Context(), inputDir, outputDir)
	if err != nil {
		return err
	}

	recordRun(cmd.Context(), cfg, log, "process", report, noHistory)

	if jsonOutput {
		printJSON(reportJSON(report))
		return nil
	}
	fmt.Print(report.Summary())
	return nil
}
