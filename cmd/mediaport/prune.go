package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/scan"
)

var pruneCmd = &cobra.Command{
	Use:   "prune <dir>",
	Short: "Delete mp4 files shadowed by a same-stem image",
	Long: `Some exports place a short video next to each photo (live photos):
IMG_0001.heic plus IMG_0001.mp4. For every .heic or .jpg file under the
directory, delete the same-stem sibling .mp4.

Examples:
  mediaport prune ~/Takeout/Photos --dry-run
  mediaport prune ~/Takeout/Photos`,
	Args: cobra.ExactArgs(1),
	RunE: runPruneCmd,
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().Bool("dry-run", false, "List the mp4 files without deleting them")
}

func runPruneCmd(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := requireDir(dir); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	res, err := scan.Prune(dir, dryRun, log.With("component", "prune"))
	if err != nil {
		return fmt.Errorf("prune: %w", err)
	}

	if jsonOutput {
		printJSON(res)
		return nil
	}

	if dryRun {
		for _, path := range res.Deleted {
			fmt.Printf("Would delete: %s\n", path)
		}
		fmt.Printf("\nSummary: Checked %d image files; %d corresponding .mp4 files would be deleted.\n",
			res.Checked, len(res.Deleted))
		return nil
	}

	for _, path := range res.Deleted {
		fmt.Printf("Deleted: %s\n", path)
	}
	for _, path := range res.Failed {
		fmt.Printf("Failed to delete: %s\n", path)
	}
	fmt.Printf("\nSummary: Checked %d image files and deleted %d corresponding .mp4 files.\n",
		res.Checked, len(res.Deleted))
	return nil
}
