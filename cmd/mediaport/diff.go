package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff <dir-a> <dir-b>",
	Short: "List files under dir-a missing from dir-b",
	Long: `Compare two trees by file name and list every file under dir-a whose
name appears nowhere under dir-b. Names are compared Unicode-normalized
so trees written by macOS and Linux line up.

--fuzzy adds a closest-name hint for each missing file, which catches
renamed duplicates like "IMG_1234 (1).jpg". --copy-to copies the
missing files into a directory, preserving their dir-a relative paths.

Examples:
  mediaport diff ~/Takeout/Photos /media/normalized
  mediaport diff ~/Takeout/Photos /media/normalized --fuzzy
  mediaport diff ~/Takeout/Photos /backup --copy-to /restore`,
	Args: cobra.ExactArgs(2),
	RunE: runDiffCmd,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().String("copy-to", "", "Copy missing files into this directory")
	diffCmd.Flags().Bool("fuzzy", false, "Suggest near-matching names for missing files")
}

func runDiffCmd(cmd *cobra.Command, args []string) error {
	left, right := args[0], args[1]
	if err := requireDir(left); err != nil {
		return err
	}
	if err := requireDir(right); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	copyTo, _ := cmd.Flags().GetString("copy-to")
	fuzzy, _ := cmd.Flags().GetBool("fuzzy")

	res, err := diff.Compare(cmd.Context(), left, right, fuzzy)
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Printf("Compared %d files in %s against %d in %s.\n", res.LeftTotal, left, res.RightTotal, right)
		if len(res.Missing) == 0 {
			fmt.Println(color.GreenString("Nothing missing."))
		} else {
			fmt.Printf("\nMissing from %s: %d files\n", right, len(res.Missing))
			for _, m := range res.Missing {
				line := "  " + color.RedString(m.RelPath)
				if m.Hint != "" {
					line += color.YellowString("  (closest: %s)", m.Hint)
				}
				fmt.Println(line)
			}
		}
	}

	if copyTo != "" && len(res.Missing) > 0 {
		copied, failed := diff.CopyMissing(res, copyTo, log.With("component", "diff"))
		if !jsonOutput {
			fmt.Printf("\nCopied %d files to %s", copied, copyTo)
			if failed > 0 {
				fmt.Printf(" (%d failed)", failed)
			}
			fmt.Println()
		}
	}

	if jsonOutput {
		printJSON(res)
	}
	return nil
}
