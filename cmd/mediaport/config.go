package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediaport/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an annotated example config",
	Long:  "Writes the annotated example configuration, by default to the XDG config location.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate a configuration file",
	Long:  "Validates config syntax, settings, and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configTestCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			printConfigErrors(cerr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid.")
	return nil
}

func printConfigErrors(e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}
	if len(e.Invalid) > 0 {
		fmt.Println("Validation problems:")
		for _, p := range e.Invalid {
			fmt.Printf("  - %s\n", p)
		}
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Printf("  Log        : %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Printf("  Tools      : %s, %s, %s\n", cfg.Tools.Magick, cfg.Tools.FFmpeg, cfg.Tools.ExifTool)
	if cfg.HistoryEnabled() {
		fmt.Printf("  History    : %s\n", cfg.History.Path)
	} else {
		fmt.Println("  History    : disabled")
	}
	fmt.Printf("  Output dir : %s\n", cfg.Process.Output)
}
