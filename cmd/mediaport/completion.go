package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for mediaport.

To load completions:

Bash:
  $ source <(mediaport completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ mediaport completion bash > /etc/bash_completion.d/mediaport
  # macOS:
  $ mediaport completion bash > $(brew --prefix)/etc/bash_completion.d/mediaport

Zsh:
  $ source <(mediaport completion zsh)
  # To load completions for each session, execute once:
  $ mediaport completion zsh > "${fpath[1]}/_mediaport"

Fish:
  $ mediaport completion fish | source
  # To load completions for each session, execute once:
  $ mediaport completion fish > ~/.config/fish/completions/mediaport.fish

PowerShell:
  PS> mediaport completion powershell | Out-String | Invoke-Expression
  # To load completions for each session, execute once:
  PS> mediaport completion powershell > mediaport.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
