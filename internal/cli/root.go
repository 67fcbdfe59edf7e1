package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands
var (
	configFlag  string
	noColorFlag bool
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sour",
	Short: "Interactive system monitor for the local host",
	Long: `sour is an interactive terminal dashboard for local host metrics.

It samples CPU, memory, disk, network, and per-process usage in the
background and renders a live view with color-coded severity.

Keyboard shortcuts:
  k           Kill a process from the ranked list
  n           Show the network panel and run a speed test
  f           Freeze / unfreeze the display
  q / Ctrl+C  Quit

Examples:
  sour
  sour --interval 500ms
  sour --top 15`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(configFlag, dashIntervalFlag, dashTopFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default: .sour.yaml discovery)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
