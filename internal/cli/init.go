package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcli/sour/internal/config"
)

var initForce bool

// initCmd creates a starter .sour.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sour.yaml configuration",
	Long: `Write a starter configuration file with the default settings.

Creates .sour.yaml in the current directory (or at --config) with every
setting spelled out, ready to edit.

Examples:
  sour init
  sour init --force
  sour init --config ~/.config/sour/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(configFlag, initForce)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}

func initCommand(path string, force bool) error {
	if path == "" {
		path = config.ConfigFileName
	}
	if err := config.WriteDefault(path, force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
