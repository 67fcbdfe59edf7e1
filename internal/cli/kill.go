package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sourcli/sour/internal/config"
	"github.com/sourcli/sour/internal/errors"
	"github.com/sourcli/sour/internal/logger"
	"github.com/sourcli/sour/internal/proctl"
)

var (
	killYesFlag     bool
	killTimeoutFlag string
)

// killCmd terminates a process tree by name without starting the dashboard.
var killCmd = &cobra.Command{
	Use:   "kill <name>",
	Short: "Terminate a process and its children by name",
	Long: `Find a running process by name and terminate its whole process tree.

The name match is a case-insensitive substring match against process
names. Children are terminated before the parent, and anything that
survives the grace period is force-killed.

Examples:
  sour kill chrome
  sour kill stress --yes
  sour kill node --timeout 10s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return killCommand(args[0], killYesFlag, killTimeoutFlag)
	},
}

func init() {
	killCmd.Flags().BoolVarP(&killYesFlag, "yes", "y", false, "skip the confirmation prompt")
	killCmd.Flags().StringVar(&killTimeoutFlag, "timeout", "", "grace period before force-killing (e.g., 5s)")
	rootCmd.AddCommand(killCmd)
}

// killCommand resolves the target, confirms, and kills the tree.
func killCommand(name string, skipConfirm bool, timeoutFlag string) error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}

	timeout := cfg.KillTimeout
	if timeoutFlag != "" {
		parsed, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid timeout: %s", timeoutFlag),
				"Use a valid duration like 5s or 30s.")
		}
		timeout = parsed
	}

	ctx := context.Background()
	pid, procName, err := proctl.FindPidByName(ctx, name)
	if err != nil {
		return err
	}

	if !skipConfirm {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Kill %s (PID %d) and all its children?", procName, pid)).
				Affirmative("Kill").
				Negative("Cancel").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrInput,
				"Confirmation prompt failed",
				"Re-run with --yes to skip the prompt.")
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	outcome := proctl.KillTree(ctx, proctl.NewSystemControl(), pid, procName, timeout, logger.Default())
	fmt.Println(outcome.Summary())
	if outcome.Failed() {
		return errors.New(errors.ErrProcess,
			fmt.Sprintf("Could not fully terminate %s (PID %d)", procName, pid),
			"Some processes may need elevated privileges; try again with sudo.")
	}
	return nil
}
