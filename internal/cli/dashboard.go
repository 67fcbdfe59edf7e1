package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/sourcli/sour/internal/config"
	"github.com/sourcli/sour/internal/dashboard"
	"github.com/sourcli/sour/internal/errors"
	"github.com/sourcli/sour/internal/logger"
	"github.com/sourcli/sour/internal/metrics"
	"github.com/sourcli/sour/internal/proctl"
	"github.com/sourcli/sour/internal/sampler"
	"github.com/sourcli/sour/internal/speedtest"
	"github.com/sourcli/sour/internal/state"
)

var (
	dashIntervalFlag string
	dashTopFlag      int
)

func init() {
	rootCmd.Flags().StringVar(&dashIntervalFlag, "interval", "", "view refresh interval (e.g., 250ms, 1s)")
	rootCmd.Flags().IntVar(&dashTopFlag, "top", 0, "number of processes in the ranked list")
}

// dashboardCommand wires the sampler, store, and TUI together and runs
// the program until the user quits.
func dashboardCommand(configPath, intervalFlag string, topFlag int) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if intervalFlag != "" {
		parsed, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", intervalFlag),
				"Use a valid duration like 250ms, 1s, or 5s.")
		}
		if parsed < 50*time.Millisecond {
			return errors.New(errors.ErrConfig,
				"Interval too short",
				"Minimum refresh interval is 50ms.")
		}
		cfg.RefreshInterval = parsed
	}
	if topFlag > 0 {
		cfg.ProcessLimit = topFlag
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrInput,
			"Standard output is not a terminal",
			"Run sour directly in an interactive terminal.")
	}
	setupColorProfile()

	log := logger.Default()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := metrics.NewSystemProvider(log)
	provider.RootPath = cfg.RootPath

	store := state.NewStore()

	smp := sampler.New(provider, store, cfg.SampleInterval, cfg.ProcessLimit, log)
	go smp.Run(ctx)

	transport := speedtest.NewHTTPTransport(cfg.Speedtest.Endpoints, cfg.Speedtest.UploadURL)
	worker := speedtest.NewWorker(store, transport, cfg.Speedtest.Steps, cfg.Speedtest.ChunkBytes, log)

	model := dashboard.NewModel(ctx, store, worker, proctl.NewSystemControl(),
		cfg.RefreshInterval, cfg.KillTimeout, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrInput,
			"Dashboard exited unexpectedly",
			"Check terminal compatibility or run with SOUR_DEBUG=1 for details.")
	}
	return nil
}

// setupColorProfile applies the terminal's color capabilities, honoring
// the --no-color flag.
func setupColorProfile() {
	if noColorFlag {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
