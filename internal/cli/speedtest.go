package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sourcli/sour/internal/config"
	"github.com/sourcli/sour/internal/dashboard"
	"github.com/sourcli/sour/internal/errors"
	"github.com/sourcli/sour/internal/speedtest"
	"github.com/sourcli/sour/internal/state"
)

// speedtestCmd runs a one-shot bandwidth measurement without the TUI.
var speedtestCmd = &cobra.Command{
	Use:   "speedtest",
	Short: "Measure download and upload bandwidth",
	Long: `Run a one-shot bandwidth measurement against the configured
endpoints and print the result.

The same measurement runs behind the dashboard's 'n' key; this command
is for scripts and quick checks.

Examples:
  sour speedtest
  sour speedtest --config ./custom.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return speedtestCommand(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(speedtestCmd)
}

// speedtestCommand measures bandwidth, streaming per-step progress lines.
func speedtestCommand(ctx context.Context) error {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	transport := speedtest.NewHTTPTransport(cfg.Speedtest.Endpoints, cfg.Speedtest.UploadURL)

	var lastPhase state.SpeedPhase = -1
	result := speedtest.Measure(ctx, transport, cfg.Speedtest.Steps, cfg.Speedtest.ChunkBytes,
		func(p state.SpeedtestProgress) {
			if p.Phase != lastPhase {
				if lastPhase >= 0 {
					fmt.Println()
				}
				fmt.Printf("%s:\n", p.Phase)
				lastPhase = p.Phase
			}
			fmt.Printf("\r  %5.1f%%  %s    ", p.Percent, dashboard.FormatRate(p.Speed))
		})
	fmt.Println()

	if result.Failed() {
		return errors.New(errors.ErrSpeedtest,
			"Speed test failed: "+result.Err,
			"Check connectivity or configure different endpoints in .sour.yaml.")
	}

	fmt.Println()
	fmt.Printf("Download: %s\n", dashboard.FormatRate(result.DownloadBPS))
	fmt.Printf("Upload:   %s\n", dashboard.FormatRate(result.UploadBPS))
	fmt.Println(speedVerdict(result.DownloadBPS))
	return nil
}

// speedVerdict grades the measured download bandwidth.
func speedVerdict(downloadBPS float64) string {
	mbps := downloadBPS * 8 / 1_000_000
	switch {
	case mbps > 100:
		return "Verdict: excellent connection"
	case mbps > 50:
		return "Verdict: good connection"
	case mbps > 20:
		return "Verdict: fair connection"
	default:
		return "Verdict: slow connection"
	}
}
