// Package state holds the shared dashboard state and the store that
// mediates all cross-actor access to it.
//
// The sampler, the key handler, the speed-test worker, and the render loop
// never share memory directly: every read goes through Store.Read (a
// consistent copy) and every mutation through Store.Update (all-or-nothing
// under the store's lock).
package state

import "github.com/sourcli/sour/internal/metrics"

// SpeedPhase identifies which half of a speed test is running.
type SpeedPhase int

const (
	PhaseDownload SpeedPhase = iota
	PhaseUpload
)

// String returns a human-readable phase label.
func (p SpeedPhase) String() string {
	switch p {
	case PhaseDownload:
		return "download"
	case PhaseUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// SpeedtestProgress is an incremental speed-test reading published by the
// worker after each measurement step.
type SpeedtestProgress struct {
	Phase   SpeedPhase
	Percent float64
	// Speed is the most recent step's throughput in bytes per second.
	Speed float64
}

// SpeedtestResult is the final outcome of a speed-test run. Exactly one
// result is published per completed run. Err is non-empty on failure.
type SpeedtestResult struct {
	DownloadBPS float64
	UploadBPS   float64
	Err         string
}

// Failed reports whether the run ended in an error.
func (r SpeedtestResult) Failed() bool {
	return r.Err != ""
}

// DashboardState is the complete shared view state. It is created once at
// startup and mutated only through Store.
type DashboardState struct {
	Snapshot  metrics.Snapshot
	Rate      metrics.NetworkRate
	Processes []metrics.ProcessEntry
	Disks     []metrics.DiskUsage

	Frozen        bool
	NetworkPanel  bool
	KillRequested bool

	SpeedtestRequested bool
	SpeedtestRunning   bool
	SpeedtestProgress  *SpeedtestProgress
	SpeedtestResult    *SpeedtestResult
}
