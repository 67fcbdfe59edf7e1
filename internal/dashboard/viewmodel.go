package dashboard

import (
	"github.com/sourcli/sour/internal/metrics"
	"github.com/sourcli/sour/internal/state"
)

// ViewModel is the immutable snapshot of everything the renderer draws.
// It is rebuilt from the shared store on each refresh tick unless the
// display is frozen, in which case the previous ViewModel is reused as-is.
type ViewModel struct {
	Snapshot  metrics.Snapshot
	Rate      metrics.NetworkRate
	Processes []metrics.ProcessEntry
	Disks     []metrics.DiskUsage

	Frozen       bool
	NetworkPanel bool

	SpeedtestRunning  bool
	SpeedtestProgress *state.SpeedtestProgress
	SpeedtestResult   *state.SpeedtestResult
}

// BuildViewModel projects the shared dashboard state into a render-ready
// view model. The store's Read already returns defensive copies, so the
// slices and pointers can be held across ticks without racing the sampler.
func BuildViewModel(st state.DashboardState) ViewModel {
	return ViewModel{
		Snapshot:          st.Snapshot,
		Rate:              st.Rate,
		Processes:         st.Processes,
		Disks:             st.Disks,
		Frozen:            st.Frozen,
		NetworkPanel:      st.NetworkPanel,
		SpeedtestRunning:  st.SpeedtestRunning,
		SpeedtestProgress: st.SpeedtestProgress,
		SpeedtestResult:   st.SpeedtestResult,
	}
}
