// Package sampler drives periodic metric collection into the state store.
//
// The sampler runs on its own ticker, decoupled from the render loop, so
// freezing the view never stops the underlying counter tracking. The
// "previous counters" used for rate derivation are private to the sampler;
// no other code path touches them.
package sampler

import (
	"context"
	"time"

	"github.com/sourcli/sour/internal/logger"
	"github.com/sourcli/sour/internal/metrics"
	"github.com/sourcli/sour/internal/state"
)

// DefaultInterval is the sampling cadence.
const DefaultInterval = time.Second

// Sampler pulls snapshots from the metrics provider and writes derived view
// data into the store on each tick.
type Sampler struct {
	provider metrics.Provider
	store    *state.Store
	interval time.Duration
	limit    int
	log      logger.Logger

	// prev holds the last successfully read counters. While the view is
	// frozen the sampler keeps advancing prev so that unfreezing resumes
	// from current counters instead of producing a rate spike.
	prev *metrics.NetworkCounters
}

// New creates a sampler. A zero interval uses DefaultInterval, a
// non-positive limit uses metrics.DefaultProcessLimit.
func New(provider metrics.Provider, store *state.Store, interval time.Duration, limit int, log logger.Logger) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if limit <= 0 {
		limit = metrics.DefaultProcessLimit
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		provider: provider,
		store:    store,
		interval: interval,
		limit:    limit,
		log:      log,
	}
}

// Run samples immediately and then on every tick until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one sampling pass. Counter tracking always runs; view data
// is only written when the dashboard is not frozen.
func (s *Sampler) tick(ctx context.Context) {
	rate := s.advanceCounters(ctx)

	if s.store.Read().Frozen {
		return
	}

	snap, err := s.provider.SampleHost(ctx)
	if err != nil {
		s.log.Warn("host sample failed: %v", err)
	}

	procs, err := s.provider.ListProcesses(ctx)
	if err != nil {
		s.log.Warn("process enumeration failed: %v", err)
		procs = nil
	}
	ranked := metrics.RankProcesses(procs, s.limit)

	disks, err := s.provider.ListDiskUsages(ctx)
	if err != nil {
		s.log.Warn("disk enumeration failed: %v", err)
		disks = nil
	}

	s.store.Update(func(ds *state.DashboardState) {
		ds.Snapshot = snap
		ds.Rate = rate
		ds.Processes = ranked
		ds.Disks = disks
	})
}

// advanceCounters reads the network counters, derives the rate against the
// previous reading, and advances the previous reading. On a read failure
// the previous reading is kept and a zero rate is returned.
func (s *Sampler) advanceCounters(ctx context.Context) metrics.NetworkRate {
	counters, err := s.provider.ReadNetworkCounters(ctx)
	if err != nil {
		s.log.Warn("network counters unavailable: %v", err)
		return metrics.NetworkRate{}
	}

	rate := metrics.RateBetween(s.prev, counters)
	s.prev = &counters
	return rate
}
