package sampler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcli/sour/internal/logger"
	"github.com/sourcli/sour/internal/metrics"
	"github.com/sourcli/sour/internal/state"
)

// fakeProvider returns scripted readings and counts calls.
type fakeProvider struct {
	snapshots []metrics.Snapshot
	counters  []metrics.NetworkCounters
	processes []metrics.ProcessEntry
	disks     []metrics.DiskUsage

	countersErr  error
	processesErr error
	disksErr     error

	snapCalls    int
	counterCalls int
}

func (f *fakeProvider) SampleHost(ctx context.Context) (metrics.Snapshot, error) {
	idx := f.snapCalls
	f.snapCalls++
	if idx >= len(f.snapshots) {
		if len(f.snapshots) == 0 {
			return metrics.Snapshot{}, nil
		}
		idx = len(f.snapshots) - 1
	}
	return f.snapshots[idx], nil
}

func (f *fakeProvider) ReadNetworkCounters(ctx context.Context) (metrics.NetworkCounters, error) {
	if f.countersErr != nil {
		return metrics.NetworkCounters{}, f.countersErr
	}
	idx := f.counterCalls
	f.counterCalls++
	if idx >= len(f.counters) {
		if len(f.counters) == 0 {
			return metrics.NetworkCounters{}, nil
		}
		idx = len(f.counters) - 1
	}
	return f.counters[idx], nil
}

func (f *fakeProvider) ListProcesses(ctx context.Context) ([]metrics.ProcessEntry, error) {
	return f.processes, f.processesErr
}

func (f *fakeProvider) ListDiskUsages(ctx context.Context) ([]metrics.DiskUsage, error) {
	return f.disks, f.disksErr
}

func TestTickWritesSnapshotAndRankedProcesses(t *testing.T) {
	provider := &fakeProvider{
		snapshots: []metrics.Snapshot{{CPUPercent: 42, Hostname: "box"}},
		processes: []metrics.ProcessEntry{
			{PID: 1, CPUPercent: 5},
			{PID: 2, CPUPercent: 80},
			{PID: 3, CPUPercent: 30},
			{PID: 4, CPUPercent: 95},
			{PID: 5, CPUPercent: 10},
		},
		disks: []metrics.DiskUsage{{Mount: "/", UsedPercent: 61}},
	}
	store := state.NewStore()
	s := New(provider, store, time.Second, 3, logger.Noop())

	s.tick(context.Background())

	got := store.Read()
	assert.Equal(t, "box", got.Snapshot.Hostname)
	assert.Equal(t, 42.0, got.Snapshot.CPUPercent)
	require.Len(t, got.Processes, 3)
	assert.Equal(t, 95.0, got.Processes[0].CPUPercent)
	assert.Equal(t, 80.0, got.Processes[1].CPUPercent)
	assert.Equal(t, 30.0, got.Processes[2].CPUPercent)
	require.Len(t, got.Disks, 1)
}

func TestFirstTickHasZeroRate(t *testing.T) {
	provider := &fakeProvider{
		counters: []metrics.NetworkCounters{
			{BytesSent: 100000, BytesRecv: 200000, Timestamp: time.Now()},
		},
	}
	store := state.NewStore()
	s := New(provider, store, time.Second, 10, logger.Noop())

	s.tick(context.Background())

	got := store.Read()
	assert.Zero(t, got.Rate.SentPerSec)
	assert.Zero(t, got.Rate.RecvPerSec)
}

func TestRateDerivedFromCounterDelta(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{
		counters: []metrics.NetworkCounters{
			{BytesSent: 1000, BytesRecv: 500, Timestamp: t0},
			{BytesSent: 3000, BytesRecv: 500, Timestamp: t0.Add(2 * time.Second)},
		},
	}
	store := state.NewStore()
	s := New(provider, store, time.Second, 10, logger.Noop())

	s.tick(context.Background())
	s.tick(context.Background())

	got := store.Read()
	assert.InDelta(t, 1000.0, got.Rate.SentPerSec, 0.001)
	assert.Zero(t, got.Rate.RecvPerSec)
}

func TestFrozenSkipsViewWritesButTracksCounters(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{
		snapshots: []metrics.Snapshot{{CPUPercent: 10}, {CPUPercent: 90}},
		counters: []metrics.NetworkCounters{
			{BytesSent: 0, Timestamp: t0},
			{BytesSent: 1_000_000, Timestamp: t0.Add(time.Second)},
			{BytesSent: 1_001_000, Timestamp: t0.Add(2 * time.Second)},
		},
	}
	store := state.NewStore()
	s := New(provider, store, time.Second, 10, logger.Noop())

	s.tick(context.Background())
	before := store.Read()

	store.Update(func(ds *state.DashboardState) { ds.Frozen = true })
	s.tick(context.Background())

	frozen := store.Read()
	assert.Equal(t, before.Snapshot.CPUPercent, frozen.Snapshot.CPUPercent)
	assert.Equal(t, before.Rate, frozen.Rate)

	// Unfreeze: the rate reflects only the delta since the frozen tick,
	// because the sampler kept advancing its private counters.
	store.Update(func(ds *state.DashboardState) { ds.Frozen = false })
	s.tick(context.Background())

	after := store.Read()
	assert.InDelta(t, 1000.0, after.Rate.SentPerSec, 0.001)
}

func TestRepeatedFrozenTicksNeverChangeViewData(t *testing.T) {
	provider := &fakeProvider{
		snapshots: []metrics.Snapshot{{CPUPercent: 10}, {CPUPercent: 50}, {CPUPercent: 99}},
		processes: []metrics.ProcessEntry{{PID: 1, CPUPercent: 1}},
	}
	store := state.NewStore()
	s := New(provider, store, time.Second, 10, logger.Noop())

	s.tick(context.Background())
	store.Update(func(ds *state.DashboardState) { ds.Frozen = true })
	before := store.Read()

	for i := 0; i < 5; i++ {
		s.tick(context.Background())
	}

	after := store.Read()
	assert.Equal(t, before.Snapshot, after.Snapshot)
	assert.Equal(t, before.Processes, after.Processes)
	assert.Equal(t, before.Rate, after.Rate)
}

func TestProviderFailuresAreNonFatal(t *testing.T) {
	provider := &fakeProvider{
		snapshots:    []metrics.Snapshot{{CPUPercent: 33}},
		countersErr:  errors.New("no interfaces"),
		processesErr: errors.New("proc unreadable"),
		disksErr:     errors.New("mounts unreadable"),
	}
	store := state.NewStore()
	log := logger.NewBufferLogger()
	s := New(provider, store, time.Second, 10, log)

	s.tick(context.Background())

	got := store.Read()
	assert.Equal(t, 33.0, got.Snapshot.CPUPercent)
	assert.Empty(t, got.Processes)
	assert.Empty(t, got.Disks)
	assert.Zero(t, got.Rate)
	assert.True(t, log.HasLevel("warn"))
}

func TestCounterErrorKeepsPreviousReading(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	provider := &fakeProvider{
		counters: []metrics.NetworkCounters{
			{BytesSent: 1000, Timestamp: t0},
			{BytesSent: 2000, Timestamp: t0.Add(time.Second)},
		},
	}
	store := state.NewStore()
	s := New(provider, store, time.Second, 10, logger.Noop())

	s.tick(context.Background())

	// A transient read failure must not reset rate derivation.
	provider.countersErr = errors.New("transient")
	s.tick(context.Background())
	assert.Zero(t, store.Read().Rate.SentPerSec)

	provider.countersErr = nil
	s.tick(context.Background())
	assert.InDelta(t, 1000.0, store.Read().Rate.SentPerSec, 0.001)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	provider := &fakeProvider{}
	store := state.NewStore()
	s := New(provider, store, 10*time.Millisecond, 10, logger.Noop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sampler did not stop after context cancellation")
	}
}
