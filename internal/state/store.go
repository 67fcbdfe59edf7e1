package state

import (
	"sync"

	"github.com/sourcli/sour/internal/metrics"
)

// Store guards DashboardState behind a RWMutex. Readers get a consistent
// copy, writers apply a single mutation atomically; no actor ever observes
// a torn mix of old and new fields.
type Store struct {
	mu sync.RWMutex
	s  DashboardState
}

// NewStore creates a store with zero-valued state.
func NewStore() *Store {
	return &Store{}
}

// Read returns a consistent copy of the current state. Slices are copied so
// callers cannot alias the store's internals; progress and result pointers
// are duplicated for the same reason.
func (st *Store) Read() DashboardState {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s := st.s
	if s.Processes != nil {
		s.Processes = append([]metrics.ProcessEntry(nil), s.Processes...)
	}
	if s.Disks != nil {
		s.Disks = append([]metrics.DiskUsage(nil), s.Disks...)
	}
	if s.SpeedtestProgress != nil {
		p := *s.SpeedtestProgress
		s.SpeedtestProgress = &p
	}
	if s.SpeedtestResult != nil {
		r := *s.SpeedtestResult
		s.SpeedtestResult = &r
	}
	return s
}

// Update applies a single mutation atomically.
func (st *Store) Update(fn func(*DashboardState)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fn(&st.s)
}

// BeginSpeedtest attempts to claim the speed-test slot. Returns false if a
// run is already in flight (single-flight: a request while running is a
// no-op). On success the request flag and prior result are cleared and the
// running flag is set, all under one lock acquisition.
func (st *Store) BeginSpeedtest() bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.s.SpeedtestRunning {
		st.s.SpeedtestRequested = false
		return false
	}
	st.s.SpeedtestRunning = true
	st.s.SpeedtestRequested = false
	st.s.SpeedtestProgress = nil
	st.s.SpeedtestResult = nil
	return true
}

// EndSpeedtest publishes the final result and releases the speed-test slot.
func (st *Store) EndSpeedtest(result SpeedtestResult) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.s.SpeedtestRunning = false
	st.s.SpeedtestProgress = nil
	st.s.SpeedtestResult = &result
}
