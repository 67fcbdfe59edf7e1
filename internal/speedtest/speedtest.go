// Package speedtest implements the asynchronous bandwidth measurement.
//
// A run is two phases, download then upload, each split into a fixed number
// of measurement steps. After every step the worker publishes incremental
// progress into the state store; on completion exactly one result is
// published. Runs are single-flight: starting while a run is in flight is
// a no-op.
package speedtest

import (
	"context"
	"time"

	"github.com/sourcli/sour/internal/logger"
	"github.com/sourcli/sour/internal/state"
)

// Measurement defaults.
const (
	DefaultSteps      = 20
	DefaultChunkBytes = 2 * 1024 * 1024
)

// Transport performs the raw network transfers of a speed test. The real
// implementation is HTTPTransport; tests substitute fakes.
type Transport interface {
	// PickEndpoint selects a reachable measurement endpoint.
	PickEndpoint(ctx context.Context) (string, error)

	// DownloadChunk transfers up to size bytes from the endpoint and
	// returns the number of bytes actually read.
	DownloadChunk(ctx context.Context, endpoint string, size int64) (int64, error)

	// UploadChunk sends size bytes of payload and returns the number of
	// bytes actually written.
	UploadChunk(ctx context.Context, size int64) (int64, error)
}

// Worker runs speed tests against the state store.
type Worker struct {
	store     *state.Store
	transport Transport
	steps     int
	chunk     int64
	log       logger.Logger
}

// NewWorker creates a speed-test worker. Non-positive steps or chunk sizes
// fall back to the defaults.
func NewWorker(store *state.Store, transport Transport, steps int, chunk int64, log logger.Logger) *Worker {
	if steps <= 0 {
		steps = DefaultSteps
	}
	if chunk <= 0 {
		chunk = DefaultChunkBytes
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Worker{
		store:     store,
		transport: transport,
		steps:     steps,
		chunk:     chunk,
		log:       log,
	}
}

// Start launches a run in the background. Returns false without side
// effects (beyond clearing the request flag) when a run is already in
// flight.
func (w *Worker) Start(ctx context.Context) bool {
	if !w.store.BeginSpeedtest() {
		w.log.Debug("speed test already running, request ignored")
		return false
	}

	go w.run(ctx)
	return true
}

// run executes both phases and always publishes exactly one result,
// releasing the running flag even on failure.
func (w *Worker) run(ctx context.Context) {
	result := Measure(ctx, w.transport, w.steps, w.chunk, func(p state.SpeedtestProgress) {
		w.store.Update(func(s *state.DashboardState) {
			progress := p
			s.SpeedtestProgress = &progress
		})
	})

	if result.Failed() {
		w.log.Warn("speed test failed: %s", result.Err)
	} else {
		w.log.Debug("speed test done: down %.0f B/s up %.0f B/s", result.DownloadBPS, result.UploadBPS)
	}
	w.store.EndSpeedtest(result)
}

// Measure runs the two-phase measurement and reports progress after each
// step. The final published percent is exactly 100 on success regardless
// of step count. Any phase error aborts the run and is returned in the
// result; it never panics or propagates.
func Measure(ctx context.Context, transport Transport, steps int, chunk int64, publish func(state.SpeedtestProgress)) state.SpeedtestResult {
	endpoint, err := transport.PickEndpoint(ctx)
	if err != nil {
		return state.SpeedtestResult{Err: "no reachable endpoint: " + err.Error()}
	}

	download, err := runPhase(ctx, state.PhaseDownload, steps, publish, func() (int64, error) {
		return transport.DownloadChunk(ctx, endpoint, chunk)
	})
	if err != nil {
		return state.SpeedtestResult{Err: "download: " + err.Error()}
	}

	upload, err := runPhase(ctx, state.PhaseUpload, steps, publish, func() (int64, error) {
		return transport.UploadChunk(ctx, chunk)
	})
	if err != nil {
		return state.SpeedtestResult{Err: "upload: " + err.Error()}
	}

	return state.SpeedtestResult{DownloadBPS: download, UploadBPS: upload}
}

// runPhase performs steps sequential transfers, publishing progress after
// each, and returns the phase's average throughput in bytes per second.
func runPhase(ctx context.Context, phase state.SpeedPhase, steps int, publish func(state.SpeedtestProgress), step func() (int64, error)) (float64, error) {
	var totalBytes int64
	var totalTime time.Duration

	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		start := time.Now()
		n, err := step()
		elapsed := time.Since(start)
		if err != nil {
			return 0, err
		}

		totalBytes += n
		totalTime += elapsed

		speed := 0.0
		if elapsed > 0 {
			speed = float64(n) / elapsed.Seconds()
		}
		publish(state.SpeedtestProgress{
			Phase:   phase,
			Percent: float64(i) / float64(steps) * 100,
			Speed:   speed,
		})
	}

	if totalTime <= 0 {
		return 0, nil
	}
	return float64(totalBytes) / totalTime.Seconds(), nil
}
