package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sourcli/sour/internal/logger"
	"github.com/sourcli/sour/internal/proctl"
	"github.com/sourcli/sour/internal/speedtest"
	"github.com/sourcli/sour/internal/state"
)

// DefaultRefreshInterval is how often the view re-reads the shared store.
// The sampler runs on its own slower cadence; the render tick only decides
// how quickly fresh samples become visible.
const DefaultRefreshInterval = 250 * time.Millisecond

// inputMode tracks which surface currently owns keyboard input.
type inputMode int

const (
	// modeDashboard is the normal live view.
	modeDashboard inputMode = iota
	// modePrompt is the kill prompt: refresh is paused and keys feed the
	// selection input.
	modePrompt
	// modeKilling is the window between confirming a kill and its result
	// arriving. Keys are swallowed so a stray Enter cannot double-fire.
	modeKilling
)

// tickMsg signals a periodic view refresh.
type tickMsg time.Time

// killDoneMsg carries the outcome of an asynchronous process kill.
type killDoneMsg struct {
	outcome proctl.Outcome
}

// Model is the Bubble Tea model for the dashboard. It never samples the
// host itself: the sampler goroutine publishes into the store, and the
// model reads a consistent copy on each tick.
type Model struct {
	ctx    context.Context
	store  *state.Store
	worker *speedtest.Worker
	ctl    proctl.Control
	log    logger.Logger

	interval    time.Duration
	killTimeout time.Duration

	width  int
	height int

	mode     inputMode
	view     ViewModel
	haveView bool
	prompt   promptState
	status   string
	quitting bool
}

// NewModel creates a dashboard model wired to the shared store.
// The worker and control handle the side effects the view can trigger
// (speed tests and process kills).
func NewModel(ctx context.Context, store *state.Store, worker *speedtest.Worker, ctl proctl.Control, interval, killTimeout time.Duration, log logger.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if killTimeout <= 0 {
		killTimeout = proctl.DefaultKillTimeout
	}
	if log == nil {
		log = logger.Noop()
	}
	return Model{
		ctx:         ctx,
		store:       store,
		worker:      worker,
		ctl:         ctl,
		log:         log,
		interval:    interval,
		killTimeout: killTimeout,
	}
}

// Init starts the refresh tick.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.onTick()
		return m, m.tickCmd()

	case killDoneMsg:
		m.status = msg.outcome.Summary()
		m.mode = modeDashboard
		return m, nil
	}

	return m, nil
}

// View renders the current surface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.mode == modePrompt || m.mode == modeKilling {
		return m.renderKillPrompt()
	}
	return m.renderDashboard()
}

// onTick refreshes the view model from the store. A pending kill request
// wins over a normal refresh so the prompt opens on the very next tick.
func (m *Model) onTick() {
	if m.mode != modeDashboard {
		return
	}

	st := m.store.Read()
	if st.KillRequested {
		m.enterKillPrompt(st)
		return
	}

	if st.Frozen && m.haveView {
		// Re-render the last view unchanged until unfrozen.
		m.view.Frozen = true
		return
	}

	m.view = BuildViewModel(st)
	m.haveView = true
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
