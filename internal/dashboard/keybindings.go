package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sourcli/sour/internal/state"
)

// Key bindings as constants for consistency.
const (
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"
	KeyKill    = "k"
	KeyNetwork = "n"
	KeyFreeze  = "f"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.mode == modePrompt {
		return m.handlePromptKey(msg)
	}
	if m.mode == modeKilling {
		// A kill is in flight; ignore input until its outcome arrives.
		return true, nil
	}

	switch msg.String() {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyFreeze:
		m.store.Update(func(s *state.DashboardState) {
			s.Frozen = !s.Frozen
		})
		return true, nil

	case KeyKill:
		// The prompt itself opens on the next tick, which reads the
		// store and captures the process list shown at that moment.
		m.store.Update(func(s *state.DashboardState) {
			s.KillRequested = true
		})
		return true, nil

	case KeyNetwork:
		m.store.Update(func(s *state.DashboardState) {
			s.NetworkPanel = true
			s.SpeedtestRequested = true
		})
		return true, m.startSpeedtestCmd()
	}

	return false, nil
}

// startSpeedtestCmd launches the speed test worker. The worker's own
// single-flight gate makes repeated presses while a test runs a no-op.
func (m *Model) startSpeedtestCmd() tea.Cmd {
	if m.worker == nil {
		return nil
	}
	ctx := m.ctx
	worker := m.worker
	return func() tea.Msg {
		worker.Start(ctx)
		return nil
	}
}
