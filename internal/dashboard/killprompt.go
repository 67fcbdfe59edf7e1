package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sourcli/sour/internal/metrics"
	"github.com/sourcli/sour/internal/proctl"
	"github.com/sourcli/sour/internal/state"
)

// promptState holds the kill prompt: the ranked process list captured when
// the prompt opened, and the text input for the 1-based selection.
type promptState struct {
	input     textinput.Model
	processes []metrics.ProcessEntry
}

func newPromptState(processes []metrics.ProcessEntry) promptState {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.Prompt = "> "
	ti.CharLimit = 4
	ti.Width = 6
	ti.Focus()
	return promptState{input: ti, processes: processes}
}

// enterKillPrompt pauses the refresh loop and opens the selection prompt
// over the process list currently in the store. The request flag is
// cleared here so the prompt fires exactly once per key press.
func (m *Model) enterKillPrompt(st state.DashboardState) {
	m.store.Update(func(s *state.DashboardState) {
		s.KillRequested = false
	})
	m.prompt = newPromptState(st.Processes)
	m.mode = modePrompt
	m.status = ""
}

// handlePromptKey routes keys while the kill prompt is open.
func (m *Model) handlePromptKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc", KeyQuitAlt:
		m.exitPrompt("Kill cancelled.")
		return true, nil
	case "enter":
		return true, m.confirmSelection()
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return true, cmd
}

// confirmSelection validates the typed index and either cancels, rejects
// the input, or launches the asynchronous kill.
func (m *Model) confirmSelection() tea.Cmd {
	raw := strings.TrimSpace(m.prompt.input.Value())

	idx, err := strconv.Atoi(raw)
	if err != nil {
		m.exitPrompt(fmt.Sprintf("Invalid selection: %q is not a number.", raw))
		return nil
	}
	if idx == 0 {
		m.exitPrompt("Kill cancelled.")
		return nil
	}
	if idx < 1 || idx > len(m.prompt.processes) {
		m.exitPrompt(fmt.Sprintf("Invalid selection: %d is out of range.", idx))
		return nil
	}

	entry := m.prompt.processes[idx-1]
	m.mode = modeKilling
	m.status = fmt.Sprintf("Terminating %s (PID %d)...", entry.Name, entry.PID)
	return m.killCmd(entry)
}

// exitPrompt returns to the live dashboard, reporting what happened.
func (m *Model) exitPrompt(status string) {
	m.status = status
	m.prompt = promptState{}
	m.mode = modeDashboard
}

// killCmd terminates the selected process tree off the UI goroutine and
// reports the outcome back as a message.
func (m *Model) killCmd(entry metrics.ProcessEntry) tea.Cmd {
	ctx := m.ctx
	ctl := m.ctl
	timeout := m.killTimeout
	log := m.log
	return func() tea.Msg {
		outcome := proctl.KillTree(ctx, ctl, entry.PID, entry.Name, timeout, log)
		return killDoneMsg{outcome: outcome}
	}
}
