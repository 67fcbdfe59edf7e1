package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcli/sour/internal/state"
)

// promptedModel opens the kill prompt over the seeded process list.
func promptedModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	m, store := newTestModel(t)
	seedStore(store, 10.0)
	store.Update(func(s *state.DashboardState) {
		s.KillRequested = true
	})
	m.onTick()
	require.Equal(t, modePrompt, m.mode)
	return m, store
}

// typeInto feeds a string into the prompt input one key at a time.
func typeInto(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		handled, _ := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		require.True(t, handled)
	}
}

func TestPromptEscCancels(t *testing.T) {
	m, _ := promptedModel(t)

	handled, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.Equal(t, modeDashboard, m.mode)
	assert.Equal(t, "Kill cancelled.", m.status)
}

func TestPromptZeroCancels(t *testing.T) {
	m, _ := promptedModel(t)
	typeInto(t, &m, "0")

	_, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, modeDashboard, m.mode)
	assert.Equal(t, "Kill cancelled.", m.status)
}

func TestPromptNonNumericRejected(t *testing.T) {
	m, _ := promptedModel(t)
	typeInto(t, &m, "abc")

	_, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, modeDashboard, m.mode)
	assert.Contains(t, m.status, "Invalid selection")
	assert.Contains(t, m.status, "not a number")
}

func TestPromptOutOfRangeRejected(t *testing.T) {
	m, _ := promptedModel(t) // two processes seeded
	typeInto(t, &m, "3")

	_, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, modeDashboard, m.mode)
	assert.Contains(t, m.status, "Invalid selection")
	assert.Contains(t, m.status, "out of range")
}

func TestPromptEmptyInputRejected(t *testing.T) {
	m, _ := promptedModel(t)

	_, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, modeDashboard, m.mode)
	assert.Contains(t, m.status, "Invalid selection")
}

func TestPromptValidSelectionKillsProcess(t *testing.T) {
	m, _ := promptedModel(t)
	ctl := m.ctl.(*stubControl)
	typeInto(t, &m, "1")

	_, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, modeKilling, m.mode)
	assert.Contains(t, m.status, "Terminating stress")

	msg := cmd()
	done, ok := msg.(killDoneMsg)
	require.True(t, ok)
	assert.Equal(t, int32(100), done.outcome.PID)
	assert.Equal(t, []int32{100}, ctl.terminated)

	updated, _ := m.Update(done)
	m2 := updated.(Model)
	assert.Equal(t, modeDashboard, m2.mode)
	assert.Equal(t, done.outcome.Summary(), m2.status)
}

func TestPromptSelectionIsOneBased(t *testing.T) {
	m, _ := promptedModel(t)
	ctl := m.ctl.(*stubControl)
	typeInto(t, &m, "2")

	_, cmd := m.handlePromptKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg := cmd()
	done := msg.(killDoneMsg)
	assert.Equal(t, int32(200), done.outcome.PID, "selection 2 maps to the second ranked process")
	assert.Equal(t, []int32{200}, ctl.terminated)
}

func TestPromptViewListsProcesses(t *testing.T) {
	m, _ := promptedModel(t)

	out := m.View()

	assert.Contains(t, out, "Kill a process")
	assert.Contains(t, out, "stress")
	assert.Contains(t, out, "idle")
	assert.Contains(t, out, "0 cancels")
}
