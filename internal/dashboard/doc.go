// Package dashboard implements the interactive terminal view for local
// host metrics.
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: Holds view state (the last rendered ViewModel, input mode,
//     the kill prompt)
//   - Update: Processes messages (keystrokes, refresh ticks, kill outcomes)
//   - View: Renders the current state to a string for display
//
// The model is deliberately thin: it never samples the host. A sampler
// goroutine publishes snapshots, rates, and process rankings into a shared
// state.Store, and the model re-reads a consistent copy on each refresh
// tick (default 250ms). Freezing the display simply stops the model from
// rebuilding its ViewModel; the sampler keeps running so throughput rates
// stay correct when the display resumes.
//
// # Message Flow
//
//  1. tickMsg fires at the refresh interval
//  2. onTick() reads the store; a pending kill request opens the prompt,
//     otherwise the ViewModel is rebuilt
//  3. View() re-renders from the ViewModel
//
// Side effects triggered from the keyboard run off the UI goroutine:
// speed tests go through the single-flight speedtest.Worker, and process
// kills run as a tea.Cmd that reports back with a killDoneMsg.
//
// # Keyboard Shortcuts
//
// Keys are defined in keybindings.go:
//
//	k           - Open the kill prompt over the current process list
//	n           - Show the network panel and start a speed test
//	f           - Freeze / unfreeze the display
//	q, Ctrl+C   - Quit
package dashboard
