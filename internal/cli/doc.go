// Package cli implements the sour command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small orchestration function for the actual work:
//
//	sour            - Run the interactive dashboard (the root command)
//	sour kill       - Terminate a process tree by name
//	sour speedtest  - One-shot bandwidth measurement
//	sour init       - Write a starter .sour.yaml
//	sour version    - Print build information
//
// # Dashboard Wiring
//
// The root command assembles the moving parts: a metrics.SystemProvider
// feeding a sampler goroutine, a shared state.Store, the single-flight
// speedtest.Worker, and the Bubble Tea dashboard model reading the store
// on its own refresh tick. Cancelling the program context stops the
// sampler alongside the TUI.
//
// # Flag Handling
//
// Global flags (--config, --no-color) are defined on the root command
// and available to all subcommands. Command-specific flags like
// --interval and --top are defined on individual commands.
package cli
