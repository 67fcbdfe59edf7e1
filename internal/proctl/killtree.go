package proctl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcli/sour/internal/logger"
)

// Outcome reports what a tree kill did. Per-pid failures are collected,
// not propagated; the dashboard renders Summary as a status line.
type Outcome struct {
	PID         int32
	Name        string
	Terminated  []int32 // pids that received the terminate request
	Forced      []int32 // pids that survived the wait and were force-killed
	AlreadyGone []int32 // pids that exited before we reached them
	Errs        []string
}

// Failed reports whether any pid could not be acted on.
func (o Outcome) Failed() bool {
	return len(o.Errs) > 0
}

// Summary renders a one-line human-readable report.
func (o Outcome) Summary() string {
	target := fmt.Sprintf("PID %d", o.PID)
	if o.Name != "" {
		target = fmt.Sprintf("%s (PID %d)", o.Name, o.PID)
	}

	if o.Failed() {
		return fmt.Sprintf("Kill %s: %s", target, strings.Join(o.Errs, "; "))
	}

	parts := []string{fmt.Sprintf("terminated %s", target)}
	if n := len(o.Terminated) - 1; n > 0 {
		parts = append(parts, fmt.Sprintf("%d descendant(s)", n))
	}
	if len(o.Forced) > 0 {
		parts = append(parts, fmt.Sprintf("%d force-killed", len(o.Forced)))
	}
	return "Killed: " + strings.Join(parts, ", ")
}

// KillTree terminates pid and all of its descendants: descendants first,
// then the parent, a bounded wait for exits, and SIGKILL escalation for
// anything still alive. Already-exited processes are dropped silently;
// permission failures are recorded in the outcome.
func KillTree(ctx context.Context, ctl Control, pid int32, name string, timeout time.Duration, log logger.Logger) Outcome {
	if log == nil {
		log = logger.Noop()
	}
	if timeout <= 0 {
		timeout = DefaultKillTimeout
	}

	outcome := Outcome{PID: pid, Name: name}

	descendants, err := ctl.ListDescendants(ctx, pid)
	if err != nil {
		if IsNotFound(err) {
			outcome.AlreadyGone = append(outcome.AlreadyGone, pid)
			outcome.Errs = append(outcome.Errs, fmt.Sprintf("process %d already exited", pid))
			return outcome
		}
		// Cannot walk the tree; still try the parent itself.
		log.Warn("cannot list descendants of %d: %v", pid, err)
	}

	// Descendants first, then the parent.
	targets := append(descendants, pid)
	for _, target := range targets {
		err := ctl.RequestTerminate(ctx, target)
		switch {
		case err == nil:
			outcome.Terminated = append(outcome.Terminated, target)
		case IsNotFound(err):
			outcome.AlreadyGone = append(outcome.AlreadyGone, target)
		case IsPermissionDenied(err):
			outcome.Errs = append(outcome.Errs, fmt.Sprintf("permission denied for PID %d", target))
		default:
			outcome.Errs = append(outcome.Errs, fmt.Sprintf("terminate PID %d: %v", target, err))
		}
	}

	if len(outcome.Terminated) == 0 {
		return outcome
	}

	alive := ctl.WaitForExit(ctx, outcome.Terminated, timeout)
	for _, straggler := range alive {
		err := ctl.ForceKill(ctx, straggler)
		switch {
		case err == nil:
			outcome.Forced = append(outcome.Forced, straggler)
		case IsNotFound(err):
			// Exited between the wait and the kill.
		case IsPermissionDenied(err):
			outcome.Errs = append(outcome.Errs, fmt.Sprintf("permission denied for PID %d", straggler))
		default:
			outcome.Errs = append(outcome.Errs, fmt.Sprintf("kill PID %d: %v", straggler, err))
		}
	}

	log.Debug("kill tree %d: %d terminated, %d forced, %d errors",
		pid, len(outcome.Terminated), len(outcome.Forced), len(outcome.Errs))
	return outcome
}
