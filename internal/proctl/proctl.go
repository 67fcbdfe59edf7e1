// Package proctl terminates processes and process trees.
//
// The Control interface wraps the OS-level primitives (enumerate
// descendants, terminate, kill, wait); KillTree layers the ordered
// descendants-first termination with bounded wait and SIGKILL escalation
// on top. Permission-denied and already-exited are outcomes to report,
// never errors to propagate.
package proctl

import (
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// DefaultKillTimeout bounds how long a tree kill waits before escalating.
const DefaultKillTimeout = 5 * time.Second

// Control exposes the process-control primitives.
type Control interface {
	// ListDescendants returns the pids of all descendants of pid,
	// children before grandchildren.
	ListDescendants(ctx context.Context, pid int32) ([]int32, error)

	// RequestTerminate asks the process to exit (SIGTERM).
	RequestTerminate(ctx context.Context, pid int32) error

	// ForceKill terminates the process immediately (SIGKILL).
	ForceKill(ctx context.Context, pid int32) error

	// WaitForExit blocks until the pids exit or the timeout elapses and
	// returns the pids still alive.
	WaitForExit(ctx context.Context, pids []int32, timeout time.Duration) []int32
}

// IsNotFound reports whether err means the process already exited.
func IsNotFound(err error) bool {
	return errors.Is(err, process.ErrorProcessNotRunning) ||
		errors.Is(err, syscall.ESRCH) ||
		errors.Is(err, os.ErrProcessDone)
}

// IsPermissionDenied reports whether err means the caller may not signal
// the process.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, syscall.EPERM) || errors.Is(err, os.ErrPermission)
}

// SystemControl implements Control for the local host via gopsutil.
type SystemControl struct {
	// PollInterval is how often WaitForExit re-checks liveness.
	PollInterval time.Duration
}

// NewSystemControl creates a Control for the local host.
func NewSystemControl() *SystemControl {
	return &SystemControl{PollInterval: 100 * time.Millisecond}
}

// ListDescendants walks the process tree breadth-first.
func (c *SystemControl) ListDescendants(ctx context.Context, pid int32) ([]int32, error) {
	root, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}

	var descendants []int32
	queue := []*process.Process{root}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		children, err := p.ChildrenWithContext(ctx)
		if err != nil {
			// Leaf process, or it exited mid-walk; either way there is
			// nothing below it.
			continue
		}
		for _, child := range children {
			descendants = append(descendants, child.Pid)
			queue = append(queue, child)
		}
	}
	return descendants, nil
}

// RequestTerminate sends SIGTERM.
func (c *SystemControl) RequestTerminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.TerminateWithContext(ctx)
}

// ForceKill sends SIGKILL.
func (c *SystemControl) ForceKill(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.KillWithContext(ctx)
}

// WaitForExit polls liveness until every pid is gone or the timeout
// elapses, returning the survivors.
func (c *SystemControl) WaitForExit(ctx context.Context, pids []int32, timeout time.Duration) []int32 {
	interval := c.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	deadline := time.Now().Add(timeout)

	remaining := append([]int32(nil), pids...)
	for {
		remaining = stillAlive(ctx, remaining)
		if len(remaining) == 0 {
			return nil
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return remaining
		}
		time.Sleep(interval)
	}
}

func stillAlive(ctx context.Context, pids []int32) []int32 {
	var alive []int32
	for _, pid := range pids {
		exists, err := process.PidExistsWithContext(ctx, pid)
		if err == nil && exists {
			alive = append(alive, pid)
		}
	}
	return alive
}

// FindPidByName returns the first process whose name contains name
// (case-insensitive). Used by the one-shot kill command.
func FindPidByName(ctx context.Context, name string) (int32, string, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return 0, "", err
	}
	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if name != "" && strings.Contains(strings.ToLower(pname), strings.ToLower(name)) {
			return p.Pid, pname, nil
		}
	}
	return 0, "", process.ErrorProcessNotRunning
}
