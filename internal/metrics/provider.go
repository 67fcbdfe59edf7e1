// Package metrics reads host-level system metrics through gopsutil.
//
// The Provider interface is the only surface the rest of the application
// sees; SystemProvider is the real implementation, and tests substitute
// fakes. A failing sub-read (an unreadable disk, a vanished process) is
// never fatal: the affected field is defaulted or the entry is dropped,
// and sampling continues.
package metrics

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/sourcli/sour/internal/errors"
	"github.com/sourcli/sour/internal/logger"
)

// Provider supplies point-in-time system readings.
type Provider interface {
	// SampleHost returns a host snapshot. Individual fields that cannot be
	// read are left at their zero value; the snapshot itself is always usable.
	SampleHost(ctx context.Context) (Snapshot, error)

	// ReadNetworkCounters returns the raw cumulative network counters summed
	// across all interfaces.
	ReadNetworkCounters(ctx context.Context) (NetworkCounters, error)

	// ListProcesses enumerates running processes. Processes that disappear
	// mid-enumeration are dropped silently.
	ListProcesses(ctx context.Context) ([]ProcessEntry, error)

	// ListDiskUsages returns usage for all mounted filesystems, skipping
	// mounts that cannot be read.
	ListDiskUsages(ctx context.Context) ([]DiskUsage, error)
}

// SystemProvider reads metrics from the local host via gopsutil.
type SystemProvider struct {
	// RootPath is the mount whose usage feeds the snapshot's disk bar.
	RootPath string

	log logger.Logger
}

// NewSystemProvider creates a provider for the local host.
func NewSystemProvider(log logger.Logger) *SystemProvider {
	if log == nil {
		log = logger.Noop()
	}
	return &SystemProvider{RootPath: "/", log: log}
}

// SampleHost reads CPU, memory, disk, uptime, and hostname. Each field is
// read independently; a failure defaults the field and is logged at warn.
func (p *SystemProvider) SampleHost(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Timestamp: time.Now()}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil || len(percents) == 0 {
		p.log.Warn("cpu sample unavailable: %v", err)
	} else {
		snap.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		p.log.Warn("memory sample unavailable: %v", err)
	} else {
		snap.MemPercent = vm.UsedPercent
	}

	if usage, err := disk.UsageWithContext(ctx, p.RootPath); err != nil {
		p.log.Warn("disk sample unavailable for %s: %v", p.RootPath, err)
	} else {
		snap.DiskPercent = usage.UsedPercent
	}

	if info, err := host.InfoWithContext(ctx); err != nil {
		p.log.Warn("host info unavailable: %v", err)
	} else {
		snap.Hostname = info.Hostname
		snap.Uptime = time.Duration(info.Uptime) * time.Second
	}

	return snap, nil
}

// ReadNetworkCounters returns cumulative bytes sent/received across all
// interfaces.
func (p *SystemProvider) ReadNetworkCounters(ctx context.Context) (NetworkCounters, error) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetworkCounters{}, errors.Wrap(err, "Cannot read network counters")
	}
	if len(counters) == 0 {
		return NetworkCounters{}, errors.New(errors.ErrProvider,
			"No network counters reported",
			"The host may have no active network interfaces")
	}

	return NetworkCounters{
		BytesSent: counters[0].BytesSent,
		BytesRecv: counters[0].BytesRecv,
		Timestamp: time.Now(),
	}, nil
}

// ListProcesses enumerates all processes with their CPU and memory shares.
// A process that exits between enumeration and inspection is dropped.
func (p *SystemProvider) ListProcesses(ctx context.Context) ([]ProcessEntry, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot enumerate processes")
	}

	entries := make([]ProcessEntry, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			// Gone or unreadable; drop it.
			continue
		}
		cpuPct, err := proc.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}
		memPct, _ := proc.MemoryPercentWithContext(ctx)

		entries = append(entries, ProcessEntry{
			PID:        proc.Pid,
			Name:       name,
			CPUPercent: cpuPct,
			MemPercent: float64(memPct),
		})
	}
	return entries, nil
}

// ListDiskUsages returns usage for every mounted partition. Unreadable
// mounts (permission denied, stale NFS handles) are skipped.
func (p *SystemProvider) ListDiskUsages(ctx context.Context) ([]DiskUsage, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot list disk partitions")
	}

	usages := make([]DiskUsage, 0, len(parts))
	for _, part := range parts {
		usage, err := disk.UsageWithContext(ctx, part.Mountpoint)
		if err != nil {
			p.log.Debug("skipping unreadable mount %s: %v", part.Mountpoint, err)
			continue
		}
		usages = append(usages, DiskUsage{
			Device:      part.Device,
			Mount:       part.Mountpoint,
			Fstype:      part.Fstype,
			UsedPercent: usage.UsedPercent,
			UsedBytes:   usage.Used,
			FreeBytes:   usage.Free,
			TotalBytes:  usage.Total,
		})
	}
	return usages, nil
}
