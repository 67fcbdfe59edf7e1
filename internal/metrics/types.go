package metrics

import "time"

// Snapshot is a single point-in-time reading of host-level metrics.
// Immutable once produced.
type Snapshot struct {
	CPUPercent  float64
	MemPercent  float64
	DiskPercent float64
	Uptime      time.Duration
	Hostname    string
	Timestamp   time.Time
}

// NetworkCounters holds raw cumulative network counters as reported by the OS.
type NetworkCounters struct {
	BytesSent uint64
	BytesRecv uint64
	Timestamp time.Time
}

// NetworkRate is a derived throughput value in bytes per second.
type NetworkRate struct {
	SentPerSec float64
	RecvPerSec float64
}

// ProcessEntry describes a single process in the ranked table.
type ProcessEntry struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemPercent float64
}

// DiskUsage describes usage of a single mounted filesystem.
type DiskUsage struct {
	Device      string
	Mount       string
	Fstype      string
	UsedPercent float64
	UsedBytes   uint64
	FreeBytes   uint64
	TotalBytes  uint64
}
