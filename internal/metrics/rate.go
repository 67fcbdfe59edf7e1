package metrics

// RateBetween derives a throughput rate from two cumulative counter readings.
//
// With no previous reading (prev == nil), or when the elapsed time between
// readings is zero or negative, both rates are zero. Counters are monotonic,
// but a reset (reboot, interface re-creation) can make a delta negative;
// such deltas are clamped to zero so a rate is never negative.
func RateBetween(prev *NetworkCounters, cur NetworkCounters) NetworkRate {
	if prev == nil {
		return NetworkRate{}
	}

	dt := cur.Timestamp.Sub(prev.Timestamp).Seconds()
	if dt <= 0 {
		return NetworkRate{}
	}

	return NetworkRate{
		SentPerSec: counterDelta(prev.BytesSent, cur.BytesSent) / dt,
		RecvPerSec: counterDelta(prev.BytesRecv, cur.BytesRecv) / dt,
	}
}

func counterDelta(old, new uint64) float64 {
	if new < old {
		return 0
	}
	return float64(new - old)
}
