package metrics

import "sort"

// DefaultProcessLimit is the number of entries shown in the process table.
const DefaultProcessLimit = 10

// RankProcesses sorts entries by CPU percent descending and truncates the
// result to limit. The sort is stable, so ties keep the provider's
// enumeration order. The input slice is not modified.
func RankProcesses(entries []ProcessEntry, limit int) []ProcessEntry {
	if limit <= 0 {
		limit = DefaultProcessLimit
	}

	ranked := make([]ProcessEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CPUPercent > ranked[j].CPUPercent
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
