package snapshot

import "sort"

// SortByMemory orders process records by resident memory descending.
// The sort is stable: records with equal memory keep their enumeration
// order, including the 0 "unknown" sentinel.
func SortByMemory(procs []Process) {
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].MemoryKB > procs[j].MemoryKB
	})
}

// SortByResident orders runtime records by resident memory descending,
// stable across ties.
func SortByResident(procs []RuntimeProcess) {
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].ResidentKB > procs[j].ResidentKB
	})
}

// TotalKB sums resident memory across a record set. The 0 sentinel
// contributes zero; an all-unknown set totals 0 rather than erroring.
func TotalKB(procs []Process) int64 {
	var total int64
	for _, p := range procs {
		total += p.MemoryKB
	}
	return total
}

// FilterRelevant returns only the records classified as operator-relevant,
// preserving order.
func FilterRelevant(procs []RuntimeProcess) []RuntimeProcess {
	out := make([]RuntimeProcess, 0, len(procs))
	for _, p := range procs {
		if p.Kind == KindRelevant {
			out = append(out, p)
		}
	}
	return out
}

// Top returns at most n leading records from an already sorted set.
// Truncation for display happens here, never inside the sort.
func Top[T any](records []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
