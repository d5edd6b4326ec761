package snapshot

import "fmt"

// DetailFunc resolves resident memory (KB) and the full command line for a
// PID. Implementations must degrade to (0, CommandUnavailable) instead of
// failing; Build never drops a listing because its details are missing.
type DetailFunc func(pid int32) (int64, string)

// Build turns raw listing rows into normalized process records. Rows are
// deduplicated by (pid, port) with the first occurrence winning, since
// socket listers report the same socket once per multiplexed connection.
// The dedup set is rebuilt on every call; snapshots share no state.
func Build(rows []Listing, details DetailFunc) []Process {
	seen := make(strset, len(rows))
	procs := make([]Process, 0, len(rows))

	for _, row := range rows {
		key := fmt.Sprintf("%d:%s", row.PID, row.Port)
		if seen.has(key) {
			continue
		}
		seen.add(key)

		memKB := int64(0)
		command := CommandUnavailable
		if details != nil {
			memKB, command = details(row.PID)
		}

		procs = append(procs, Process{
			PID:      row.PID,
			Name:     row.Name,
			Port:     row.Port,
			MemoryKB: memKB,
			Command:  command,
		})
	}

	return procs
}

type strset map[string]struct{}

func (s strset) add(v string) {
	s[v] = struct{}{}
}

func (s strset) has(v string) bool {
	_, ok := s[v]
	return ok
}
