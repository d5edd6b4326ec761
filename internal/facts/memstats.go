package facts

import (
	"fmt"
	"strconv"
	"strings"

	"vamphunter/internal/snapshot"
)

const (
	bytesPerPage = 4096
	bytesPerMB   = 1024 * 1024
)

// MemoryStats reports aggregate system memory counters. gopsutil is the
// primary source; `vm_stat` page counts are the fallback. Both failing
// degrades to a zeroed snapshot plus the error as a diagnostic.
func MemoryStats() (snapshot.MemoryStats, error) {
	vm, err := virtualMemory()
	if err == nil && vm != nil {
		return snapshot.MemoryStats{
			FreeMB:     vm.Free / bytesPerMB,
			ActiveMB:   vm.Active / bytesPerMB,
			InactiveMB: vm.Inactive / bytesPerMB,
			WiredMB:    vm.Wired / bytesPerMB,
		}, nil
	}

	out, vmstatErr := runCommand("vm_stat")
	if vmstatErr != nil {
		return snapshot.MemoryStats{}, fmt.Errorf("read memory statistics: %w (vm_stat fallback: %v)", err, vmstatErr)
	}
	return parseVMStat(out), nil
}

// parseVMStat reads `vm_stat` key-value output. Lines look like
// "Pages free:   12345.". Unknown keys are ignored and missing keys leave
// their counter zero; a partial snapshot is still a valid snapshot.
func parseVMStat(out string) snapshot.MemoryStats {
	var stats snapshot.MemoryStats
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimSpace(value), ".")
		pages, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		mb := pages * bytesPerPage / bytesPerMB
		switch strings.TrimSpace(key) {
		case "Pages free":
			stats.FreeMB = mb
		case "Pages active":
			stats.ActiveMB = mb
		case "Pages inactive":
			stats.InactiveMB = mb
		case "Pages wired down":
			stats.WiredMB = mb
		case "Pages occupied by compressor":
			stats.CompressedMB = mb
		}
	}
	return stats
}
