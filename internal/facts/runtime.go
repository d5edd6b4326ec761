package facts

import (
	"fmt"
	"strings"

	"vamphunter/internal/snapshot"
)

// RuntimeProcesses scans the full process table for development-runtime
// candidates: processes whose command line contains the filter keyword.
// Each candidate is classified against the policy but never filtered out
// here; callers decide whether to hide KindNoise. Per-process lookup
// errors skip that process only.
func RuntimeProcesses(filter string, policy snapshot.Policy) ([]snapshot.RuntimeProcess, error) {
	pids, err := listPIDs()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	filter = strings.ToLower(strings.TrimSpace(filter))
	procs := make([]snapshot.RuntimeProcess, 0, 16)
	for _, pid := range pids {
		h, err := openProcess(pid)
		if err != nil {
			continue
		}
		command, err := h.Cmdline()
		if err != nil || command == "" {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(command), filter) {
			continue
		}

		rec := snapshot.RuntimeProcess{
			PID:     pid,
			Command: command,
			Kind:    snapshot.Classify(command, policy),
		}
		if user, err := h.Username(); err == nil {
			rec.User = user
		}
		if cpu, err := h.CPUPercent(); err == nil {
			rec.CPUPercent = cpu
		}
		if memPct, err := h.MemoryPercent(); err == nil {
			rec.MemPercent = float64(memPct)
		}
		if info, err := h.MemoryInfo(); err == nil && info != nil {
			rec.VirtualKB = int64(info.VMS / 1024)
			rec.ResidentKB = int64(info.RSS / 1024)
		}
		procs = append(procs, rec)
	}
	return procs, nil
}
