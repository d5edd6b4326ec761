package facts

import (
	"errors"
	"strconv"
	"strings"

	"vamphunter/internal/snapshot"
)

// Details resolves resident memory (KB) and the full command line for one
// PID. The gopsutil handle is tried first; if the process vanished, access
// is denied, or the handle returns partial data, a `ps` invocation covers
// that single PID. When both strategies fail the caller still gets the
// zero/placeholder sentinels: a lookup failure never drops the record and
// never aborts the batch.
func Details(pid int32) (int64, string) {
	if memKB, command, err := apiDetails(pid); err == nil {
		return memKB, command
	}
	out, err := runCommand("ps", "-o", "rss=,command=", "-p", strconv.Itoa(int(pid)))
	if err == nil {
		if memKB, command, perr := parsePSRow(out); perr == nil {
			return memKB, command
		}
	}
	return 0, snapshot.CommandUnavailable
}

func apiDetails(pid int32) (int64, string, error) {
	h, err := openProcess(pid)
	if err != nil {
		return 0, "", err
	}
	info, err := h.MemoryInfo()
	if err != nil {
		return 0, "", err
	}
	command, err := h.Cmdline()
	if err != nil {
		return 0, "", err
	}
	if strings.TrimSpace(command) == "" {
		return 0, "", errors.New("empty command line")
	}
	var memKB int64
	if info != nil {
		memKB = int64(info.RSS / 1024)
	}
	return memKB, command, nil
}

// parsePSRow parses the first row of `ps -o rss=,command=` output: an
// integer RSS in KB followed by the command line.
func parsePSRow(out string) (int64, string, error) {
	line := strings.TrimSpace(firstLine(out))
	if line == "" {
		return 0, "", errors.New("empty ps output")
	}
	rssField, rest, _ := strings.Cut(line, " ")
	memKB, err := strconv.ParseInt(rssField, 10, 64)
	if err != nil {
		return 0, "", err
	}
	command := strings.TrimSpace(rest)
	if command == "" {
		command = snapshot.CommandUnavailable
	}
	return memKB, command, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
