package facts

import (
	"fmt"
	"strconv"
	"strings"

	gnet "github.com/shirou/gopsutil/v4/net"

	"vamphunter/internal/snapshot"
)

// lsofMinFields is the column count of a well-formed `lsof -iTCP` row:
// COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME (LISTEN).
const lsofMinFields = 10

// ListeningSockets enumerates processes holding TCP sockets in LISTEN
// state. The gopsutil connection table is the primary source; if it is
// unavailable (commonly a permissions issue) the lsof fallback runs
// instead. On total failure the caller gets an empty result and the error
// as a diagnostic; it must not abort the session.
func ListeningSockets() ([]snapshot.Listing, error) {
	conns, err := listConnections()
	if err == nil {
		return listingsFromConnections(conns), nil
	}

	out, lsofErr := runCommand("lsof", "-iTCP", "-sTCP:LISTEN", "-P", "-n")
	if lsofErr != nil {
		return nil, fmt.Errorf("enumerate listening sockets: %w (lsof fallback: %v)", err, lsofErr)
	}
	return parseLsofOutput(out), nil
}

func listingsFromConnections(conns []gnet.ConnectionStat) []snapshot.Listing {
	rows := make([]snapshot.Listing, 0, len(conns))
	for _, conn := range conns {
		if conn.Status != "LISTEN" || conn.Pid <= 0 {
			continue
		}
		rows = append(rows, snapshot.Listing{
			PID:  conn.Pid,
			Name: processName(conn.Pid),
			Port: formatEndpoint(conn.Laddr),
		})
	}
	return rows
}

func processName(pid int32) string {
	h, err := openProcess(pid)
	if err != nil {
		return "unknown"
	}
	name, err := h.Name()
	if err != nil || name == "" {
		return "unknown"
	}
	return name
}

func formatEndpoint(addr gnet.Addr) string {
	ip := addr.IP
	switch ip {
	case "", "0.0.0.0", "::", "*":
		ip = "*"
	}
	return fmt.Sprintf("%s:%d", ip, addr.Port)
}

// parseLsofOutput extracts (pid, name, port) triples from tabular lsof
// output. The header line is skipped; rows with too few fields or a
// non-numeric PID are expected noise and dropped silently.
func parseLsofOutput(out string) []snapshot.Listing {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) <= 1 {
		return nil
	}

	rows := make([]snapshot.Listing, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < lsofMinFields {
			continue
		}
		pid, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			continue
		}
		rows = append(rows, snapshot.Listing{
			PID:  int32(pid),
			Name: fields[0],
			Port: fields[8],
		})
	}
	return rows
}
