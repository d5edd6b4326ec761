package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"vamphunter/internal/manifest"
	"vamphunter/internal/snapshot"
)

const (
	maxNameWidth    = 15
	maxPortWidth    = 15
	maxCommandWidth = 50
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...)
}

// ProcessTable renders the listening-process inventory with 1-based row
// IDs matching the session's numeric choices.
func ProcessTable(procs []snapshot.Process) string {
	t := newTable("ID", "PID", "Name", "Port", "Memory", "Command")
	for i, p := range procs {
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(int(p.PID)),
			truncate(p.Name, maxNameWidth),
			truncate(p.Port, maxPortWidth),
			p.FormattedMemory(),
			truncate(p.Command, maxCommandWidth),
		)
	}
	return t.Render()
}

// RuntimeTable renders the dev-runtime sub-view.
func RuntimeTable(procs []snapshot.RuntimeProcess) string {
	t := newTable("User", "PID", "CPU%", "MEM%", "VSZ", "RSS", "Command")
	for _, p := range procs {
		t.Row(
			p.User,
			strconv.Itoa(int(p.PID)),
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%.1f", p.MemPercent),
			snapshot.FormatMemory(p.VirtualKB),
			snapshot.FormatMemory(p.ResidentKB),
			truncate(p.Command, maxCommandWidth),
		)
	}
	return t.Render()
}

// MemoryStatsTable renders the aggregate system memory counters.
func MemoryStatsTable(stats snapshot.MemoryStats) string {
	t := newTable("Counter", "MB")
	t.Row("Free", strconv.FormatUint(stats.FreeMB, 10))
	t.Row("Active", strconv.FormatUint(stats.ActiveMB, 10))
	t.Row("Inactive", strconv.FormatUint(stats.InactiveMB, 10))
	t.Row("Wired", strconv.FormatUint(stats.WiredMB, 10))
	t.Row("Compressed", strconv.FormatUint(stats.CompressedMB, 10))
	return t.Render()
}

// PackageTable renders the manifest sub-view.
func PackageTable(pkgs []manifest.Package) string {
	t := newTable("Name", "Version", "Deps", "Dev server", "Path")
	for _, p := range pkgs {
		dev := ""
		if p.HasDevServer {
			dev = "yes"
		}
		t.Row(p.Name, p.Version, strconv.Itoa(p.Dependencies), dev, truncate(p.Path, maxCommandWidth))
	}
	return t.Render()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
