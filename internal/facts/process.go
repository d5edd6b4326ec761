package facts

import (
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// proc is the slice of gopsutil process behaviour the fact sources use.
// *process.Process satisfies it; tests substitute fakes.
type proc interface {
	Name() (string, error)
	Cmdline() (string, error)
	Username() (string, error)
	CPUPercent() (float64, error)
	MemoryPercent() (float32, error)
	MemoryInfo() (*process.MemoryInfoStat, error)
}

// Stubbed in tests.
var (
	openProcess = func(pid int32) (proc, error) {
		return process.NewProcess(pid)
	}
	listPIDs = func() ([]int32, error) {
		return process.Pids()
	}
	listConnections = func() ([]gnet.ConnectionStat, error) {
		return gnet.Connections("tcp")
	}
	virtualMemory = func() (*mem.VirtualMemoryStat, error) {
		return mem.VirtualMemory()
	}
)
