package facts

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// fakeProc satisfies the proc interface with canned values.
type fakeProc struct {
	name    string
	cmdline string
	user    string
	cpu     float64
	memPct  float32
	memInfo *process.MemoryInfoStat

	nameErr    error
	cmdlineErr error
	memInfoErr error
}

func (f *fakeProc) Name() (string, error)    { return f.name, f.nameErr }
func (f *fakeProc) Cmdline() (string, error) { return f.cmdline, f.cmdlineErr }

func (f *fakeProc) Username() (string, error) { return f.user, nil }

func (f *fakeProc) CPUPercent() (float64, error) { return f.cpu, nil }

func (f *fakeProc) MemoryPercent() (float32, error) { return f.memPct, nil }
func (f *fakeProc) MemoryInfo() (*process.MemoryInfoStat, error) {
	return f.memInfo, f.memInfoErr
}

var errStub = errors.New("not stubbed")

// resetFactDeps restores every stubbed collaborator after a test.
func resetFactDeps(t *testing.T) {
	t.Helper()
	origRun := runCommand
	origLook := lookPath
	origOpen := openProcess
	origPIDs := listPIDs
	origConns := listConnections
	origVM := virtualMemory
	t.Cleanup(func() {
		runCommand = origRun
		lookPath = origLook
		openProcess = origOpen
		listPIDs = origPIDs
		listConnections = origConns
		virtualMemory = origVM
	})

	runCommand = func(string, ...string) (string, error) { return "", errStub }
	openProcess = func(int32) (proc, error) { return nil, errStub }
	listPIDs = func() ([]int32, error) { return nil, errStub }
	listConnections = func() ([]gnet.ConnectionStat, error) { return nil, errStub }
	virtualMemory = func() (*mem.VirtualMemoryStat, error) { return nil, errStub }
}
