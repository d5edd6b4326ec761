package facts

import (
	"testing"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vamphunter/internal/snapshot"
)

func TestRuntimeProcesses(t *testing.T) {
	resetFactDeps(t)
	procs := map[int32]*fakeProc{
		1: {cmdline: "node server.js", user: "devon", memInfo: &process.MemoryInfoStat{RSS: 4096 * 1024, VMS: 8192 * 1024}},
		2: {cmdline: "Code Helper (Renderer) --type=node", user: "devon", memInfo: &process.MemoryInfoStat{RSS: 1024 * 1024}},
		3: {cmdline: "ruby puma"},
		4: {cmdline: ""},
	}
	listPIDs = func() ([]int32, error) { return []int32{1, 2, 3, 4, 5}, nil }
	openProcess = func(pid int32) (proc, error) {
		p, ok := procs[pid]
		if !ok {
			return nil, errStub
		}
		return p, nil
	}

	policy := snapshot.Policy{Exclude: []string{"code helper"}}
	got, err := RuntimeProcesses("node", policy)
	require.NoError(t, err)

	// Only the two node-matching commands survive the candidate filter;
	// both are returned, with kinds attached, and neither is dropped.
	require.Len(t, got, 2)
	assert.Equal(t, int32(1), got[0].PID)
	assert.Equal(t, snapshot.KindRelevant, got[0].Kind)
	assert.Equal(t, int64(4096), got[0].ResidentKB)
	assert.Equal(t, int64(8192), got[0].VirtualKB)
	assert.Equal(t, "devon", got[0].User)
	assert.Equal(t, snapshot.KindNoise, got[1].Kind)
}

func TestRuntimeProcessesEmptyFilterKeepsEverything(t *testing.T) {
	resetFactDeps(t)
	listPIDs = func() ([]int32, error) { return []int32{7}, nil }
	openProcess = func(int32) (proc, error) {
		return &fakeProc{cmdline: "postgres -D /var/db"}, nil
	}

	got, err := RuntimeProcesses("", snapshot.Policy{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, snapshot.KindRelevant, got[0].Kind)
}

func TestRuntimeProcessesEnumerationFailure(t *testing.T) {
	resetFactDeps(t)

	_, err := RuntimeProcesses("node", snapshot.Policy{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enumerate processes")
}
