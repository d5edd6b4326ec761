// Package lifecycle executes termination requests against the OS process
// space. The controller is stateless: escalation (retry with force) is the
// session's decision, never made here.
package lifecycle

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	"vamphunter/internal/snapshot"
)

// Status is the closed set of termination outcomes. Callers switch on it
// instead of unwrapping an error hierarchy.
type Status string

const (
	StatusTerminated       Status = "terminated"
	StatusForceKilled      Status = "force-killed"
	StatusNotFound         Status = "not-found"
	StatusPermissionDenied Status = "permission-denied"
	StatusFailed           Status = "failed"
)

// Outcome reports one termination attempt.
type Outcome struct {
	PID    int32
	Name   string
	Status Status
	Err    error // underlying detail for StatusFailed
}

// OK reports whether the signal was delivered.
func (o Outcome) OK() bool {
	return o.Status == StatusTerminated || o.Status == StatusForceKilled
}

// handle is the slice of gopsutil process behaviour Terminate needs.
type handle interface {
	Terminate() error
	Kill() error
}

// Stubbed in tests.
var openProcess = func(pid int32) (handle, error) {
	return process.NewProcess(pid)
}

// Terminate sends SIGTERM (or SIGKILL when force is set) to pid. Every
// failure maps to a distinct Outcome; nothing here panics or escalates.
func Terminate(pid int32, name string, force bool) Outcome {
	out := Outcome{PID: pid, Name: name}

	h, err := openProcess(pid)
	if err != nil {
		out.Status, out.Err = classifyError(err)
		return out
	}

	if force {
		err = h.Kill()
	} else {
		err = h.Terminate()
	}
	if err != nil {
		out.Status, out.Err = classifyError(err)
		return out
	}

	out.Status = StatusTerminated
	if force {
		out.Status = StatusForceKilled
	}
	return out
}

func classifyError(err error) (Status, error) {
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning), errors.Is(err, syscall.ESRCH):
		return StatusNotFound, nil
	case errors.Is(err, os.ErrPermission), errors.Is(err, syscall.EPERM):
		return StatusPermissionDenied, nil
	default:
		return StatusFailed, err
	}
}

// BulkResult accumulates a kill-all pass.
type BulkResult struct {
	Outcomes []Outcome
	Killed   int
	Total    int
}

// Summary renders the "killed X of Y" accounting line.
func (b BulkResult) Summary() string {
	return fmt.Sprintf("Killed %d/%d processes", b.Killed, b.Total)
}

// KillAll sends a graceful termination to every record sequentially. A
// failed attempt never aborts the remaining ones; all of them are tried.
func KillAll(procs []snapshot.Process) BulkResult {
	result := BulkResult{Total: len(procs), Outcomes: make([]Outcome, 0, len(procs))}
	for _, p := range procs {
		outcome := Terminate(p.PID, p.Name, false)
		if outcome.OK() {
			result.Killed++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}
