package session

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"vamphunter/internal/lifecycle"
	"vamphunter/internal/snapshot"
	"vamphunter/internal/ui"
)

type killCall struct {
	pid   int32
	force bool
}

type fakeKiller struct {
	calls    []killCall
	bulkRuns int
	fail     map[int32]lifecycle.Status // graceful attempts that should fail
}

func (f *fakeKiller) Terminate(pid int32, name string, force bool) lifecycle.Outcome {
	f.calls = append(f.calls, killCall{pid: pid, force: force})
	if !force {
		if status, ok := f.fail[pid]; ok {
			return lifecycle.Outcome{PID: pid, Name: name, Status: status}
		}
	}
	status := lifecycle.StatusTerminated
	if force {
		status = lifecycle.StatusForceKilled
	}
	return lifecycle.Outcome{PID: pid, Name: name, Status: status}
}

func (f *fakeKiller) KillAll(procs []snapshot.Process) lifecycle.BulkResult {
	f.bulkRuns++
	result := lifecycle.BulkResult{Total: len(procs)}
	for _, p := range procs {
		outcome := f.Terminate(p.PID, p.Name, false)
		if outcome.OK() {
			result.Killed++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}

func testProcs() []snapshot.Process {
	return []snapshot.Process{
		{PID: 100, Name: "node", Port: "*:8080", MemoryKB: 2048, Command: "node server.js"},
		{PID: 200, Name: "python", Port: "*:3000", MemoryKB: 100, Command: "python -m http.server"},
	}
}

func runSession(t *testing.T, input string, killer Killer, aux AuxViews) (Result, string) {
	t.Helper()
	var out bytes.Buffer
	ctrl := New(strings.NewReader(input), &out, ui.NewLogger(&out, &out), killer, aux)
	res := ctrl.Run(testProcs())
	return res, out.String()
}

func TestRunQuit(t *testing.T) {
	killer := &fakeKiller{}
	res, out := runSession(t, "q\n", killer, AuxViews{})
	if res != Quit {
		t.Fatalf("expected Quit, got %v", res)
	}
	if !strings.Contains(out, "Exiting...") {
		t.Fatalf("missing exit message in %q", out)
	}
	if len(killer.calls) != 0 {
		t.Fatal("quit must not kill anything")
	}
}

func TestRunEndOfInputQuitsCleanly(t *testing.T) {
	res, _ := runSession(t, "", &fakeKiller{}, AuxViews{})
	if res != Quit {
		t.Fatalf("expected Quit on EOF, got %v", res)
	}
}

func TestRunEmptySnapshotQuits(t *testing.T) {
	var out bytes.Buffer
	ctrl := New(strings.NewReader("q\n"), &out, ui.NewLogger(&out, &out), &fakeKiller{}, AuxViews{})
	if res := ctrl.Run(nil); res != Quit {
		t.Fatalf("expected immediate Quit for empty snapshot, got %v", res)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no prompt for empty snapshot, got %q", out.String())
	}
}

func TestRunRefresh(t *testing.T) {
	res, out := runSession(t, "r\n", &fakeKiller{}, AuxViews{})
	if res != Refresh {
		t.Fatalf("expected Refresh, got %v", res)
	}
	if !strings.Contains(out, "Refreshing process list...") {
		t.Fatalf("missing refresh message in %q", out)
	}
}

func TestRunInvalidInputReprompts(t *testing.T) {
	res, out := runSession(t, "x\nq\n", &fakeKiller{}, AuxViews{})
	if res != Quit {
		t.Fatalf("expected Quit, got %v", res)
	}
	if !strings.Contains(out, "Invalid choice. Please enter a number, 'a', 'r', or 'q'.") {
		t.Fatalf("missing usage hint in %q", out)
	}
}

func TestRunIndexOutOfBounds(t *testing.T) {
	killer := &fakeKiller{}
	_, out := runSession(t, "3\nq\n", killer, AuxViews{})
	if !strings.Contains(out, "between 1 and 2") {
		t.Fatalf("missing bounds hint in %q", out)
	}
	if len(killer.calls) != 0 {
		t.Fatal("out-of-bounds index must not kill anything")
	}
}

func TestSingleKillConfirmed(t *testing.T) {
	killer := &fakeKiller{}
	_, out := runSession(t, "1\ny\nq\n", killer, AuxViews{})

	if len(killer.calls) != 1 {
		t.Fatalf("expected one kill, got %v", killer.calls)
	}
	if killer.calls[0] != (killCall{pid: 100, force: false}) {
		t.Fatalf("unexpected call %v", killer.calls[0])
	}
	if !strings.Contains(out, "Kill process node (PID: 100, Memory: 2.0 MB)? (y/N): ") {
		t.Fatalf("missing confirmation prompt in %q", out)
	}
	if !strings.Contains(out, "Successfully terminated process node (PID: 100)") {
		t.Fatalf("missing success line in %q", out)
	}
}

func TestSingleKillDeclined(t *testing.T) {
	for _, answer := range []string{"n", "no", "", "Y es", "maybe"} {
		killer := &fakeKiller{}
		input := fmt.Sprintf("2\n%s\nq\n", answer)
		_, out := runSession(t, input, killer, AuxViews{})
		if len(killer.calls) != 0 {
			t.Fatalf("answer %q must not kill, got %v", answer, killer.calls)
		}
		if !strings.Contains(out, "Cancelled") {
			t.Fatalf("answer %q missing cancel message in %q", answer, out)
		}
	}
}

func TestSingleKillAffirmativeVariants(t *testing.T) {
	for _, answer := range []string{"y", "Y", "yes", "YES", " yes "} {
		killer := &fakeKiller{}
		input := fmt.Sprintf("1\n%s\nq\n", answer)
		runSession(t, input, killer, AuxViews{})
		if len(killer.calls) != 1 {
			t.Fatalf("answer %q should kill once, got %v", answer, killer.calls)
		}
	}
}

func TestSingleKillFailureOffersForce(t *testing.T) {
	killer := &fakeKiller{fail: map[int32]lifecycle.Status{100: lifecycle.StatusPermissionDenied}}
	_, out := runSession(t, "1\ny\ny\nq\n", killer, AuxViews{})

	want := []killCall{{pid: 100, force: false}, {pid: 100, force: true}}
	if len(killer.calls) != 2 || killer.calls[0] != want[0] || killer.calls[1] != want[1] {
		t.Fatalf("expected graceful then force, got %v", killer.calls)
	}
	if !strings.Contains(out, "Try force kill? (y/N): ") {
		t.Fatalf("missing force prompt in %q", out)
	}
	if !strings.Contains(out, "Access denied") {
		t.Fatalf("missing permission diagnostic in %q", out)
	}
	if !strings.Contains(out, "Force killed process node (PID: 100)") {
		t.Fatalf("missing force-kill line in %q", out)
	}
}

func TestSingleKillFailureForceDeclined(t *testing.T) {
	killer := &fakeKiller{fail: map[int32]lifecycle.Status{100: lifecycle.StatusNotFound}}
	_, _ = runSession(t, "1\ny\nn\nq\n", killer, AuxViews{})

	if len(killer.calls) != 1 {
		t.Fatalf("declining force must stop after graceful attempt, got %v", killer.calls)
	}
}

func TestKillAllConfirmed(t *testing.T) {
	killer := &fakeKiller{fail: map[int32]lifecycle.Status{200: lifecycle.StatusNotFound}}
	_, out := runSession(t, "a\nyes\nq\n", killer, AuxViews{})

	if killer.bulkRuns != 1 {
		t.Fatalf("expected one bulk run, got %d", killer.bulkRuns)
	}
	if len(killer.calls) != 2 {
		t.Fatalf("every record must be attempted, got %v", killer.calls)
	}
	if !strings.Contains(out, "Killed 1/2 processes") {
		t.Fatalf("missing accounting line in %q", out)
	}
}

func TestKillAllDeclined(t *testing.T) {
	killer := &fakeKiller{}
	_, out := runSession(t, "a\nn\nq\n", killer, AuxViews{})

	if killer.bulkRuns != 0 {
		t.Fatal("declined bulk kill must have no side effects")
	}
	if !strings.Contains(out, "Cancelled") {
		t.Fatalf("missing cancel message in %q", out)
	}
}

func TestAuxViewRouting(t *testing.T) {
	var memoryShown, runtimeShown, packagesShown bool
	aux := AuxViews{
		Memory:   func() { memoryShown = true },
		Runtime:  func() { runtimeShown = true },
		Packages: func() { packagesShown = true },
	}
	_, out := runSession(t, "m\nn\np\nq\n", &fakeKiller{}, aux)

	if !memoryShown || !runtimeShown || !packagesShown {
		t.Fatalf("aux views not all routed: m=%t n=%t p=%t", memoryShown, runtimeShown, packagesShown)
	}
	if !strings.Contains(out, "'m' to show system memory stats") {
		t.Fatalf("menu missing aux letters in %q", out)
	}
}

func TestAuxViewDisabledLetterIsInvalid(t *testing.T) {
	_, out := runSession(t, "m\nq\n", &fakeKiller{}, AuxViews{})
	if !strings.Contains(out, "Invalid choice") {
		t.Fatalf("disabled aux letter should warn in %q", out)
	}
	if strings.Contains(out, "'m' to show system memory stats") {
		t.Fatalf("disabled aux letter should be hidden from the menu: %q", out)
	}
}
