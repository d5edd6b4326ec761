// Package session drives the interactive menu over one snapshot at a
// time. It owns the decision protocol only: confirmation gates, bounds
// checks, the retry-with-force offer, and the refresh/quit signals. All
// I/O goes through injected reader/writer boundaries so the protocol is
// testable without a terminal.
package session

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vamphunter/internal/lifecycle"
	"vamphunter/internal/snapshot"
	"vamphunter/internal/ui"
)

// Result tells the outer loop what to do with the current snapshot.
type Result int

const (
	// Quit ends the session.
	Quit Result = iota
	// Refresh discards the snapshot and gathers a new one.
	Refresh
)

// Killer abstracts the lifecycle controller.
type Killer interface {
	Terminate(pid int32, name string, force bool) lifecycle.Outcome
	KillAll(procs []snapshot.Process) lifecycle.BulkResult
}

// SystemKiller is the production Killer.
type SystemKiller struct{}

func (SystemKiller) Terminate(pid int32, name string, force bool) lifecycle.Outcome {
	return lifecycle.Terminate(pid, name, force)
}

func (SystemKiller) KillAll(procs []snapshot.Process) lifecycle.BulkResult {
	return lifecycle.KillAll(procs)
}

// AuxViews routes the optional sub-session letters. A nil handler removes
// its letter from the menu.
type AuxViews struct {
	Memory   func()
	Runtime  func()
	Packages func()
}

// Controller runs the menu loop for one snapshot.
type Controller struct {
	in     *bufio.Scanner
	out    io.Writer
	log    *ui.Logger
	killer Killer
	aux    AuxViews
}

// New wires a Controller to its collaborators.
func New(in io.Reader, out io.Writer, log *ui.Logger, killer Killer, aux AuxViews) *Controller {
	return &Controller{
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log,
		killer: killer,
		aux:    aux,
	}
}

// Run presents the menu until the operator refreshes or quits. An empty
// snapshot ends the session immediately: there is nothing to act on.
// End-of-input is a clean quit, never an error.
func (c *Controller) Run(procs []snapshot.Process) Result {
	if len(procs) == 0 {
		return Quit
	}

	for {
		c.printMenu()
		choice, ok := c.readLine()
		if !ok {
			fmt.Fprintln(c.out)
			c.log.Info("Exiting...")
			return Quit
		}

		switch {
		case choice == "q":
			c.log.Info("Exiting...")
			return Quit
		case choice == "r":
			c.log.Info("Refreshing process list...")
			return Refresh
		case choice == "a":
			c.killAll(procs)
		case choice == "m" && c.aux.Memory != nil:
			c.aux.Memory()
		case choice == "n" && c.aux.Runtime != nil:
			c.aux.Runtime()
		case choice == "p" && c.aux.Packages != nil:
			c.aux.Packages()
		case isNumeric(choice):
			c.killByIndex(procs, choice)
		default:
			c.log.Warning("Invalid choice. Please enter a number, 'a', 'r', or 'q'.")
		}
	}
}

func (c *Controller) printMenu() {
	fmt.Fprintln(c.out, "\nSelect action:")
	fmt.Fprintln(c.out, "  Enter number to kill a specific process")
	fmt.Fprintln(c.out, "  'a' to kill ALL processes")
	if c.aux.Memory != nil {
		fmt.Fprintln(c.out, "  'm' to show system memory stats")
	}
	if c.aux.Runtime != nil {
		fmt.Fprintln(c.out, "  'n' to show dev runtime processes")
	}
	if c.aux.Packages != nil {
		fmt.Fprintln(c.out, "  'p' to scan package manifests")
	}
	fmt.Fprintln(c.out, "  'r' to refresh the list")
	fmt.Fprintln(c.out, "  'q' to quit")
	fmt.Fprint(c.out, "Choice: ")
}

func (c *Controller) killByIndex(procs []snapshot.Process, choice string) {
	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(procs) {
		c.log.Warning("Invalid choice. Please enter a number between 1 and %d, 'a', 'r', or 'q'.", len(procs))
		return
	}
	proc := procs[index-1]

	prompt := fmt.Sprintf("Kill process %s (PID: %d, Memory: %s)? (y/N): ",
		proc.Name, proc.PID, proc.FormattedMemory())
	if !c.confirm(prompt) {
		c.log.Info("Cancelled")
		return
	}

	outcome := c.killer.Terminate(proc.PID, proc.Name, false)
	c.report(outcome)
	if outcome.OK() {
		return
	}

	// One escalation offer; declining leaves the process running.
	if c.confirm("Try force kill? (y/N): ") {
		c.report(c.killer.Terminate(proc.PID, proc.Name, true))
	}
}

func (c *Controller) killAll(procs []snapshot.Process) {
	if !c.confirm("Are you sure you want to kill ALL server processes? (y/N): ") {
		c.log.Info("Cancelled")
		return
	}

	result := c.killer.KillAll(procs)
	for _, outcome := range result.Outcomes {
		if !outcome.OK() {
			c.report(outcome)
		}
	}
	c.log.Success(result.Summary())
}

func (c *Controller) report(outcome lifecycle.Outcome) {
	switch outcome.Status {
	case lifecycle.StatusTerminated:
		c.log.Success("Successfully terminated process %s (PID: %d)", outcome.Name, outcome.PID)
	case lifecycle.StatusForceKilled:
		c.log.Warning("Force killed process %s (PID: %d)", outcome.Name, outcome.PID)
	case lifecycle.StatusNotFound:
		c.log.Error("Process %s (PID: %d) not found", outcome.Name, outcome.PID)
	case lifecycle.StatusPermissionDenied:
		c.log.Error("Access denied when trying to kill process %s (PID: %d)", outcome.Name, outcome.PID)
	default:
		c.log.Error("Error killing process %s (PID: %d): %v", outcome.Name, outcome.PID, outcome.Err)
	}
}

// confirm prompts for a destructive action. Only an explicit affirmative
// proceeds; anything else (including end-of-input) cancels.
func (c *Controller) confirm(prompt string) bool {
	fmt.Fprint(c.out, prompt)
	answer, ok := c.readLine()
	if !ok {
		fmt.Fprintln(c.out)
		return false
	}
	return answer == "y" || answer == "yes"
}

func (c *Controller) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(c.in.Text())), true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
