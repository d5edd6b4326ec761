package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"vamphunter/internal/config"
	"vamphunter/internal/facts"
	"vamphunter/internal/lifecycle"
	"vamphunter/internal/manifest"
	"vamphunter/internal/session"
	"vamphunter/internal/snapshot"
	"vamphunter/internal/ui"
)

// hunter wires the fact sources, the ranking engine, and the lifecycle
// controller into one session. It also satisfies tui.Controller.
type hunter struct {
	cfg config.Config
	log *ui.Logger
	out io.Writer
}

func newHunter(cfg config.Config) *hunter {
	return &hunter{
		cfg: cfg,
		log: ui.NewLogger(os.Stdout, os.Stderr),
		out: os.Stdout,
	}
}

// Snapshot gathers, normalizes, and ranks the current listening processes.
func (h *hunter) Snapshot() ([]snapshot.Process, error) {
	rows, err := facts.ListeningSockets()
	procs := snapshot.Build(rows, facts.Details)
	snapshot.SortByMemory(procs)
	return procs, err
}

func (h *hunter) Terminate(pid int32, name string, force bool) lifecycle.Outcome {
	return lifecycle.Terminate(pid, name, force)
}

func (h *hunter) KillAll(procs []snapshot.Process) lifecycle.BulkResult {
	return lifecycle.KillAll(procs)
}

// runInteractive drives the snapshot/menu loop until the operator quits.
func (h *hunter) runInteractive() error {
	fmt.Fprintln(h.out, ui.Banner())

	// An interrupt while blocked on input ends the session cleanly.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Fprintln(h.out)
		h.log.Info("Exiting...")
		os.Exit(0)
	}()

	ctrl := session.New(os.Stdin, h.out, h.log, session.SystemKiller{}, session.AuxViews{
		Memory:   h.showMemoryStats,
		Runtime:  h.showRuntimeProcesses,
		Packages: h.showPackages,
	})

	for {
		h.log.Info("Scanning for server processes...")
		spin := ui.ScanSpinner(h.out, "Scanning...")
		procs, err := h.Snapshot()
		spin.Stop()
		if err != nil {
			// Enumeration failure degrades to an empty listing.
			h.log.Error("%v", err)
		}

		h.display(procs)
		if ctrl.Run(procs) != session.Refresh {
			return nil
		}
	}
}

func (h *hunter) display(procs []snapshot.Process) {
	if len(procs) == 0 {
		h.log.Success("No server processes found")
		return
	}
	fmt.Fprintln(h.out, ui.ProcessTable(procs))
	fmt.Fprintln(h.out)
	h.log.Info("Total processes: %d", len(procs))
	if total := snapshot.TotalKB(procs); total > 0 {
		h.log.Info("Total estimated memory usage: %s", snapshot.FormatMemory(total))
	}
}

func (h *hunter) showMemoryStats() {
	stats, err := facts.MemoryStats()
	if err != nil {
		h.log.Warning("%v", err)
	}
	fmt.Fprintln(h.out, ui.MemoryStatsTable(stats))
}

func (h *hunter) showRuntimeProcesses() {
	procs, err := facts.RuntimeProcesses(h.cfg.RuntimeFilter, h.cfg.Policy())
	if err != nil {
		h.log.Error("%v", err)
		return
	}
	relevant := snapshot.FilterRelevant(procs)
	if len(relevant) == 0 {
		h.log.Success("No dev runtime processes found")
		return
	}
	snapshot.SortByResident(relevant)
	top := snapshot.Top(relevant, h.cfg.TopLimit)
	fmt.Fprintln(h.out, ui.RuntimeTable(top))
	h.log.Highlight("Showing top %d of %d dev runtime processes", len(top), len(relevant))
}

func (h *hunter) showPackages() {
	cwd, err := os.Getwd()
	if err != nil {
		h.log.Error("resolve working directory: %v", err)
		return
	}
	pkgs, err := manifest.Scan(cwd, h.cfg.ManifestDepth)
	if err != nil {
		h.log.Error("scan package manifests: %v", err)
		return
	}
	if len(pkgs) == 0 {
		h.log.Info("No package manifests found under %s", cwd)
		return
	}
	fmt.Fprintln(h.out, ui.PackageTable(pkgs))
}
