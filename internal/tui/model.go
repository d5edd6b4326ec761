package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vamphunter/internal/lifecycle"
	"vamphunter/internal/snapshot"
)

// Controller defines the engine behaviour the TUI needs.
type Controller interface {
	Snapshot() ([]snapshot.Process, error)
	Terminate(pid int32, name string, force bool) lifecycle.Outcome
	KillAll(procs []snapshot.Process) lifecycle.BulkResult
}

// pending is the confirmation the next y/n keypress answers.
type pending int

const (
	pendingNone pending = iota
	pendingKill
	pendingForce
	pendingKillAll
)

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller

	list      list.Model
	processes []snapshot.Process

	statusMsg string
	confirm   pending
	target    snapshot.Process

	err     error
	loading bool

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller) *Model {
	delegate := list.NewDefaultDelegate()
	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Listening processes"
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.DisableQuitKeybindings()

	return &Model{
		controller: ctrl,
		list:       lst,
		statusMsg:  "Scanning…",
		loading:    true,
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller) error {
	m := New(ctrl)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return loadSnapshotCmd(m.controller)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 4 {
			m.list.SetSize(msg.Width, msg.Height-4)
		}

	case snapshotLoadedMsg:
		m.loading = false
		m.err = nil
		m.processes = msg.processes
		items := make([]list.Item, 0, len(msg.processes))
		for _, proc := range msg.processes {
			items = append(items, processItem{Process: proc})
		}
		m.list.SetItems(items)
		m.lastUpdated = time.Now()
		m.statusMsg = fmt.Sprintf("%d processes, %s total. r refresh, k kill, a kill all, q quit.",
			len(msg.processes), snapshot.FormatMemory(snapshot.TotalKB(msg.processes)))

	case killDoneMsg:
		m.statusMsg = outcomeLine(msg.outcome)
		if !msg.outcome.OK() && msg.outcome.Status != lifecycle.StatusNotFound && !msg.forced {
			m.confirm = pendingForce
			m.target = msg.target()
			m.statusMsg += " — force kill? y/n"
			return m, nil
		}
		m.loading = true
		return m, loadSnapshotCmd(m.controller)

	case killAllDoneMsg:
		m.statusMsg = msg.result.Summary()
		m.loading = true
		return m, loadSnapshotCmd(m.controller)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		if m.confirm != pendingNone {
			return m.answerConfirm(msg.String())
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.statusMsg = "Scanning…"
			return m, loadSnapshotCmd(m.controller)
		case "k", "enter":
			if proc := m.currentProcess(); proc != nil {
				m.confirm = pendingKill
				m.target = *proc
				m.statusMsg = fmt.Sprintf("Kill %s (pid %d, %s)? y/n",
					proc.Name, proc.PID, proc.FormattedMemory())
			}
		case "a":
			if len(m.processes) > 0 {
				m.confirm = pendingKillAll
				m.statusMsg = fmt.Sprintf("Kill ALL %d processes? y/n", len(m.processes))
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) answerConfirm(key string) (tea.Model, tea.Cmd) {
	action := m.confirm
	m.confirm = pendingNone
	if key != "y" {
		m.statusMsg = "Cancelled"
		return m, nil
	}
	switch action {
	case pendingKill:
		return m, killCmd(m.controller, m.target, false)
	case pendingForce:
		return m, killCmd(m.controller, m.target, true)
	case pendingKillAll:
		return m, killAllCmd(m.controller, m.processes)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	if m.confirm != pendingNone {
		statusStyle = statusStyle.Foreground(lipgloss.Color("214"))
	}
	b.WriteString(statusStyle.Render(m.statusMsg))
	b.WriteByte('\n')

	if m.loading {
		b.WriteString("Scanning for listening processes…\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	}

	if len(m.list.Items()) == 0 && !m.loading && m.err == nil {
		b.WriteString("No server processes found.\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteByte('\n')
	}

	if current := m.currentProcess(); current != nil {
		detail := fmt.Sprintf(
			"pid=%d port=%s memory=%s\ncmd=%s",
			current.PID,
			current.Port,
			current.FormattedMemory(),
			current.Command,
		)
		detailStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginBottom(1)
		b.WriteString(detailStyle.Render(detail))
		b.WriteByte('\n')
	}

	help := "Commands: q quit • r refresh • k kill • a kill all"
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • last scan %s", m.lastUpdated.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// processItem adapts snapshot.Process to the bubbles list item interface.
type processItem struct {
	Process snapshot.Process
}

func (p processItem) Title() string {
	return fmt.Sprintf("[pid=%d] %s on %s (%s)",
		p.Process.PID, p.Process.Name, p.Process.Port, p.Process.FormattedMemory())
}

func (p processItem) Description() string {
	return p.Process.Command
}

func (p processItem) FilterValue() string {
	return fmt.Sprintf("%d %s %s", p.Process.PID, p.Process.Name, p.Process.Port)
}

func (m *Model) currentProcess() *snapshot.Process {
	if len(m.processes) == 0 {
		return nil
	}
	idx := m.list.Index()
	if idx < 0 || idx >= len(m.processes) {
		return nil
	}
	return &m.processes[idx]
}

func outcomeLine(o lifecycle.Outcome) string {
	switch o.Status {
	case lifecycle.StatusTerminated:
		return fmt.Sprintf("Terminated %s (pid %d)", o.Name, o.PID)
	case lifecycle.StatusForceKilled:
		return fmt.Sprintf("Force killed %s (pid %d)", o.Name, o.PID)
	case lifecycle.StatusNotFound:
		return fmt.Sprintf("%s (pid %d) not found", o.Name, o.PID)
	case lifecycle.StatusPermissionDenied:
		return fmt.Sprintf("Access denied killing %s (pid %d)", o.Name, o.PID)
	default:
		return fmt.Sprintf("Failed to kill %s (pid %d): %v", o.Name, o.PID, o.Err)
	}
}

type snapshotLoadedMsg struct {
	processes []snapshot.Process
}

type killDoneMsg struct {
	outcome lifecycle.Outcome
	forced  bool
}

func (m killDoneMsg) target() snapshot.Process {
	return snapshot.Process{PID: m.outcome.PID, Name: m.outcome.Name}
}

type killAllDoneMsg struct {
	result lifecycle.BulkResult
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func loadSnapshotCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		procs, err := ctrl.Snapshot()
		if err != nil {
			return errMsg{err}
		}
		return snapshotLoadedMsg{processes: procs}
	}
}

func killCmd(ctrl Controller, proc snapshot.Process, force bool) tea.Cmd {
	return func() tea.Msg {
		return killDoneMsg{outcome: ctrl.Terminate(proc.PID, proc.Name, force), forced: force}
	}
}

func killAllCmd(ctrl Controller, procs []snapshot.Process) tea.Cmd {
	return func() tea.Msg {
		return killAllDoneMsg{result: ctrl.KillAll(procs)}
	}
}
