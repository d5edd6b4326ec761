package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Banner renders the startup header.
func Banner() string {
	title := "🧛 vamphunter — listening-process manager"
	var b strings.Builder
	b.WriteString(bannerStyle.Render(title))
	b.WriteByte('\n')
	b.WriteString(ruleStyle.Render(strings.Repeat("=", len("vamphunter — listening-process manager")+3)))
	b.WriteByte('\n')
	return b.String()
}
