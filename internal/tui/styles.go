package tui

import "github.com/charmbracelet/lipgloss"

// The UI sticks to the basic ANSI palette so it degrades cleanly on
// monochrome terminals.
var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	helpStyle  = lipgloss.NewStyle().Faint(true)

	selectedRowStyle = lipgloss.NewStyle().Bold(true)
	errorTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
