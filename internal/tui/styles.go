package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors (ANSI 256).
const (
	colorAccent = "86"  // titles
	colorBorder = "205" // card border
	colorWin    = "42"
	colorLose   = "196"
	colorMuted  = "241"
)

var styles = struct {
	Card    lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Win     lipgloss.Style
	Lose    lipgloss.Style
	Tie     lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
}{
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(1, 2).
		Width(48),
	Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
	Label:   lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
	Win:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWin)),
	Lose:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorLose)),
	Tie:     lipgloss.NewStyle().Bold(true),
	Info:    lipgloss.NewStyle().Reverse(true).Padding(0, 1),
	Success: lipgloss.NewStyle().Reverse(true).Padding(0, 1).Foreground(lipgloss.Color(colorWin)),
}
