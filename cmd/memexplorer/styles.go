package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor = lipgloss.Color("#7D56F4")
	successColor = lipgloss.Color("#04B575")
	warningColor = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#666666")
	borderColor  = lipgloss.Color("#383838")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	leakValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)
)
