package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorMuted   = lipgloss.Color("#626262")
	colorDanger  = lipgloss.Color("#FF5555")
	colorSuccess = lipgloss.Color("#50FA7B")
	colorAccent  = lipgloss.Color("#8BE9FD")

	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(colorPrimary).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	autoStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorDanger)

	remainingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
