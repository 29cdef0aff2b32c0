package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // Light text
	borderColor  = lipgloss.Color("#6B7280") // Gray

	// Status colors
	statusRunning = lipgloss.Color("#10B981") // Green
	statusPending = lipgloss.Color("#9CA3AF") // Gray
	statusWaiting = lipgloss.Color("#F59E0B") // Amber
	statusStalled = lipgloss.Color("#FB923C") // Orange
	statusExited  = lipgloss.Color("#A78BFA") // Purple

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(mutedColor)

	attentionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	tableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// statusStyle returns the foreground style for a task status cell.
func statusStyle(status string) lipgloss.Style {
	var color lipgloss.Color
	switch status {
	case "running":
		color = statusRunning
	case "waiting":
		color = statusWaiting
	case "stalled":
		color = statusStalled
	case "exited":
		color = statusExited
	default:
		color = statusPending
	}
	return lipgloss.NewStyle().Foreground(color)
}
