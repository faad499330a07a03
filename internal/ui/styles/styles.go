package styles

import "github.com/charmbracelet/lipgloss"

var (
	Title   = lipgloss.NewStyle().Bold(true)
	Header  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	Footer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	Box     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Loading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AAAAAA"))
	Spinner = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ecae6"))
	Tooltip = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	Faint   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)
