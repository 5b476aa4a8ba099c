package ui

import "github.com/charmbracelet/lipgloss"

// Palette: default text, an accent for keyword names and a muted gray for
// secondary details.
var (
	Accent     = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
	Muted      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	Bold       = lipgloss.NewStyle().Bold(true)
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)

	// Commented renders inactive keywords.
	Commented = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Strikethrough(true)
)
