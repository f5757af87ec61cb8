package render

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue
	ColorMuted   = lipgloss.Color("#9CA3AF") // Gray
	ColorBright  = lipgloss.Color("#FFFFFF") // White
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright).
			Background(ColorPrimary)

	VersionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	CommitTitleStyle = lipgloss.NewStyle().
				Bold(true)

	BodyStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Underline(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)
