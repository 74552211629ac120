package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Text colors
const (
	ColorRed     = "1"
	ColorGreen   = "2"
	ColorYellow  = "3"
	ColorBlue    = "4"
	ColorMagenta = "5"
	ColorCyan    = "6"

	ColorDarkRed     = "160"
	ColorMediumGreen = "40"
	ColorLightBlue   = "39"
	ColorDimGray     = "240"
	ColorOrange      = "208"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMediumGreen))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkRed)).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLightBlue))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDimGray))

	// Argument vector styles for `ktx args`.
	ProgramStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorMagenta))
	FlagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLightBlue))
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMediumGreen))
	PathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange))
)
