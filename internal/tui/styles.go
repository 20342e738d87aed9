package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader  = lipgloss.Color("12")
	ColorLabel   = lipgloss.Color("245")
	ColorValue   = lipgloss.Color("15")
	ColorMuted   = lipgloss.Color("241")
	ColorOK      = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError   = lipgloss.Color("9")
	ColorBorder  = lipgloss.Color("63")
)

// Direction icons for period-over-period changes.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
)

// Insight icons.
const (
	IconWarning    = "⚠"
	IconInfo       = "ℹ"
	IconSuggestion = "•"
	IconSuccess    = "✓"
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared by renderers.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle  = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	InfoStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	BoxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
)
