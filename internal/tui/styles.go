package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorNavy   = lipgloss.Color("#1B2540")
	ColorGray   = lipgloss.Color("245")
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("42")
	ColorRed    = lipgloss.Color("196")
	ColorOrange = lipgloss.Color("208")
	ColorWhite  = lipgloss.Color("255")
	ColorPurple = lipgloss.Color("141")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	pageTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	deckTitleStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	cardValueStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	navItemStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			PaddingLeft(1)

	navActiveStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorBlue).
			Bold(true).
			PaddingLeft(1)
)

// classColor maps a board class to its accent color.
func classColor(class string) lipgloss.Color {
	switch class {
	case classSuccess, classOnline:
		return ColorGreen
	case classWarning, classFallback:
		return ColorOrange
	case classDanger, classOffline, classError:
		return ColorRed
	default:
		return ColorGray
	}
}
