// Package tui provides the Bubble Tea keymap browser.
package tui

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
var (
	colorForeground = lipgloss.Color("#fcfcfa")
	colorYellow     = lipgloss.Color("#ffd866")
	colorRed        = lipgloss.Color("#ff6188")
	colorMagenta    = lipgloss.Color("#ab9df2")
	colorGray       = lipgloss.Color("#727072")
	colorDimGray    = lipgloss.Color("#5b595c")
)

// Panel styles
var (
	// headerStyle is used for the header panel border
	headerStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorDimGray).
			Padding(0, 1)

	headerLabelStyle = lipgloss.NewStyle().
				Foreground(colorGray)

	headerValueStyle = lipgloss.NewStyle().
				Foreground(colorForeground).
				Bold(true)

	// panelStyle is used for the category list and the actions panel
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorDimGray).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorMagenta).
			Bold(true)

	panelFocusedStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorYellow).
				Padding(0, 1)

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				Italic(true)
)

// Category list styles
var (
	categoryStyle = lipgloss.NewStyle().
			Foreground(colorForeground)

	categorySelectedStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Bold(true)

	categoryCountStyle = lipgloss.NewStyle().
				Foreground(colorGray)
)

// Help text styles
var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	helpSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorDimGray)
)

var (
	emptyStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	filterActiveStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Bold(true)
)

// Floating window styles
var (
	floatingWindowStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.DoubleBorder()).
				BorderForeground(colorMagenta).
				Padding(0, 1)

	floatingTitleStyle = lipgloss.NewStyle().
				Foreground(colorMagenta).
				Bold(true)
)
