package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the control CLI
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	GameColor    = lipgloss.Color("#43BF6D") // Green - game channel
	ChatColor    = lipgloss.Color("#5FAFFF") // Blue - chat channel
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings, headset off
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 50 // Minimum supported terminal width
	MaxContentWidth  = 90 // Maximum content width before capping
	MixBarWidth      = 30 // Width of the game/chat level bars
)

// Shared styles
var (
	// TitleStyle is for the dashboard title line
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// ModelStyle is for the device model line
	ModelStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// LabelStyle is for field labels (Game, Chat, Volume, ...)
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(10)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// PowerOffStyle marks the headset-off state
	PowerOffStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// ResultStyle is for the last command result line in the dashboard
	ResultStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// ErrorStyle is for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// HelpStyle is for key hints at the bottom of the dashboard
	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// StatusBoxStyle frames the one-shot status output
	StatusBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2)
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
