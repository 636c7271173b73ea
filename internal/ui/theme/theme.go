// Package theme holds the EduTutor palette and the shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Indigo to violet, as on the web dashboard, over slate.
var (
	Primary   = lipgloss.Color("#667EEA")
	Secondary = lipgloss.Color("#764BA2")
	Accent    = lipgloss.Color("#3B82F6")
	Warning   = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

// ScoreColor grades a percentage: green from 80, amber from 60, red below.
func ScoreColor(score float64) color.Color {
	switch {
	case score >= 80:
		return Success
	case score >= 60:
		return Warning
	default:
		return Error
	}
}

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	// Badge is the brand mark in the header.
	Badge = lipgloss.NewStyle().Bold(true).Foreground(Text).Background(Secondary).Padding(0, 1)
)

// Option and answer states.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

var (
	ButtonActive   = lipgloss.NewStyle().Background(Primary).Foreground(Text).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Foreground(TextDim).Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
)
