// Package theme holds the palette and the shared lipgloss styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette: near-black surfaces with a rose accent.
var (
	Primary   = lipgloss.Color("#E11D48")
	Secondary = lipgloss.Color("#6366F1")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F5F5F5")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#1A1A1A")
	Border    = lipgloss.Color("#2D2D2D")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func boxed(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
}

var (
	Title    = fg(Primary).Bold(true)
	Subtitle = fg(TextDim)
	Heading  = fg(Text).Bold(true)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Badge    = fg(Primary).Bold(true)

	Card       = boxed(Border)
	AccentCard = boxed(Primary)

	// Timeline and quiz option states.
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Locked     = fg(Border)
	Completed  = fg(Success)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)

	TabActive   = fg(Primary).Bold(true).Underline(true).Padding(0, 1)
	TabInactive = fg(TextDim).Padding(0, 1)

	ChatUser  = fg(Text).Bold(true)
	ChatModel = fg(Secondary)

	ButtonActive = fg(Text).Background(Primary).Bold(true).Padding(0, 2)
)
