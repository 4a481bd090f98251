// Package theme holds the lipgloss palette and shared styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. Muted enough to read on both light and dark terminals.
var (
	Primary   = lipgloss.Color("#5B6EE1")
	Secondary = lipgloss.Color("#2BA89A")
	Accent    = lipgloss.Color("#E8A33D")
	Success   = lipgloss.Color("#3DBE6A")
	Error     = lipgloss.Color("#E5566F")
	Text      = lipgloss.Color("#ECEFF4")
	TextDim   = lipgloss.Color("#8C97A8")
	BgCard    = lipgloss.Color("#222B3A")
	Border    = lipgloss.Color("#3B4658")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Dim      = fg(TextDim)

	// Prompt is the native-language sentence above the template.
	Prompt = fg(Secondary).Bold(true)

	// Blank marks the gap, or the inserted answer after grading.
	Blank = fg(Accent).Bold(true).Underline(true)

	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ProgressFilled = fg(Secondary)
	ProgressEmpty  = fg(Border)
)
