package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// ProgressBar draws a labelled accuracy bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

const minBarWidth = 4

func (p ProgressBar) View() string {
	var parts []string
	if p.Label != "" {
		parts = append(parts, theme.Body.Render(p.Label)+"  ")
	}
	suffix := ""
	if p.ShowPercent {
		suffix = theme.Dim.Render(fmt.Sprintf("  %3.0f%%", clamp01(p.Percent)*100))
	}

	used := lipgloss.Width(strings.Join(parts, "")) + lipgloss.Width(suffix)
	width := max(p.Width-used, minBarWidth)
	filled := int(float64(width) * clamp01(p.Percent))

	parts = append(parts,
		theme.ProgressFilled.Render(strings.Repeat("█", filled)),
		theme.ProgressEmpty.Render(strings.Repeat("░", width-filled)),
		suffix,
	)
	return strings.Join(parts, "")
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
