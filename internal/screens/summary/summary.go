// Package summary shows the results of a finished drill session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/drill"
	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/ui/components"
	"github.com/abhisek/langtrainer/internal/ui/layout"
	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// SummaryScreen displays a drill.Summary.
type SummaryScreen struct {
	summary *drill.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(summary *drill.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(center(theme.Title.Render("Session complete!")))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(theme.Dim.Render(fmt.Sprintf("Duration: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body.Render(fmt.Sprintf(
		"Shown: %d        Answered: %d        Correct: %d        Accuracy: %.0f%%",
		sum.Served, sum.Answered, sum.Correct, sum.Accuracy*100))))
	b.WriteString("\n\n")

	if len(sum.DeckResults) == 0 {
		b.WriteString(center(theme.Hint.Render("No answers this session.")))
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(center(theme.Dim.Render("Decks")))
	b.WriteString("\n")
	b.WriteString(center(divider))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	for _, dr := range sum.DeckResults {
		var pct float64
		if dr.Answered > 0 {
			pct = float64(dr.Correct) / float64(dr.Answered)
		}
		label := fmt.Sprintf("%-18s %3d/%-3d", truncate(dr.DeckID, 18), dr.Correct, dr.Answered)
		b.WriteString(center(components.NewProgressBar(label, pct, true, barWidth).View()))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
