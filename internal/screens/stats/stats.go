// Package stats shows lifetime and per-deck accuracy.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/store"
	"github.com/abhisek/langtrainer/internal/ui/components"
	"github.com/abhisek/langtrainer/internal/ui/layout"
	"github.com/abhisek/langtrainer/internal/ui/theme"
)

type statsLoadedMsg struct {
	Totals store.Stats
	Decks  []store.DeckStat
	Err    error
}

type StatsScreen struct {
	eventRepo store.EventRepo
	totals    store.Stats
	decks     []store.DeckStat
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

func New(eventRepo store.EventRepo) *StatsScreen {
	return &StatsScreen{eventRepo: eventRepo}
}

func (s *StatsScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()
		totals, err := repo.Stats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		decks, err := repo.DeckStats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Totals: totals, Decks: decks}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.totals = msg.Totals
		s.decks = msg.Decks
	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	notice := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return notice.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return notice.Foreground(theme.TextDim).Render("\n\n  Loading statistics...")
	}
	if s.totals.Answered == 0 {
		return notice.Foreground(theme.TextDim).Italic(true).Render("\n\n  No answers yet. Start practicing!")
	}

	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	barWidth := min(width-8, 64)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Body.Render(fmt.Sprintf(
		"Answered: %d    Correct: %d    Sessions: %d",
		s.totals.Answered, s.totals.Correct, s.totals.Sessions))))
	b.WriteString("\n")
	if !s.totals.LastAnswered.IsZero() {
		b.WriteString(center(theme.Dim.Render("Last answer: " + s.totals.LastAnswered.Format("Jan 02, 2006 15:04"))))
		b.WriteString("\n")
	}
	if s.totals.LLMRequests > 0 {
		b.WriteString(center(theme.Dim.Render(fmt.Sprintf(
			"Deck generation: %d requests, %d tokens", s.totals.LLMRequests, s.totals.LLMTokens))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center(components.NewProgressBar("Overall", s.totals.Accuracy(), true, barWidth).View()))
	b.WriteString("\n\n")

	for _, d := range s.decks {
		label := fmt.Sprintf("%-18s %4d", clip(d.DeckID, 18), d.Answered)
		b.WriteString(center(components.NewProgressBar(label, d.Accuracy(), true, barWidth).View()))
		b.WriteString("\n")
	}
	return b.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
