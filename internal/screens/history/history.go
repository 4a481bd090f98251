// Package history lists recent answers.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/store"
	"github.com/abhisek/langtrainer/internal/ui/layout"
	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// PageSize is the number of answers fetched per page.
const PageSize = 50

type historyLoadedMsg struct {
	Events []store.AnswerEventRecord
	Err    error
}

// HistoryScreen shows answers newest first, one page at a time.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.AnswerEventRecord
	selected  int
	offset    int
	loaded    bool
	errMsg    string

	// cursors holds the Before value of each visited page.
	cursors []int64
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo, cursors: []int64{0}}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load(0)
}

func (s *HistoryScreen) load(before int64) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.QueryAnswerEvents(context.Background(), store.QueryOpts{
			Limit:  PageSize,
			Before: before,
		})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "←→", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.events = msg.Events
		s.selected = 0
		s.offset = 0
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "right", "l":
			if len(s.events) == PageSize {
				before := s.events[len(s.events)-1].Sequence
				s.cursors = append(s.cursors, before)
				return s, s.load(before)
			}
		case "left", "h":
			if len(s.cursors) > 1 {
				s.cursors = s.cursors[:len(s.cursors)-1]
				return s, s.load(s.cursors[len(s.cursors)-1])
			}
		}
	}
	return s, nil
}

// Page returns the 1-based page number.
func (s *HistoryScreen) Page() int {
	return len(s.cursors)
}

func (s *HistoryScreen) View(width, height int) string {
	notice := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return notice.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return notice.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.events) == 0 {
		return notice.Foreground(theme.TextDim).Italic(true).Render("\n\n  No answers yet. Start practicing!")
	}

	rows := max(height-3, 1)
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+rows {
		s.offset = s.selected - rows + 1
	}
	end := min(s.offset+rows, len(s.events))

	var b strings.Builder
	b.WriteString(notice.Foreground(theme.TextDim).Render(fmt.Sprintf("Page %d", s.Page())))
	b.WriteString("\n\n")

	for i := s.offset; i < end; i++ {
		ev := s.events[i]
		mark, style := "✓", theme.Correct
		switch {
		case ev.Blocked:
			mark, style = "⊘", theme.Incorrect
		case !ev.Correct:
			mark, style = "✗", theme.Incorrect
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-16s %-14s %s",
			prefix, ev.Timestamp.Format("Jan 02 15:04"), ev.DeckID, ev.TaskID, ev.Answer)

		text := theme.Unselected
		if i == s.selected {
			text = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			text.Render(line)+"  "+style.Render(mark)))
		b.WriteString("\n")
	}
	return b.String()
}
