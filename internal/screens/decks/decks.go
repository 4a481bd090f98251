// Package decks lists the loaded decks and lets the user reload them.
package decks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/session"
	"github.com/abhisek/langtrainer/internal/ui/layout"
	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// DecksScreen shows the corpus held by a session.Runner.
type DecksScreen struct {
	runner   *session.Runner
	defects  []deck.Defect
	selected int
	errMsg   string
}

var _ screen.Screen = (*DecksScreen)(nil)
var _ screen.KeyHintProvider = (*DecksScreen)(nil)

func New(runner *session.Runner) *DecksScreen {
	return &DecksScreen{
		runner:  runner,
		defects: deck.Validate(runner.Corpus()),
	}
}

func (s *DecksScreen) Init() tea.Cmd {
	return nil
}

func (s *DecksScreen) Title() string {
	return "Decks"
}

func (s *DecksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DecksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.runner.Corpus())-1 {
			s.selected++
		}
	case "r":
		s.reload()
	}
	return s, nil
}

func (s *DecksScreen) reload() {
	if _, err := s.runner.Reload(context.Background()); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.defects = deck.Validate(s.runner.Corpus())
	s.selected = min(s.selected, max(len(s.runner.Corpus())-1, 0))
}

func (s *DecksScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Dim.Render("Directory: " + s.runner.DataDir())))
	b.WriteString("\n")
	b.WriteString(center(theme.Body.Render(s.runner.Report().Status())))
	b.WriteString("\n")
	if s.runner.UsingSample() {
		b.WriteString(center(theme.Hint.Render("No deck files found, practicing with the built-in sample deck.")))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(center(theme.Incorrect.Render("Reload failed: " + s.errMsg)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, d := range s.runner.Corpus() {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		title := d.Title
		if title == "" {
			title = d.ID
		}
		b.WriteString(center(style.Render(fmt.Sprintf("%s%-32s %4d tasks", prefix, title, len(d.Tasks)))))
		b.WriteString("\n")
	}

	if failed := s.runner.Report().Failed; len(failed) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.Incorrect.Render("Skipped files")))
		b.WriteString("\n")
		for _, fe := range failed {
			b.WriteString(center(theme.Dim.Render(fmt.Sprintf("%s: %v", filepath.Base(fe.Path), fe.Err))))
			b.WriteString("\n")
		}
	}

	if len(s.defects) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint.Render(fmt.Sprintf(
			"%d content problems, run `langtrainer decks validate` for details", len(s.defects)))))
	}
	return b.String()
}
