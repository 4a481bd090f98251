// Package home is the main menu.
package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/screens/decks"
	"github.com/abhisek/langtrainer/internal/screens/history"
	"github.com/abhisek/langtrainer/internal/screens/practice"
	"github.com/abhisek/langtrainer/internal/screens/stats"
	"github.com/abhisek/langtrainer/internal/session"
	"github.com/abhisek/langtrainer/internal/store"
	"github.com/abhisek/langtrainer/internal/ui/components"
	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	runner *session.Runner
	menu   components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New builds the menu. Statistics and History are disabled without an
// event store.
func New(runner *session.Runner, eventRepo store.EventRepo) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "Practice now", Key: "p", Action: push(func() screen.Screen { return practice.New(runner) })},
		{Label: "Decks", Key: "d", Action: push(func() screen.Screen { return decks.New(runner) })},
		{Label: "Statistics", Key: "s", Disabled: eventRepo == nil, Action: push(func() screen.Screen { return stats.New(eventRepo) })},
		{Label: "History", Key: "h", Disabled: eventRepo == nil, Action: push(func() screen.Screen { return history.New(eventRepo) })},
		{Label: "Quit", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		runner: runner,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("langtrainer"))
	sections = append(sections, theme.Subtitle.Render("Fill the gap, one exercise at a time."))

	corpus := h.runner.Corpus()
	info := fmt.Sprintf("%d decks · %d tasks · every %s", len(corpus), corpus.TaskCount(), interval(h.runner))
	if h.runner.UsingSample() {
		info += " · sample deck"
	}
	sections = append(sections, theme.Dim.Render(info))

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func interval(r *session.Runner) string {
	d := r.Interval()
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%d min", int(d.Minutes()))
}
