// Package app is the root Bubble Tea model: it frames the active screen
// with the header and footer and routes navigation.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/logger"
	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/screens/home"
	"github.com/abhisek/langtrainer/internal/session"
	"github.com/abhisek/langtrainer/internal/store"
	"github.com/abhisek/langtrainer/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	// Runner must already be loaded.
	Runner *session.Runner

	// EventRepo enables the statistics and history screens. May be nil.
	EventRepo store.EventRepo

	Logger *log.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	runner *session.Runner
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Runner, opts.EventRepo)),
		runner: opts.Runner,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if screen.OwnsBack(m.router.Active()) {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) score() layout.Score {
	if st := m.runner.State(); st != nil {
		return layout.Score{Correct: st.Correct, Answered: st.Answered}
	}
	return layout.Score{}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the whole frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(m.router.Breadcrumb(" › "), m.score(), m.width)

	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if own := screen.Hints(active); own != nil {
		hints = append(own, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the TUI and blocks until it exits. An unfinished drill session
// is closed on the way out so its answers and recency history are kept.
func Run(ctx context.Context, opts Options) error {
	if opts.Runner == nil {
		return fmt.Errorf("app: runner is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()

	if sum := opts.Runner.Finish(context.WithoutCancel(ctx)); sum != nil {
		opts.Logger.Info("closed open session on exit", "answered", sum.Answered)
	}
	if err != nil {
		opts.Logger.Error("program exited with error", "err", err)
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
