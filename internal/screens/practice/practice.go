// Package practice is the drill screen: it shows an exercise, grades the
// answer, then waits for the configured interval before the next one.
package practice

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langtrainer/internal/drill"
	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screen"
	"github.com/abhisek/langtrainer/internal/screens/summary"
	"github.com/abhisek/langtrainer/internal/session"
	"github.com/abhisek/langtrainer/internal/ui/components"
	"github.com/abhisek/langtrainer/internal/ui/layout"
)

// IntervalPresets are cycled with the "i" key on the waiting view.
var IntervalPresets = []time.Duration{
	15 * time.Minute,
	30 * time.Minute,
	60 * time.Minute,
	120 * time.Minute,
}

// tickMsg drives the countdown. Ticks from an older countdown carry a
// stale gen and are dropped.
type tickMsg struct {
	gen int
}

// PracticeScreen implements screen.Screen for a running drill.
type PracticeScreen struct {
	runner *session.Runner

	choices  components.ChoiceList
	input    components.TextInput
	freeText bool

	// due is when the waiting view presents the next exercise.
	due time.Time
	gen int

	status string
	errMsg string

	now func() time.Time
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.BackHandler = (*PracticeScreen)(nil)

func New(runner *session.Runner) *PracticeScreen {
	return &PracticeScreen{runner: runner, now: time.Now}
}

// Init starts the session and shows the first exercise right away.
func (s *PracticeScreen) Init() tea.Cmd {
	s.runner.Start(context.Background())
	return s.present()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) HandlesBack() bool {
	return true
}

func (s *PracticeScreen) phase() drill.Phase {
	if st := s.runner.State(); st != nil {
		return st.Phase
	}
	return drill.PhaseWaiting
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	switch s.phase() {
	case drill.PhaseActive:
		if s.freeText {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Submit"},
				{Key: "Esc", Description: "Skip"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Skip"},
		}
	case drill.PhaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Close"},
			{Key: "n", Description: "Next now"},
			{Key: "Esc", Description: "End session"},
		}
	default:
		return []layout.KeyHint{
			{Key: "n", Description: "Next now"},
			{Key: "i", Description: "Interval"},
			{Key: "r", Description: "Reload decks"},
			{Key: "Esc", Description: "End session"},
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s, s.handleTick(msg)
	case components.ChoiceMsg:
		s.submit(msg.Value)
		return s, nil
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.freeText && s.phase() == drill.PhaseActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PracticeScreen) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != s.gen || s.phase() != drill.PhaseWaiting || s.errMsg != "" {
		return nil
	}
	if s.now().Before(s.due) {
		return s.tick()
	}
	return s.present()
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if s.errMsg != "" {
		switch key {
		case "esc":
			return s.end()
		case "r":
			if err := s.reload(); err != nil {
				return nil
			}
			s.errMsg = ""
			return s.wait()
		}
		return nil
	}

	switch s.phase() {
	case drill.PhaseActive:
		if key == "esc" {
			return s.wait()
		}
		if s.freeText {
			if key == "enter" {
				if strings.TrimSpace(s.input.Value()) != "" {
					s.submit(s.input.Value())
				}
				return nil
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return cmd

	case drill.PhaseFeedback:
		switch key {
		case "n":
			s.runner.Dismiss()
			return s.present()
		case "esc":
			return s.end()
		}
		return s.wait()

	default:
		switch key {
		case "n":
			return s.present()
		case "i":
			s.runner.SetInterval(nextPreset(s.runner.Interval()))
			return s.wait()
		case "r":
			_ = s.reload()
		case "esc":
			return s.end()
		}
	}
	return nil
}

// present shows the next exercise.
func (s *PracticeScreen) present() tea.Cmd {
	ex, err := s.runner.Next()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.status = ""
	s.freeText = len(ex.Options) == 0
	if s.freeText {
		s.input = components.NewTextInput("Type your answer...", 80)
		return s.input.Init()
	}
	s.choices = components.NewChoiceList(ex.Options, ex.JoinWithoutSpace)
	return nil
}

func (s *PracticeScreen) submit(answer string) {
	res := s.runner.Answer(context.Background(), answer)
	if res == nil {
		return
	}
	if s.freeText {
		s.input.Submit(res.Correct)
		return
	}
	if res.Correct {
		s.choices.Reveal(answer)
	} else if len(res.Accepted) > 0 {
		s.choices.Reveal(res.Accepted[0])
	}
}

// wait hides the exercise and arms the countdown. The timer only runs while
// no exercise is on screen.
func (s *PracticeScreen) wait() tea.Cmd {
	s.runner.Dismiss()
	s.gen++
	s.due = s.now().Add(s.runner.Interval())
	return s.tick()
}

func (s *PracticeScreen) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (s *PracticeScreen) reload() error {
	report, err := s.runner.Reload(context.Background())
	if err != nil {
		s.status = "Reload failed: " + err.Error()
		return err
	}
	s.status = report.Status()
	if s.runner.UsingSample() {
		s.status += " (sample deck)"
	}
	return nil
}

// end closes the session and swaps this screen for its summary.
func (s *PracticeScreen) end() tea.Cmd {
	sum := s.runner.Finish(context.Background())
	if sum == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// nextPreset returns the first preset longer than d, wrapping around.
func nextPreset(d time.Duration) time.Duration {
	for _, p := range IntervalPresets {
		if p > d {
			return p
		}
	}
	return IntervalPresets[0]
}
