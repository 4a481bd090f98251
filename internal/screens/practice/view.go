package practice

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/drill"
	"github.com/abhisek/langtrainer/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCannot start practice: %s\n\nPress r to reload decks or Esc to go back.", s.errMsg))
	}

	st := s.runner.State()
	if st == nil {
		return ""
	}
	switch st.Phase {
	case drill.PhaseActive:
		return s.renderExercise(st.Current, width)
	case drill.PhaseFeedback:
		return s.renderFeedback(st.Current, st.LastResult, width)
	default:
		return s.renderWaiting(width)
	}
}

func (s *PracticeScreen) renderExercise(ex *drill.Exercise, width int) string {
	if ex == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.infoLine(ex, width))
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Prompt.Render(ex.Task.PromptNative)))
	b.WriteString("\n\n")

	gap := "___"
	if ex.JoinWithoutSpace {
		gap = "__"
	}
	b.WriteString(centered(width,
		theme.Body.Render(ex.PromptPrefix)+theme.Blank.Render(gap)+theme.Body.Render(ex.PromptSuffix)))
	b.WriteString("\n\n")

	if s.freeText {
		b.WriteString(centered(width, "Answer: "+s.input.View()))
		return b.String()
	}

	b.WriteString(s.renderChoices(width))
	return b.String()
}

func (s *PracticeScreen) renderChoices(width int) string {
	if !s.choices.AlignLeft {
		return s.choices.View(width)
	}
	// Left-aligned options still sit in the middle of the screen as a block.
	block := s.choices.View(0)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Left).Render(block))
}

func (s *PracticeScreen) renderFeedback(ex *drill.Exercise, res *drill.Result, width int) string {
	if ex == nil || res == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.infoLine(ex, width))
	b.WriteString("\n\n")

	b.WriteString(centered(width, theme.Prompt.Render(ex.Task.PromptNative)))
	b.WriteString("\n\n")

	insert := theme.Correct
	if !res.Correct {
		insert = theme.Incorrect.Underline(true)
	}
	b.WriteString(centered(width,
		theme.Body.Render(res.Phrase.Prefix)+insert.Render(res.Phrase.Insert)+theme.Body.Render(res.Phrase.Suffix)))
	b.WriteString("\n\n")

	if s.freeText {
		b.WriteString(centered(width, "Answer: "+s.input.View()))
	} else {
		b.WriteString(s.renderChoices(width))
	}
	b.WriteString("\n\n")

	switch {
	case res.Correct:
		b.WriteString(centered(width, theme.Correct.Render("✓ Correct!")))
	case res.Blocked:
		b.WriteString(centered(width, theme.Incorrect.Render("✗ That form is already attached to the word.")))
	default:
		b.WriteString(centered(width, theme.Incorrect.Render(fmt.Sprintf("✗ Not quite, you answered %q.", res.Answer))))
	}
	b.WriteString("\n")

	if !res.Correct && len(res.Accepted) > 0 {
		b.WriteString(centered(width, theme.Body.Render("Accepted: "+strings.Join(res.Accepted, ", "))))
		b.WriteString("\n")
	}
	if ex.Task.Note != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render(ex.Task.Note)))
	}
	return b.String()
}

func (s *PracticeScreen) renderWaiting(width int) string {
	remaining := max(s.due.Sub(s.now()), 0)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Title.Render("Next exercise in "+formatCountdown(remaining))))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Dim.Render(
		fmt.Sprintf("Interval: %s    Tasks: %d", formatInterval(s.runner.Interval()), s.runner.Corpus().TaskCount()))))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Press n for the next exercise now.")))
	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Body.Render(s.status)))
	}
	return b.String()
}

// infoLine shows the deck on the left and the session tally on the right.
func (s *PracticeScreen) infoLine(ex *drill.Exercise, width int) string {
	st := s.runner.State()
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + ex.DeckID)
	right := theme.Dim.Render(fmt.Sprintf("#%d  ✓ %d/%d  ", st.Served, st.Correct, st.Answered))

	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		return left
	}
	return left + strings.Repeat(" ", pad) + right
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func formatCountdown(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

func formatInterval(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%d min", int(d.Minutes()))
}
