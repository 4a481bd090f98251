package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/langtrainer/internal/ui/theme"
)

// ChoiceList is a numbered option selector. Options are picked with the
// arrow keys and enter, or directly with the digit keys 1-9.
type ChoiceList struct {
	Options  []string
	Selected int

	// AlignLeft renders options flush left, used when the answer attaches
	// to the preceding word.
	AlignLeft bool

	// Chosen is the index picked by the user, -1 until then.
	Chosen int
	// Correct is the index highlighted after grading, -1 when unknown.
	Correct int
}

// ChoiceMsg reports the option picked from a ChoiceList.
type ChoiceMsg struct {
	Index int
	Value string
}

func NewChoiceList(options []string, alignLeft bool) ChoiceList {
	return ChoiceList{
		Options:   options,
		AlignLeft: alignLeft,
		Chosen:    -1,
		Correct:   -1,
	}
}

// Done reports whether an option was picked.
func (c ChoiceList) Done() bool {
	return c.Chosen >= 0
}

// Update handles navigation and selection. A pick is emitted as ChoiceMsg.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if c.Done() || len(c.Options) == 0 {
		return c, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
		return c, nil
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
		return c, nil
	case "enter":
		return c.pick(c.Selected)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		if i := int(key[0] - '1'); i < len(c.Options) {
			c.Selected = i
			return c.pick(i)
		}
	}
	return c, nil
}

func (c ChoiceList) pick(i int) (ChoiceList, tea.Cmd) {
	c.Chosen = i
	msg := ChoiceMsg{Index: i, Value: c.Options[i]}
	return c, func() tea.Msg { return msg }
}

// Reveal marks the option equal to answer as correct for the graded view.
func (c *ChoiceList) Reveal(answer string) {
	for i, opt := range c.Options {
		if strings.EqualFold(strings.TrimSpace(opt), strings.TrimSpace(answer)) {
			c.Correct = i
			return
		}
	}
}

func (c ChoiceList) View(width int) string {
	lines := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Done() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case c.Done() && i == c.Correct:
			style = theme.Correct
		case c.Done() && i == c.Chosen:
			style = theme.Incorrect
		case c.Done():
			style = theme.Dim
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		lines = append(lines, style.Render(line))
	}

	block := strings.Join(lines, "\n")
	if c.AlignLeft {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
