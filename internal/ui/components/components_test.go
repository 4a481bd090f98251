package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestChoiceList_DigitPicks(t *testing.T) {
	c := NewChoiceList([]string{"lo", "le", "se"}, false)

	c, cmd := c.Update(key('2'))
	if cmd == nil {
		t.Fatal("expected a ChoiceMsg command")
	}
	msg, ok := cmd().(ChoiceMsg)
	if !ok {
		t.Fatalf("expected ChoiceMsg, got %T", cmd())
	}
	if msg.Index != 1 || msg.Value != "le" {
		t.Errorf("picked %+v, want index 1 'le'", msg)
	}
	if !c.Done() {
		t.Error("expected list to be done")
	}

	// Further keys are ignored once picked.
	if _, cmd := c.Update(key('1')); cmd != nil {
		t.Error("expected no command after pick")
	}
}

func TestChoiceList_DigitOutOfRange(t *testing.T) {
	c := NewChoiceList([]string{"lo", "le"}, false)
	c, cmd := c.Update(key('5'))
	if cmd != nil || c.Done() {
		t.Error("expected out-of-range digit to be ignored")
	}
}

func TestChoiceList_ArrowsAndEnter(t *testing.T) {
	c := NewChoiceList([]string{"as", "es", "o"}, true)

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if c.Selected != 2 {
		t.Fatalf("selected = %d, want 2 (clamped)", c.Selected)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})

	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a ChoiceMsg command")
	}
	if msg := cmd().(ChoiceMsg); msg.Value != "es" {
		t.Errorf("value = %q, want 'es'", msg.Value)
	}
}

func TestChoiceList_RevealAndView(t *testing.T) {
	c := NewChoiceList([]string{"vas", "va"}, true)
	c, _ = c.Update(key('2'))
	c.Reveal(" VAS ")
	if c.Correct != 0 {
		t.Errorf("correct = %d, want 0", c.Correct)
	}

	view := c.View(80)
	if !strings.Contains(view, "1)  vas") || !strings.Contains(view, "2)  va") {
		t.Errorf("view missing numbered options:\n%s", view)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "Disabled", Disabled: true},
		{Label: "Practice", Action: func() tea.Cmd { ran = "practice"; return nil }},
		{Label: "Off", Disabled: true},
		{Label: "Quit", Action: func() tea.Cmd { ran = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("selected = %d, want 3", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "quit" {
		t.Errorf("ran = %q, want quit", ran)
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 2} {
		v := NewProgressBar("", pct, true, 20).View()
		if v == "" {
			t.Errorf("empty view for %v", pct)
		}
	}
}
