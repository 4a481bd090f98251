package home

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/screens/decks"
	"github.com/abhisek/langtrainer/internal/screens/practice"
	"github.com/abhisek/langtrainer/internal/session"
)

func newRunner(t *testing.T) *session.Runner {
	t.Helper()
	r := session.NewRunner(session.Deps{DataDir: t.TempDir(), Interval: 2 * time.Hour})
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return r
}

func enter(t *testing.T, h *HomeScreen) tea.Msg {
	t.Helper()
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestHome_PracticeFirst(t *testing.T) {
	h := New(newRunner(t), nil)
	msg, ok := enter(t, h).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := msg.Screen.(*practice.PracticeScreen); !ok {
		t.Errorf("expected practice screen, got %T", msg.Screen)
	}
}

func TestHome_StoreItemsDisabledWithoutRepo(t *testing.T) {
	h := New(newRunner(t), nil)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != 4 {
		t.Fatalf("selected = %d, want Quit after skipping disabled items", h.menu.Selected)
	}
	if _, ok := enter(t, h).(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestHome_Decks(t *testing.T) {
	h := New(newRunner(t), nil)
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	msg := enter(t, h).(router.PushScreenMsg)
	if _, ok := msg.Screen.(*decks.DecksScreen); !ok {
		t.Errorf("expected decks screen, got %T", msg.Screen)
	}
}

func TestHome_View(t *testing.T) {
	view := New(newRunner(t), nil).View(100, 30)
	for _, want := range []string{"Practice now", "every 120 min", "sample deck"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHome_ShortcutKey(t *testing.T) {
	h := New(newRunner(t), nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'd', Text: "d"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := msg.Screen.(*decks.DecksScreen); !ok {
		t.Errorf("expected decks screen, got %T", msg.Screen)
	}

	// Disabled items ignore their shortcut.
	if _, cmd := h.Update(tea.KeyPressMsg{Code: 's', Text: "s"}); cmd != nil {
		t.Error("statistics shortcut should be ignored without a repo")
	}
}
