package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/langtrainer/internal/router"
	"github.com/abhisek/langtrainer/internal/store"
)

func openRepo(t *testing.T, answers int) store.EventRepo {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	repo := s.EventRepo()
	for i := range answers {
		err := repo.AppendAnswerEvent(context.Background(), store.AnswerEventData{
			SessionID: "s1",
			DeckID:    "verbs",
			TaskID:    fmt.Sprintf("v%d", i+1),
			Answer:    "vas",
			Correct:   i%2 == 0,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return repo
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *HistoryScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestHistory_Empty(t *testing.T) {
	s := New(openRepo(t, 0))
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	run(t, s, s.Init())
	if !strings.Contains(s.View(80, 20), "No answers yet") {
		t.Errorf("expected empty view, got:\n%s", s.View(80, 20))
	}
}

func TestHistory_ListsNewestFirst(t *testing.T) {
	s := New(openRepo(t, 3))
	run(t, s, s.Init())

	if len(s.events) != 3 || s.events[0].TaskID != "v3" {
		t.Fatalf("events = %+v, want v3 first", s.events)
	}
	view := s.View(100, 20)
	if !strings.Contains(view, "v3") || !strings.Contains(view, "✗") {
		t.Errorf("view missing rows:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 2 {
		t.Errorf("selected = %d, want 2", s.selected)
	}
}

func TestHistory_Paging(t *testing.T) {
	s := New(openRepo(t, PageSize+5))
	run(t, s, s.Init())
	if len(s.events) != PageSize {
		t.Fatalf("first page = %d events", len(s.events))
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	run(t, s, cmd)
	if s.Page() != 2 || len(s.events) != 5 {
		t.Fatalf("page %d holds %d events, want page 2 with 5", s.Page(), len(s.events))
	}

	// The last page is short, so there is nothing further.
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyRight}); cmd != nil {
		t.Error("expected no load past the last page")
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	run(t, s, cmd)
	if s.Page() != 1 || len(s.events) != PageSize {
		t.Errorf("back on page %d with %d events", s.Page(), len(s.events))
	}
}

func TestHistory_Esc(t *testing.T) {
	s := New(openRepo(t, 0))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
