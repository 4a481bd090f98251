package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range append(allTables, "global_sequence") {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestRecencySaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.RecencyRepo()
	ctx := context.Background()

	ids, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("ids = %v, want none", ids)
	}

	if err := repo.Save(ctx, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, []string{"c", "d"}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	ids, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if strings.Join(ids, ",") != "c,d" {
		t.Errorf("ids = %v, want [c d]", ids)
	}

	if err := repo.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	ids, _ = repo.Load(ctx)
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none after empty save", ids)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func seedAnswers(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", DeckID: "verbs", TaskID: "v1", Answer: "vas", Correct: true, TimeMs: 1200},
		{SessionID: "s1", DeckID: "verbs", TaskID: "v2", Answer: "va", Correct: false, TimeMs: 3000},
		{SessionID: "s1", DeckID: "pronouns", TaskID: "p1", Answer: "lo", Correct: false, Blocked: true, TimeMs: 800},
		{SessionID: "s2", DeckID: "verbs", TaskID: "v1", Answer: "vas", Correct: true, TimeMs: 900},
	}
	for _, a := range answers {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}
}

func TestAnswerEventsQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()
	seedAnswers(t, repo)

	all, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	if all[0].Sequence != 4 || all[0].SessionID != "s2" {
		t.Errorf("newest = %+v, want sequence 4 from s2", all[0])
	}
	if !all[1].Blocked || all[1].Correct {
		t.Errorf("blocked answer = %+v", all[1])
	}
	if time.Since(all[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", all[0].Timestamp)
	}

	limited, err := repo.QueryAnswerEvents(ctx, QueryOpts{Limit: 2, Before: 4})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Sequence != 3 || limited[1].Sequence != 2 {
		t.Errorf("limited = %+v", limited)
	}

	after, _ := repo.QueryAnswerEvents(ctx, QueryOpts{After: 3})
	if len(after) != 1 {
		t.Errorf("after = %d events, want 1", len(after))
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	empty, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats (empty): %v", err)
	}
	if empty.Answered != 0 || !empty.LastAnswered.IsZero() || empty.Accuracy() != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	seedAnswers(t, repo)
	for _, a := range []string{SessionStart, SessionEnd} {
		if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: a}); err != nil {
			t.Fatalf("append session: %v", err)
		}
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m", Purpose: "deck-generate",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 10, Success: true,
	}); err != nil {
		t.Fatalf("append llm: %v", err)
	}

	st, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Answered != 4 || st.Correct != 2 {
		t.Errorf("answered=%d correct=%d, want 4/2", st.Answered, st.Correct)
	}
	if st.Accuracy() != 0.5 {
		t.Errorf("accuracy = %v, want 0.5", st.Accuracy())
	}
	if st.Sessions != 1 {
		t.Errorf("sessions = %d, want 1", st.Sessions)
	}
	if st.LLMRequests != 1 || st.LLMTokens != 150 {
		t.Errorf("llm = %d requests / %d tokens", st.LLMRequests, st.LLMTokens)
	}
	if st.LastAnswered.IsZero() {
		t.Error("last answered is zero")
	}
}

func TestDeckStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedAnswers(t, repo)

	stats, err := repo.DeckStats(context.Background())
	if err != nil {
		t.Fatalf("deck stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len = %d, want 2", len(stats))
	}
	if stats[0].DeckID != "verbs" || stats[0].Answered != 3 || stats[0].Correct != 2 {
		t.Errorf("verbs = %+v", stats[0])
	}
	if stats[1].DeckID != "pronouns" || stats[1].Answered != 1 || stats[1].Correct != 0 {
		t.Errorf("pronouns = %+v", stats[1])
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()
	seedAnswers(t, repo)
	if err := s.RecencyRepo().Save(ctx, []string{"v1"}); err != nil {
		t.Fatalf("save recency: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	st, _ := repo.Stats(ctx)
	if st.Answered != 0 {
		t.Errorf("answered = %d after reset", st.Answered)
	}
	ids, _ := s.RecencyRepo().Load(ctx)
	if len(ids) != 0 {
		t.Errorf("recency = %v after reset", ids)
	}

	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", DeckID: "d", TaskID: "t"}); err != nil {
		t.Fatalf("append after reset: %v", err)
	}
	events, _ := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if len(events) != 1 || events[0].Sequence != 1 {
		t.Errorf("events after reset = %+v, want sequence restarted at 1", events)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LANGTRAINER_DB", dir+"/sub/test.db")

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != dir+"/sub/test.db" {
		t.Errorf("path = %q", p)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	calls := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "deck-generate", InputTokens: 100, OutputTokens: 400, LatencyMs: 1000, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "deck-generate", InputTokens: 120, OutputTokens: 0, LatencyMs: 3000, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "unknown", InputTokens: 10, OutputTokens: 20, LatencyMs: 500, Success: true},
	}
	for _, c := range calls {
		if err := events.AppendLLMRequest(ctx, c); err != nil {
			t.Fatalf("append llm: %v", err)
		}
	}

	repo := s.LLMEventRepo()
	all, err := repo.QueryLLMEvents(ctx, "", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 || all[0].Model != "gpt-4o-mini" {
		t.Fatalf("events = %+v, want 3 newest first", all)
	}
	if all[1].Success || all[1].ErrorMessage != "rate limited" {
		t.Errorf("failed call = %+v", all[1])
	}

	gen, _ := repo.QueryLLMEvents(ctx, "deck-generate", QueryOpts{Limit: 1})
	if len(gen) != 1 || gen[0].Purpose != "deck-generate" {
		t.Errorf("filtered = %+v", gen)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("purposes = %+v", byPurpose)
	}
	first := byPurpose[0]
	if first.Key != "deck-generate" || first.Calls != 2 || first.InputTokens != 220 ||
		first.OutputTokens != 400 || first.AvgLatencyMs != 2000 || first.Failures != 1 {
		t.Errorf("deck-generate usage = %+v", first)
	}

	byModel, _ := repo.LLMUsageByModel(ctx)
	if len(byModel) != 2 || byModel[1].Key != "gpt-4o-mini" || byModel[1].Failures != 0 {
		t.Errorf("models = %+v", byModel)
	}
}
