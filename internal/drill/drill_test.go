package drill

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/options"
	"github.com/abhisek/langtrainer/internal/sampler"
)

func testCorpus() deck.Corpus {
	return deck.Corpus{
		{
			ID: "pronouns",
			Tasks: []deck.Task{
				{
					ID:                "p1",
					Group:             "clitics",
					PromptTemplate:    "Dáselo ___ ahora.",
					Options:           []string{"lo", "le", "a él", "se"},
					AcceptableAnswers: []string{"a él"},
				},
				{
					ID:                "p2",
					Group:             "clitics",
					PromptTemplate:    "Yo ___ lo digo.",
					Options:           []string{"te", "a mí", "a ti"},
					AcceptableAnswers: []string{"te"},
				},
			},
		},
		{
			ID: "verbs",
			Tasks: []deck.Task{
				{
					ID:                "v1",
					Type:              "verbs.endings.present",
					PromptTemplate:    "Tú habl ___ español.",
					Options:           []string{"as", "es", "o"},
					AcceptableAnswers: []string{"as"},
				},
				{
					ID:                "v2",
					Group:             "ir",
					PromptTemplate:    "Yo voy ___ a casa.",
					Options:           []string{"voy", "vamos a", "vais a"},
					AcceptableAnswers: []string{"voy"},
				},
				{
					ID:                "v3",
					Group:             "food",
					PromptTemplate:    "la ___",
					AcceptableAnswers: []string{"manzana"},
				},
			},
		},
	}
}

func testEngine() *Engine {
	r := rand.New(rand.NewPCG(1, 2))
	return NewEngine(
		WithBuilder(options.NewBuilder(r)),
		WithSampler(sampler.New(sampler.WithRand(r))),
	)
}

func TestPresent_HidesFusedClitic(t *testing.T) {
	c := testCorpus()
	ex := testEngine().Present(c.Find("p1"), c)

	if ex.DeckID != "pronouns" {
		t.Errorf("DeckID = %q, want pronouns", ex.DeckID)
	}
	if slices.Contains(ex.Options, "lo") {
		t.Errorf("Options = %v, fused clitic lo should be hidden", ex.Options)
	}
	for _, want := range []string{"le", "a él", "se"} {
		if !slices.Contains(ex.Options, want) {
			t.Errorf("Options = %v, missing %q", ex.Options, want)
		}
	}
	if !ex.Blocked.Contains("LO") {
		t.Error("expected lo in blocked set")
	}
	if !ex.JoinWithoutSpace {
		t.Error("expected short clitic options to join without space")
	}
	if ex.PromptPrefix != "Dáselo" || ex.PromptSuffix != " ahora." {
		t.Errorf("prompt = %q|%q", ex.PromptPrefix, ex.PromptSuffix)
	}
}

func TestPresent_DistractorsFromTheme(t *testing.T) {
	c := testCorpus()
	ex := testEngine().Present(c.Find("p2"), c)

	// Theme pool: te, a mí, a ti, lo, le, a él, se. Nothing is fused onto "Yo".
	if len(ex.Options) != options.DefaultCount {
		t.Errorf("len(Options) = %d, want %d: %v", len(ex.Options), options.DefaultCount, ex.Options)
	}
	for _, own := range []string{"te", "a mí", "a ti"} {
		if !slices.Contains(ex.Options, own) {
			t.Errorf("Options = %v, missing own option %q", ex.Options, own)
		}
	}
}

func TestPresent_TrimsDuplicateToken(t *testing.T) {
	c := testCorpus()
	ex := testEngine().Present(c.Find("v2"), c)

	if ex.JoinWithoutSpace {
		t.Error("full-word options should not join")
	}
	if ex.PromptPrefix != "Yo " {
		t.Errorf("PromptPrefix = %q, want %q", ex.PromptPrefix, "Yo ")
	}
}

func TestPresent_FreeText(t *testing.T) {
	c := testCorpus()
	ex := testEngine().Present(c.Find("v3"), c)

	if len(ex.Options) != 0 {
		t.Errorf("Options = %v, want none", ex.Options)
	}
	if _, ok := ex.Choose(1); ok {
		t.Error("Choose(1) should fail without options")
	}
}

func TestSubmit(t *testing.T) {
	c := testCorpus()
	e := testEngine()

	tests := []struct {
		name        string
		taskID      string
		answer      string
		wantCorrect bool
		wantBlocked bool
		wantPhrase  string
		wantAccept  []string
	}{
		{"correct ignores accents", "p1", "A EL", true, false, "DáseloA EL ahora.", nil},
		{"blocked choice", "p1", "lo", false, true, "Dáseloa él ahora.", []string{"a él"}},
		{"wrong answer", "p2", "me", false, false, "Yo te lo digo.", []string{"te"}},
		{"ending joins stem", "v1", "as", true, false, "Tú hablas español.", nil},
		{"duplicate token trimmed", "v2", "voy", true, false, "Yo voy a casa.", nil},
		{"free text", "v3", " Manzana ", true, false, "la  Manzana ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ex := e.Present(c.Find(tc.taskID), c)
			res := ex.Submit(tc.answer)

			if res.Correct != tc.wantCorrect {
				t.Errorf("Correct = %v, want %v", res.Correct, tc.wantCorrect)
			}
			if res.Blocked != tc.wantBlocked {
				t.Errorf("Blocked = %v, want %v", res.Blocked, tc.wantBlocked)
			}
			if got := res.Phrase.String(); got != tc.wantPhrase {
				t.Errorf("Phrase = %q, want %q", got, tc.wantPhrase)
			}
			if !slices.Equal(res.Accepted, tc.wantAccept) {
				t.Errorf("Accepted = %v, want %v", res.Accepted, tc.wantAccept)
			}
		})
	}
}

func TestSubmit_AllAcceptedBlockedFallsBack(t *testing.T) {
	task := &deck.Task{
		ID:                "x",
		PromptTemplate:    "Cómpralo ___",
		Options:           []string{"lo", "la"},
		AcceptableAnswers: []string{"lo"},
	}
	c := deck.Corpus{{ID: "d", Tasks: []deck.Task{*task}}}
	ex := testEngine().Present(c.Find("x"), c)

	res := ex.Submit("lo")
	if res.Correct || !res.Blocked {
		t.Fatalf("res = %+v, want blocked and incorrect", res)
	}
	if !slices.Equal(res.Accepted, []string{"lo"}) {
		t.Errorf("Accepted = %v, want fallback to full list", res.Accepted)
	}
}

func TestNext_EmptyCorpus(t *testing.T) {
	_, err := testEngine().Next(deck.Corpus{{ID: "empty"}})
	if !errors.Is(err, sampler.ErrEmptyCorpus) {
		t.Errorf("err = %v, want ErrEmptyCorpus", err)
	}
}

func TestNext_CyclesEveryTask(t *testing.T) {
	c := testCorpus()
	r := rand.New(rand.NewPCG(3, 4))
	e := NewEngine(WithSampler(sampler.New(sampler.WithRand(r), sampler.WithRecencyWindow(0))))

	seen := map[string]bool{}
	for range c.TaskCount() * 2 {
		ex, err := e.Next(c)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		seen[ex.Task.ID] = true
	}
	if len(seen) != c.TaskCount() {
		t.Errorf("saw %d distinct tasks, want %d", len(seen), c.TaskCount())
	}
}

func TestChoose(t *testing.T) {
	ex := &Exercise{Options: []string{"a", "b"}}

	if got, ok := ex.Choose(2); !ok || got != "b" {
		t.Errorf("Choose(2) = %q, %v", got, ok)
	}
	for _, n := range []int{0, 3, -1} {
		if _, ok := ex.Choose(n); ok {
			t.Errorf("Choose(%d) should fail", n)
		}
	}
}

func TestSession_Flow(t *testing.T) {
	c := testCorpus()
	e := testEngine()
	s := NewSession()

	if s.ID == "" {
		t.Fatal("session id is empty")
	}
	if res := s.Answer("x"); res != nil {
		t.Error("Answer without an exercise should return nil")
	}

	s.Begin(e.Present(c.Find("p2"), c))
	if s.Phase != PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", s.Phase)
	}
	if res := s.Answer("te"); res == nil || !res.Correct {
		t.Fatalf("Answer(te) = %+v", res)
	}
	if s.Phase != PhaseFeedback {
		t.Errorf("Phase = %v, want PhaseFeedback", s.Phase)
	}
	if res := s.Answer("te"); res != nil {
		t.Error("second Answer on the same exercise should return nil")
	}
	s.Wait()

	s.Begin(e.Present(c.Find("v1"), c))
	s.Answer("o")
	s.Wait()

	s.Begin(e.Present(c.Find("v1"), c))
	s.Wait()

	if s.Served != 3 || s.Answered != 2 || s.Correct != 1 || s.Streak != 0 {
		t.Errorf("served=%d answered=%d correct=%d streak=%d", s.Served, s.Answered, s.Correct, s.Streak)
	}

	sum := BuildSummary(s)
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", sum.Accuracy)
	}
	if len(sum.DeckResults) != 2 || sum.DeckResults[0].DeckID != "pronouns" || sum.DeckResults[1].DeckID != "verbs" {
		t.Errorf("DeckResults = %+v", sum.DeckResults)
	}
}
