package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/llm"
)

func deckJSON(tasks ...string) json.RawMessage {
	return json.RawMessage(`{"title":"Clitics","tasks":[` + strings.Join(tasks, ",") + `]}`)
}

const (
	goodChoice = `{"group":"pronouns.clitics","type":"pronouns.object","promptNative":"Я тебе это говорю.",
		"promptTemplate":"Yo ___ lo digo.","options":["te","le","me"],"acceptableAnswers":["te"],"note":""}`
	goodFree = `{"group":"verbs.present","type":"verbs.free","promptNative":"Ты говоришь по-испански.",
		"promptTemplate":"Tú ___ español.","options":[],"acceptableAnswers":["hablas"],"note":"hablar, tú"}`
	noBlank = `{"group":"g","type":"t","promptNative":"x","promptTemplate":"Sin hueco.",
		"options":[],"acceptableAnswers":["a"],"note":""}`
	answerNotOffered = `{"group":"g","type":"t","promptNative":"x","promptTemplate":"Yo ___ voy.",
		"options":["me","te"],"acceptableAnswers":["se"],"note":""}`
	allBlocked = `{"group":"pronouns.clitics","type":"pronouns.object","promptNative":"Дай это ему.",
		"promptTemplate":"Dáselo ___ ahora.","options":["lo","se"],"acceptableAnswers":["lo"],"note":""}`
)

func newTestGenerator(mock *llm.MockProvider) *Generator {
	return New(mock, DefaultConfig(affix.New()), nil)
}

func TestGenerate_BuildsDeck(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: deckJSON(goodChoice, goodFree)})
	gen := newTestGenerator(mock)

	res, err := gen.Generate(context.Background(), Request{
		DeckID: "es-clitics", Topic: "clitics", NativeLanguage: "Russian", TargetLanguage: "Spanish", Count: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := res.Deck
	if d.ID != "es-clitics" || d.Title != "Clitics" || d.FormatVersion != FormatVersion {
		t.Fatalf("deck = %+v", d)
	}
	if len(d.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(d.Tasks))
	}
	if d.Tasks[0].ID != "es-clitics-001" || d.Tasks[1].ID != "es-clitics-002" {
		t.Errorf("ids = %q, %q", d.Tasks[0].ID, d.Tasks[1].ID)
	}
	if d.Tasks[1].Note != "hablar, tú" || len(d.Tasks[1].Options) != 0 {
		t.Errorf("free task = %+v", d.Tasks[1])
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("calls = %d", len(calls))
	}
	if calls[0].Schema != DeckSchema {
		t.Error("request did not carry the deck schema")
	}
	if !strings.Contains(calls[0].Messages[0].Content, "Number of tasks: 2") {
		t.Errorf("user message = %q", calls[0].Messages[0].Content)
	}
}

func TestGenerate_DropsInvalidTasks(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: deckJSON(noBlank, goodChoice, answerNotOffered, allBlocked),
	})
	gen := newTestGenerator(mock)

	res, err := gen.Generate(context.Background(), Request{DeckID: "d", Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Deck.Tasks) != 1 || res.Deck.Tasks[0].ID != "d-001" {
		t.Fatalf("tasks = %+v", res.Deck.Tasks)
	}

	want := []string{"structural", "options", "options"}
	if len(res.Rejected) != len(want) {
		t.Fatalf("rejected = %d, want %d", len(res.Rejected), len(want))
	}
	for i, w := range want {
		if res.Rejected[i].Validator != w {
			t.Errorf("rejected[%d] by %q, want %q", i, res.Rejected[i].Validator, w)
		}
	}
}

func TestGenerate_SkipsExistingAndRepeatedTemplates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: deckJSON(goodChoice, goodFree, goodFree)})
	gen := newTestGenerator(mock)

	res, err := gen.Generate(context.Background(), Request{
		DeckID: "d", Count: 3, AvoidPrompts: []string{"yo ___ LO digo."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Deck.Tasks) != 1 || res.Deck.Tasks[0].PromptTemplate != "Tú ___ español." {
		t.Fatalf("tasks = %+v", res.Deck.Tasks)
	}
	if len(res.Rejected) != 2 || res.Rejected[0].Validator != "dedup" {
		t.Fatalf("rejected = %+v", res.Rejected)
	}
}

func TestGenerate_ForcedGroupAndType(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: deckJSON(goodChoice)})
	gen := newTestGenerator(mock)

	res, err := gen.Generate(context.Background(), Request{
		DeckID: "d", Count: 1, Group: "pronouns.dative", Type: "pronouns.indirect", Title: "Mine",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task := res.Deck.Tasks[0]
	if task.Group != "pronouns.dative" || task.Type != "pronouns.indirect" {
		t.Errorf("task = %+v", task)
	}
	if res.Deck.Title != "Mine" {
		t.Errorf("title = %q", res.Deck.Title)
	}
	if !strings.Contains(mock.Calls()[0].Messages[0].Content, "Use group: pronouns.dative") {
		t.Error("forced group missing from prompt")
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		resp    llm.MockResponse
		wantErr error
	}{
		{"missing deck id", Request{Count: 1}, llm.MockResponse{}, nil},
		{"zero count", Request{DeckID: "d"}, llm.MockResponse{}, nil},
		{"provider error", Request{DeckID: "d", Count: 1}, llm.MockResponse{Err: errors.New("down")}, nil},
		{"unparseable", Request{DeckID: "d", Count: 1}, llm.MockResponse{Content: json.RawMessage(`[]`)}, nil},
		{"all rejected", Request{DeckID: "d", Count: 1}, llm.MockResponse{Content: deckJSON(noBlank)}, ErrNoValidTasks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newTestGenerator(llm.NewMockProvider(tt.resp))
			_, err := gen.Generate(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	d := &deck.Deck{ID: "es-x", Title: "X", FormatVersion: FormatVersion, Tasks: []deck.Task{{
		ID: "es-x-001", PromptNative: "n", PromptTemplate: "Yo ___.", AcceptableAnswers: []string{"soy"},
	}}}
	path := filepath.Join(t.TempDir(), "sub", FileName(d.ID))

	if err := Write(d, path, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Write(d, path, false); !errors.Is(err, ErrFileExists) {
		t.Fatalf("second write err = %v, want ErrFileExists", err)
	}
	if err := Write(d, path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	loaded, err := deck.LoadFile(path)
	if err != nil {
		t.Fatalf("load written deck: %v", err)
	}
	if loaded.ID != "es-x" || len(loaded.Tasks) != 1 || loaded.Tasks[0].AcceptableAnswers[0] != "soy" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if filepath.Base(path) != "tasks.es-x.json" {
		t.Fatalf("file name = %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestNumbered(t *testing.T) {
	if got := numbered(nil, 5); got != "None" {
		t.Errorf("empty = %q", got)
	}
	got := numbered([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("capped = %q", got)
	}
}
