package deck

import (
	"encoding/json"
	"strings"
)

// BlankMarker is the placeholder inside a prompt template that the answer fills.
const BlankMarker = "___"

// Task is a single exercise. Tasks are immutable once loaded and are shared
// by reference between the sampler, the option builder and the drill screen.
type Task struct {
	ID                string   `json:"id"`
	Group             string   `json:"group"`
	Type              string   `json:"type"`
	PromptNative      string   `json:"promptRu"`
	PromptTemplate    string   `json:"promptEsTemplate"`
	Options           []string `json:"options"`
	AcceptableAnswers []string `json:"acceptableAnswers"`
	Note              string   `json:"note,omitempty"`
}

// taskJSON accepts both the historical field names (promptRu,
// promptEsTemplate) and the language-neutral ones.
type taskJSON struct {
	ID                string   `json:"id"`
	Group             string   `json:"group"`
	Type              string   `json:"type"`
	PromptRu          string   `json:"promptRu"`
	PromptNative      string   `json:"promptNative"`
	PromptEsTemplate  string   `json:"promptEsTemplate"`
	PromptTemplate    string   `json:"promptTemplate"`
	Options           []string `json:"options"`
	AcceptableAnswers []string `json:"acceptableAnswers"`
	Note              *string  `json:"note"`
}

// UnmarshalJSON decodes a task, preferring the neutral field names when both
// spellings are present.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task{
		ID:                raw.ID,
		Group:             raw.Group,
		Type:              raw.Type,
		PromptNative:      firstNonEmpty(raw.PromptNative, raw.PromptRu),
		PromptTemplate:    firstNonEmpty(raw.PromptTemplate, raw.PromptEsTemplate),
		Options:           raw.Options,
		AcceptableAnswers: raw.AcceptableAnswers,
	}
	if raw.Note != nil {
		t.Note = *raw.Note
	}
	return nil
}

// ThemeKey returns the key used to pool distractors: the group when set,
// otherwise the type.
func (t *Task) ThemeKey() string {
	if strings.TrimSpace(t.Group) != "" {
		return t.Group
	}
	return t.Type
}

// HasBlank reports whether the template contains the blank marker.
func (t *Task) HasBlank() bool {
	return strings.Contains(t.PromptTemplate, BlankMarker)
}

// Deck is a named, ordered collection of tasks loaded as one unit.
type Deck struct {
	ID            string `json:"deckId"`
	Title         string `json:"title"`
	FormatVersion string `json:"formatVersion,omitempty"`
	Tasks         []Task `json:"tasks"`
}

// Corpus is the set of active decks. It is replaced wholesale on reload.
type Corpus []*Deck

// DeckShape identifies a deck for change detection.
type DeckShape struct {
	ID    string
	Tasks int
}

// Signature returns the ordered (deck id, task count) pairs of the corpus.
func (c Corpus) Signature() []DeckShape {
	sig := make([]DeckShape, len(c))
	for i, d := range c {
		if d == nil {
			continue
		}
		sig[i] = DeckShape{ID: d.ID, Tasks: len(d.Tasks)}
	}
	return sig
}

// TaskCount returns the number of tasks across all decks.
func (c Corpus) TaskCount() int {
	n := 0
	for _, d := range c {
		if d != nil {
			n += len(d.Tasks)
		}
	}
	return n
}

// Each calls fn for every task in deck order. Iteration stops when fn
// returns false.
func (c Corpus) Each(fn func(t *Task) bool) {
	for _, d := range c {
		if d == nil {
			continue
		}
		for i := range d.Tasks {
			if !fn(&d.Tasks[i]) {
				return
			}
		}
	}
}

// Find returns the task with the given id, or nil.
func (c Corpus) Find(id string) *Task {
	var found *Task
	c.Each(func(t *Task) bool {
		if t.ID == id {
			found = t
			return false
		}
		return true
	})
	return found
}

// DeckOf returns the deck holding the task with the given id, or nil.
func (c Corpus) DeckOf(taskID string) *Deck {
	for _, d := range c {
		if d == nil {
			continue
		}
		for i := range d.Tasks {
			if d.Tasks[i].ID == taskID {
				return d
			}
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
