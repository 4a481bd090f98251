// Package deckgen authors new exercise decks with a language model.
package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/answer"
	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/llm"
	"github.com/abhisek/langtrainer/internal/logger"
)

// FormatVersion is stamped on generated decks.
const FormatVersion = "1.0"

var (
	// ErrNoValidTasks is returned when every generated task was rejected.
	ErrNoValidTasks = errors.New("no generated task passed validation")

	// ErrFileExists is returned by Write when the target exists.
	ErrFileExists = errors.New("deck file already exists")
)

// Config controls a Generator.
type Config struct {
	// Validators run in order on every task; the first failure drops it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxAvoidPrompts caps how many existing templates go into the prompt.
	MaxAvoidPrompts int
}

// DefaultConfig returns the standard validator chain for s.
func DefaultConfig(s *affix.Suppressor) Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{Suppressor: s},
		},
		MaxTokens:       4096,
		Temperature:     0.7,
		MaxAvoidPrompts: 40,
	}
}

// Generator turns a Request into a validated deck.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *log.Logger
}

// New creates a Generator. A nil logger discards output.
func New(provider llm.Provider, cfg Config, l *log.Logger) *Generator {
	if l == nil {
		l = logger.Discard()
	}
	return &Generator{provider: provider, config: cfg, logger: l}
}

type deckOutput struct {
	Title string       `json:"title"`
	Tasks []taskOutput `json:"tasks"`
}

type taskOutput struct {
	Group             string   `json:"group"`
	Type              string   `json:"type"`
	PromptNative      string   `json:"promptNative"`
	PromptTemplate    string   `json:"promptTemplate"`
	Options           []string `json:"options"`
	AcceptableAnswers []string `json:"acceptableAnswers"`
	Note              string   `json:"note"`
}

// Generate asks the model for req.Count tasks, drops those that fail
// validation or repeat an existing template, and returns the rest as a
// deck that passes the same checks as a deck loaded from disk.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.DeckID) == "" {
		return nil, errors.New("deck id is required")
	}
	if req.Count <= 0 {
		return nil, fmt.Errorf("task count must be positive, got %d", req.Count)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeDeckGenerate)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(req, g.config.MaxAvoidPrompts)}},
		Schema:      DeckSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out deckOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	title := req.Title
	if title == "" {
		title = strings.TrimSpace(out.Title)
	}
	d := &deck.Deck{ID: req.DeckID, Title: title, FormatVersion: FormatVersion}
	res := &Result{Deck: d}

	seen := make(map[string]struct{}, len(req.AvoidPrompts)+len(out.Tasks))
	for _, p := range req.AvoidPrompts {
		seen[answer.Normalize(p)] = struct{}{}
	}

	for _, raw := range out.Tasks {
		t := g.toTask(raw, req)
		if verr := g.validate(&t); verr != nil {
			g.logger.Warn("dropping generated task", "validator", verr.Validator, "prompt", verr.Prompt, "reason", verr.Message)
			res.Rejected = append(res.Rejected, verr)
			continue
		}
		key := answer.Normalize(t.PromptTemplate)
		if _, dup := seen[key]; dup {
			res.Rejected = append(res.Rejected, &ValidationError{
				Validator: "dedup", Prompt: t.PromptTemplate, Message: "template already exists",
			})
			continue
		}
		seen[key] = struct{}{}

		t.ID = fmt.Sprintf("%s-%03d", req.DeckID, len(d.Tasks)+1)
		d.Tasks = append(d.Tasks, t)
	}

	if len(d.Tasks) == 0 {
		return res, ErrNoValidTasks
	}
	if err := recheck(d); err != nil {
		return res, err
	}

	g.logger.Info("generated deck", "deck", d.ID, "tasks", len(d.Tasks), "rejected", len(res.Rejected),
		"tokens", resp.Usage.TotalTokens)
	return res, nil
}

func (g *Generator) toTask(raw taskOutput, req Request) deck.Task {
	t := deck.Task{
		Group:             strings.TrimSpace(raw.Group),
		Type:              strings.TrimSpace(raw.Type),
		PromptNative:      strings.TrimSpace(raw.PromptNative),
		PromptTemplate:    strings.TrimSpace(raw.PromptTemplate),
		Options:           nonBlank(raw.Options),
		AcceptableAnswers: nonBlank(raw.AcceptableAnswers),
		Note:              strings.TrimSpace(raw.Note),
	}
	if req.Group != "" {
		t.Group = req.Group
	}
	if req.Type != "" {
		t.Type = req.Type
	}
	return t
}

func (g *Generator) validate(t *deck.Task) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(t); verr != nil {
			return verr
		}
	}
	return nil
}

// recheck round-trips d through the deck parser and content validator.
func recheck(d *deck.Deck) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode generated deck: %w", err)
	}
	if _, err := deck.Parse(data); err != nil {
		return fmt.Errorf("generated deck does not parse: %w", err)
	}
	if defects := deck.Validate(deck.Corpus{d}); len(defects) > 0 {
		return fmt.Errorf("generated deck has defects: %s", defects[0])
	}
	return nil
}

// Write stores d as indented JSON at path. An existing file is only
// replaced when overwrite is set.
func Write(d *deck.Deck, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deck: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create deck dir: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// FileName returns the conventional file name for a deck id.
func FileName(deckID string) string {
	return "tasks." + deckID + ".json"
}
