package deckgen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/answer"
	"github.com/abhisek/langtrainer/internal/deck"
)

// Validator checks one generated task. Implementations are stateless.
type Validator interface {
	Name() string
	Validate(t *deck.Task) *ValidationError
}

// ValidationError explains why a generated task was dropped.
type ValidationError struct {
	Validator string
	Prompt    string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q rejected %q: %s", e.Validator, e.Prompt, e.Message)
}

const maxPromptRunes = 300

// StructuralValidator checks the shape of a task: one blank, both prompts
// present and bounded, at least one accepted answer.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(t *deck.Task) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Prompt: t.PromptTemplate, Message: msg}
	}
	switch {
	case strings.Count(t.PromptTemplate, deck.BlankMarker) != 1:
		return fail("template must contain exactly one " + deck.BlankMarker)
	case strings.TrimSpace(t.PromptNative) == "":
		return fail("native prompt is empty")
	case utf8.RuneCountInString(t.PromptTemplate) > maxPromptRunes,
		utf8.RuneCountInString(t.PromptNative) > maxPromptRunes:
		return fail(fmt.Sprintf("prompt exceeds %d characters", maxPromptRunes))
	case len(nonBlank(t.AcceptableAnswers)) == 0:
		return fail("no acceptable answers")
	}
	return nil
}

// OptionsValidator checks multiple-choice tasks: the options are distinct
// under answer normalization, every accepted answer is offered, and the
// affix rule leaves at least one accepted answer visible.
type OptionsValidator struct {
	Suppressor *affix.Suppressor
}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(t *deck.Task) *ValidationError {
	opts := nonBlank(t.Options)
	if len(opts) == 0 {
		return nil
	}
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Prompt: t.PromptTemplate, Message: msg}
	}

	if len(opts) < 2 {
		return fail("multiple choice needs at least two options")
	}
	seen := make(map[string]struct{}, len(opts))
	for _, o := range opts {
		key := answer.Normalize(o)
		if _, dup := seen[key]; dup {
			return fail(fmt.Sprintf("option %q duplicates another option", o))
		}
		seen[key] = struct{}{}
	}
	for _, a := range nonBlank(t.AcceptableAnswers) {
		if _, ok := seen[answer.Normalize(a)]; !ok {
			return fail(fmt.Sprintf("accepted answer %q is not among the options", a))
		}
	}

	if v.Suppressor != nil {
		blocked := v.Suppressor.ComputeBlocked(t)
		visible := false
		for _, a := range t.AcceptableAnswers {
			if !blocked.Contains(a) {
				visible = true
				break
			}
		}
		if !visible {
			return fail("every accepted answer repeats the word before the blank")
		}
	}
	return nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
