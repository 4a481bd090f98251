package deckgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write drill exercises for adult language learners.

Rules:
- Every promptTemplate is one natural sentence in the target language containing exactly one blank written as ___ (three underscores).
- promptNative is a faithful translation of the complete sentence into the learner's native language.
- acceptableAnswers lists every string that correctly fills the blank. Use the exact spelling with accents.
- For multiple choice, options holds 3 to 6 short choices and includes every acceptable answer. Distractors should be plausible mistakes of the same kind, never nonsense.
- For verb-ending tasks the blank follows the verb stem directly (habl___) and options are bare endings.
- For free-text tasks leave options empty.
- Tasks on the same grammar point share the same group so their options can be mixed.
- Do not repeat any sentence from the "already in the collection" list.
- Keep notes to one short line, or an empty string.`

// buildUserMessage renders the request for the model. At most maxAvoid of
// the most recent avoid prompts are included.
func buildUserMessage(req Request, maxAvoid int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Native language: %s\n", req.NativeLanguage)
	fmt.Fprintf(&b, "Target language: %s\n", req.TargetLanguage)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Number of tasks: %d\n", req.Count)
	if req.Group != "" {
		fmt.Fprintf(&b, "Use group: %s\n", req.Group)
	}
	if req.Type != "" {
		fmt.Fprintf(&b, "Use type: %s\n", req.Type)
	}

	b.WriteString("\nAlready in the collection:\n")
	b.WriteString(numbered(req.AvoidPrompts, maxAvoid))
	return b.String()
}

func numbered(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}
	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
