package deckgen

import "github.com/abhisek/langtrainer/internal/llm"

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func strList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// DeckSchema is the structured output requested from the model. Strict
// mode on OpenAI requires every property to be listed as required.
var DeckSchema = &llm.Schema{
	Name:        "exercise-deck",
	Description: "A deck of fill-in-the-blank language exercises",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": str("Short human-readable deck title"),
			"tasks": map[string]any{
				"type":        "array",
				"description": "The exercises",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"group":             str("Dotted theme key shared by tasks whose options are interchangeable, e.g. pronouns.clitics"),
						"type":              str("Dotted task kind; use a value ending in .endings for verb-ending drills"),
						"promptNative":      str("The sentence in the learner's native language"),
						"promptTemplate":    str("The target-language sentence with exactly one ___ blank"),
						"options":           strList("Answer choices shown to the learner; empty for free-text tasks"),
						"acceptableAnswers": strList("Every answer accepted as correct"),
						"note":              str("Optional one-line grammar note; empty string when none"),
					},
					"required": []any{
						"group", "type", "promptNative", "promptTemplate",
						"options", "acceptableAnswers", "note",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "tasks"},
		"additionalProperties": false,
	},
}
