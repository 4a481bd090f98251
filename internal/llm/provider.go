// Package llm talks to hosted language models. Deck generation is the only
// consumer: it sends one prompt and expects a JSON document back.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider asks for JSON matching it and validates the result.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when non-nil, selects the provider's structured output mode.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "exercise-deck".
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is the output of a generation call.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage counts tokens consumed by one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Cost estimates the USD price of u for model, and reports whether the
// model is in the pricing table.
func (u Usage) Cost(model string) (float64, bool) {
	c := LookupCost(model)
	if c == nil {
		return 0, false
	}
	return c.Cost(u.InputTokens, u.OutputTokens), true
}
