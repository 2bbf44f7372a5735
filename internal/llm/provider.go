// Package llm talks to hosted language models for the tutor. Every
// provider returns JSON that has been checked against the request schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured completion.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider family ("anthropic", "openai", ...).
	Name() string

	// ModelID is the model requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks for JSON matching it. The response is
	// validated before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	// Purpose labels the request in the event log, e.g. "explain".
	Purpose string
}

// Schema is a named JSON Schema document.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a provider's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // "end" or "max_tokens"
}

// Usage reports token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// finish validates content against schema and fills a Response.
func finish(schema *Schema, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == stopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
