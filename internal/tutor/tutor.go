// Package tutor asks a language model to explain vocabulary entries
// with an example sentence and a memory tip.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lashon-study/lashon/internal/llm"
	"github.com/lashon-study/lashon/internal/vocab"
)

// PurposeExplain labels explanation requests in the tutor event log.
const PurposeExplain = "explain"

// ErrDisabled is returned when no provider is configured.
var ErrDisabled = errors.New("tutor is not configured")

// Explanation is the tutor's answer for one entry.
type Explanation struct {
	EntryID            int    `json:"-"`
	Example            string `json:"example"`
	ExampleTranslation string `json:"example_translation"`
	Tip                string `json:"tip"`
}

// Options tunes generation.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// DefaultOptions keeps explanations short.
func DefaultOptions() Options {
	return Options{MaxTokens: 400, Temperature: 0.4}
}

// Explainer produces explanations and caches them per entry for the
// lifetime of the process.
type Explainer struct {
	provider llm.Provider
	opts     Options

	mu    sync.Mutex
	cache map[int]*Explanation
}

// New returns an Explainer. A nil provider yields one whose calls all
// fail with ErrDisabled.
func New(provider llm.Provider, opts Options) *Explainer {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultOptions().MaxTokens
	}
	return &Explainer{provider: provider, opts: opts, cache: make(map[int]*Explanation)}
}

// Enabled reports whether a provider is behind the Explainer.
func (x *Explainer) Enabled() bool { return x != nil && x.provider != nil }

// Explain returns an explanation of entry. chosen is the learner's wrong
// answer, if any, and is mentioned in the prompt.
func (x *Explainer) Explain(ctx context.Context, entry vocab.Entry, chosen string) (*Explanation, error) {
	if !x.Enabled() {
		return nil, ErrDisabled
	}

	x.mu.Lock()
	if cached, ok := x.cache[entry.ID]; ok {
		x.mu.Unlock()
		return cached, nil
	}
	x.mu.Unlock()

	resp, err := x.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(entry, chosen),
		Schema:      ExplanationSchema,
		MaxTokens:   x.opts.MaxTokens,
		Temperature: x.opts.Temperature,
		Purpose:     PurposeExplain,
	})
	if err != nil {
		return nil, fmt.Errorf("explain %q: %w", entry.Headword, err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	out.EntryID = entry.ID

	x.mu.Lock()
	x.cache[entry.ID] = &out
	x.mu.Unlock()
	return &out, nil
}

const systemPrompt = `You are a warm, concise Hebrew tutor for adult beginners. ` +
	`Explain a single vocabulary word with one short example sentence in Hebrew, ` +
	`its English translation, and a memorable tip. Keep every field under 30 words.`

func buildPrompt(e vocab.Entry, chosen string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", e.Headword)
	if e.Translit != "" {
		fmt.Fprintf(&b, "Transliteration: %s\n", e.Translit)
	}
	fmt.Fprintf(&b, "Meaning: %s\n", e.Gloss)
	if e.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", e.Category)
	}
	if chosen != "" && chosen != e.Gloss {
		fmt.Fprintf(&b, "The learner confused it with: %s\n", chosen)
	}
	return b.String()
}

// ExplanationSchema is the structured output the model must return.
var ExplanationSchema = &llm.Schema{
	Name:        "word-explanation",
	Description: "Example sentence and memory tip for one Hebrew word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"example": map[string]any{
				"type":        "string",
				"description": "Short Hebrew sentence using the word",
			},
			"example_translation": map[string]any{
				"type":        "string",
				"description": "English translation of the example",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One-sentence mnemonic or usage note",
			},
		},
		"required":             []any{"example", "example_translation", "tip"},
		"additionalProperties": false,
	},
}
