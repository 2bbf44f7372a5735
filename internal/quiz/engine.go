// Package quiz builds randomized multiple-choice vocabulary questions and
// scores the answers given to them.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lashon-study/lashon/internal/vocab"
)

// Default prompts and ID prefixes for the quiz kinds the app offers.
const (
	DailyPrompt   = "What is the meaning of:"
	DailyIDPrefix = "q"

	PlacementPrompt   = "Choose the correct translation for this word:"
	PlacementIDPrefix = "vocab"

	ReversePrompt = "Which word means:"
)

// Config controls how an Engine renders questions.
type Config struct {
	Prompt    string
	IDPrefix  string
	Direction Direction

	// Rand is the randomness source. Nil means a time-seeded PCG.
	Rand *rand.Rand
}

// Engine generates question sets from a vocabulary pool.
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg Config
	rng *rand.Rand
}

// NewEngine returns an engine with cfg, filling unset fields with the
// daily quiz defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.Prompt == "" {
		if cfg.Direction == GlossToHeadword {
			cfg.Prompt = ReversePrompt
		} else {
			cfg.Prompt = DailyPrompt
		}
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = DailyIDPrefix
	}
	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return &Engine{cfg: cfg, rng: rng}
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// GenerateQuestionSet samples min(count, len(pool)) distinct entries and
// builds one question per entry. Each question's distractors come from
// three other entries, chosen by position in the pool rather than by text.
func (e *Engine) GenerateQuestionSet(pool []vocab.Entry, count int) ([]Question, error) {
	if len(pool) < MinPoolSize {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(pool), MinPoolSize)
	}
	count = max(0, min(count, len(pool)))

	picks := e.sample(len(pool), count)
	questions := make([]Question, 0, count)
	for n, idx := range picks {
		questions = append(questions, e.build(pool, idx, fmt.Sprintf("%s-%d", e.cfg.IDPrefix, n)))
	}
	return questions, nil
}

// Round builds a single question from one uniformly chosen entry.
// Games call it once per round; the same entry may come up again later.
func (e *Engine) Round(pool []vocab.Entry, id string) (Question, error) {
	if len(pool) < MinPoolSize {
		return Question{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(pool), MinPoolSize)
	}
	return e.build(pool, e.rng.IntN(len(pool)), id), nil
}

func (e *Engine) build(pool []vocab.Entry, idx int, id string) Question {
	entry := pool[idx]
	term, answer := e.sides(entry)

	options := make([]string, 0, OptionCount)
	options = append(options, answer)
	// Sample from the pool with idx removed: offsets at or past idx shift by one.
	for _, j := range e.sample(len(pool)-1, OptionCount-1) {
		if j >= idx {
			j++
		}
		_, d := e.sides(pool[j])
		options = append(options, d)
	}
	e.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		ID:            id,
		Prompt:        e.cfg.Prompt,
		PromptTerm:    term,
		CorrectAnswer: answer,
		Options:       options,
		EntryID:       entry.ID,
	}
}

// sides returns the shown term and the expected answer for an entry.
func (e *Engine) sides(entry vocab.Entry) (term, answer string) {
	if e.cfg.Direction == GlossToHeadword {
		return entry.Gloss, entry.Headword
	}
	return entry.Headword, entry.Gloss
}

// sample returns k distinct indices in [0, n) in random order using a
// partial Fisher-Yates shuffle.
func (e *Engine) sample(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + e.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}
