package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashon-study/lashon/internal/vocab"
)

func makePool(n int) []vocab.Entry {
	pool := make([]vocab.Entry, n)
	for i := range pool {
		pool[i] = vocab.Entry{
			ID:       i + 1,
			Headword: fmt.Sprintf("word-%d", i+1),
			Gloss:    fmt.Sprintf("gloss-%d", i+1),
			Category: vocab.CategoryCore,
		}
	}
	return pool
}

func seeded(seed uint64) *Engine {
	return NewEngine(Config{Rand: rand.New(rand.NewPCG(seed, seed+1))})
}

func TestGenerateQuestionSet_InsufficientData(t *testing.T) {
	for n := 0; n < MinPoolSize; n++ {
		_, err := seeded(1).GenerateQuestionSet(makePool(n), 5)
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("pool of %d: err = %v, want ErrInsufficientData", n, err)
		}
	}
}

func TestGenerateQuestionSet_Counts(t *testing.T) {
	tests := []struct {
		pool, count, want int
	}{
		{4, 4, 4},
		{10, 5, 5},
		{10, 10, 10},
		{4, 8, 4},
		{6, 100, 6},
		{10, 0, 0},
		{10, -3, 0},
	}

	for _, tt := range tests {
		qs, err := seeded(7).GenerateQuestionSet(makePool(tt.pool), tt.count)
		if err != nil {
			t.Fatalf("pool=%d count=%d: unexpected error: %v", tt.pool, tt.count, err)
		}
		if len(qs) != tt.want {
			t.Errorf("pool=%d count=%d: got %d questions, want %d", tt.pool, tt.count, len(qs), tt.want)
		}
	}
}

func TestGenerateQuestionSet_OptionInvariants(t *testing.T) {
	pool := makePool(12)
	glossOf := make(map[string]int)
	for _, e := range pool {
		glossOf[e.Gloss] = e.ID
	}

	for seed := uint64(0); seed < 200; seed++ {
		qs, err := seeded(seed).GenerateQuestionSet(pool, 12)
		require.NoError(t, err)

		seenEntries := make(map[int]bool)
		for _, q := range qs {
			require.Len(t, q.Options, OptionCount)

			distinct := make(map[string]bool)
			for _, o := range q.Options {
				distinct[o] = true
				_, ok := glossOf[o]
				assert.True(t, ok, "option %q not from pool", o)
			}
			assert.Len(t, distinct, OptionCount, "options must be distinct: %v", q.Options)

			hits := 0
			for _, o := range q.Options {
				if o == q.CorrectAnswer {
					hits++
				}
			}
			assert.Equal(t, 1, hits, "correct answer must appear once")

			// The correct answer is the sampled entry's own gloss.
			assert.Equal(t, q.EntryID, glossOf[q.CorrectAnswer])
			assert.Equal(t, fmt.Sprintf("word-%d", q.EntryID), q.PromptTerm)

			assert.False(t, seenEntries[q.EntryID], "entry %d sampled twice", q.EntryID)
			seenEntries[q.EntryID] = true
		}
	}
}

func TestGenerateQuestionSet_IDsAndPrompt(t *testing.T) {
	e := NewEngine(Config{
		Prompt:   PlacementPrompt,
		IDPrefix: PlacementIDPrefix,
		Rand:     rand.New(rand.NewPCG(3, 4)),
	})
	qs, err := e.GenerateQuestionSet(makePool(8), 3)
	require.NoError(t, err)

	for i, q := range qs {
		assert.Equal(t, fmt.Sprintf("vocab-%d", i), q.ID)
		assert.Equal(t, PlacementPrompt, q.Prompt)
	}
}

func TestGenerateQuestionSet_DuplicateGlossKeptByEntry(t *testing.T) {
	// Distinct entries sharing a gloss are distinct distractor sources, so
	// the same text can appear twice among the options.
	pool := []vocab.Entry{
		{ID: 1, Headword: "a", Gloss: "same"},
		{ID: 2, Headword: "b", Gloss: "same"},
		{ID: 3, Headword: "c", Gloss: "other-1"},
		{ID: 4, Headword: "d", Gloss: "other-2"},
	}
	qs, err := seeded(1).GenerateQuestionSet(pool, 4)
	require.NoError(t, err)
	for _, q := range qs {
		require.Len(t, q.Options, OptionCount)
		if q.EntryID == 3 || q.EntryID == 4 {
			n := 0
			for _, o := range q.Options {
				if o == "same" {
					n++
				}
			}
			assert.Equal(t, 2, n)
		}
	}
}

func TestGenerateQuestionSet_Reverse(t *testing.T) {
	e := NewEngine(Config{Direction: GlossToHeadword, Rand: rand.New(rand.NewPCG(5, 6))})
	qs, err := e.GenerateQuestionSet(makePool(6), 6)
	require.NoError(t, err)

	for _, q := range qs {
		assert.Equal(t, ReversePrompt, q.Prompt)
		assert.Equal(t, fmt.Sprintf("gloss-%d", q.EntryID), q.PromptTerm)
		assert.Equal(t, fmt.Sprintf("word-%d", q.EntryID), q.CorrectAnswer)
	}
}

func TestGenerateQuestionSet_Randomness(t *testing.T) {
	// Different runs should order entries differently with overwhelming
	// probability. Count identical orderings over many trials.
	pool := makePool(20)
	e := NewEngine(Config{})

	first, err := e.GenerateQuestionSet(pool, 10)
	require.NoError(t, err)

	same := 0
	const trials = 50
	for i := 0; i < trials; i++ {
		qs, err := e.GenerateQuestionSet(pool, 10)
		require.NoError(t, err)
		if sameOrder(first, qs) {
			same++
		}
	}
	assert.Less(t, same, 2, "question order repeated %d/%d times", same, trials)
}

func TestGenerateQuestionSet_Uniform(t *testing.T) {
	// Every entry should be picked roughly count/len(pool) of the time.
	pool := makePool(8)
	e := seeded(42)
	hits := make(map[int]int)
	const trials = 4000
	for i := 0; i < trials; i++ {
		qs, err := e.GenerateQuestionSet(pool, 2)
		require.NoError(t, err)
		for _, q := range qs {
			hits[q.EntryID]++
		}
	}
	want := trials * 2 / len(pool)
	for id := 1; id <= len(pool); id++ {
		assert.InDelta(t, want, hits[id], float64(want)/5, "entry %d", id)
	}
}

func TestRound(t *testing.T) {
	e := seeded(9)
	_, err := e.Round(makePool(3), "r")
	assert.ErrorIs(t, err, ErrInsufficientData)

	q, err := e.Round(makePool(5), "round-1")
	require.NoError(t, err)
	assert.Equal(t, "round-1", q.ID)
	assert.Len(t, q.Options, OptionCount)
	assert.GreaterOrEqual(t, q.CorrectIndex(), 0)
}

func TestGenerateQuestionSet_PoolNotMutated(t *testing.T) {
	pool := makePool(6)
	before := slices.Clone(pool)
	_, err := seeded(2).GenerateQuestionSet(pool, 6)
	require.NoError(t, err)
	assert.Equal(t, before, pool)
}

func sameOrder(a, b []Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].EntryID != b[i].EntryID {
			return false
		}
	}
	return true
}
