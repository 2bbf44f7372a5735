package games

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// DefaultSentence is the target of the bundled sentence builder round.
const DefaultSentence = "אני הולך לבית הספר היום"

// SentenceBuilder asks the player to put the words of a sentence back in order.
type SentenceBuilder struct {
	target string
	rng    *rand.Rand

	tokens []string
	used   []bool
	chosen []int
}

// NewSentenceBuilder returns a builder for target. A nil rng uses the
// global source.
func NewSentenceBuilder(target string, rng *rand.Rand) *SentenceBuilder {
	b := &SentenceBuilder{target: strings.Join(strings.Fields(target), " "), rng: rng}
	b.Reset()
	return b
}

// Reset reshuffles the words and clears the chosen sequence.
func (b *SentenceBuilder) Reset() {
	b.tokens = strings.Fields(b.target)
	shuffle := rand.Shuffle
	if b.rng != nil {
		shuffle = b.rng.Shuffle
	}
	shuffle(len(b.tokens), func(i, j int) {
		b.tokens[i], b.tokens[j] = b.tokens[j], b.tokens[i]
	})
	b.used = make([]bool, len(b.tokens))
	b.chosen = nil
}

// Target returns the sentence to rebuild.
func (b *SentenceBuilder) Target() string { return b.target }

// Tokens returns the shuffled words.
func (b *SentenceBuilder) Tokens() []string { return slices.Clone(b.tokens) }

// Used reports whether token i has been chosen.
func (b *SentenceBuilder) Used(i int) bool { return i >= 0 && i < len(b.used) && b.used[i] }

// Choose appends token i to the sentence. It reports false if i is out of
// range or already chosen.
func (b *SentenceBuilder) Choose(i int) bool {
	if i < 0 || i >= len(b.tokens) || b.used[i] {
		return false
	}
	b.used[i] = true
	b.chosen = append(b.chosen, i)
	return true
}

// Undo removes the last chosen token.
func (b *SentenceBuilder) Undo() {
	if len(b.chosen) == 0 {
		return
	}
	last := b.chosen[len(b.chosen)-1]
	b.used[last] = false
	b.chosen = b.chosen[:len(b.chosen)-1]
}

// Built returns the sentence assembled so far.
func (b *SentenceBuilder) Built() string {
	words := make([]string, len(b.chosen))
	for n, i := range b.chosen {
		words[n] = b.tokens[i]
	}
	return strings.Join(words, " ")
}

// Complete reports whether every token has been chosen.
func (b *SentenceBuilder) Complete() bool { return len(b.chosen) == len(b.tokens) }

// Check reports whether the assembled sentence matches the target.
func (b *SentenceBuilder) Check() bool { return b.Built() == b.target }
