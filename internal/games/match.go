// Package games implements the short practice games: vocabulary match,
// survival, sentence builder, and story mode.
package games

import (
	"errors"
	"fmt"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/vocab"
)

// MaxRounds is the default length of a match game.
const MaxRounds = 10

var (
	// ErrGameOver is returned when a move is made on a finished game.
	ErrGameOver = errors.New("games: game over")

	// ErrInvalidOption is returned for an out-of-range story choice.
	ErrInvalidOption = errors.New("games: invalid option")
)

// Match asks one vocabulary question per round for a fixed number of
// rounds. Entries are drawn independently each round.
type Match struct {
	engine    *quiz.Engine
	pool      []vocab.Entry
	maxRounds int

	round    int
	score    int
	current  quiz.Question
	finished bool
}

// NewMatch returns a match game. maxRounds <= 0 uses MaxRounds.
func NewMatch(e *quiz.Engine, pool []vocab.Entry, maxRounds int) *Match {
	if maxRounds <= 0 {
		maxRounds = MaxRounds
	}
	return &Match{engine: e, pool: pool, maxRounds: maxRounds}
}

// Start resets the score and deals the first round.
func (m *Match) Start() error {
	m.round, m.score, m.finished = 0, 0, false
	return m.deal()
}

func (m *Match) deal() error {
	q, err := m.engine.Round(m.pool, fmt.Sprintf("match-%d", m.round+1))
	if err != nil {
		return err
	}
	m.round++
	m.current = q
	return nil
}

// Current returns the question for this round.
func (m *Match) Current() quiz.Question { return m.current }

// Round returns the one-based round number.
func (m *Match) Round() int { return m.round }

// MaxRounds returns the number of rounds in the game.
func (m *Match) MaxRounds() int { return m.maxRounds }

// Score returns the number of correct answers so far.
func (m *Match) Score() int { return m.score }

// Finished reports whether every round has been played.
func (m *Match) Finished() bool { return m.finished }

// Progress returns completed rounds over the total, in [0, 1].
func (m *Match) Progress() float64 {
	done := m.round - 1
	if m.finished {
		done = m.maxRounds
	}
	return float64(max(0, min(done, m.maxRounds))) / float64(m.maxRounds)
}

// Answer scores the choice and deals the next round, or finishes the game
// after the last round.
func (m *Match) Answer(choice string) (bool, error) {
	if m.finished {
		return false, ErrGameOver
	}
	if !m.current.HasOption(choice) {
		return false, fmt.Errorf("%w: %q", quiz.ErrInvalidChoice, choice)
	}
	correct := choice == m.current.CorrectAnswer
	if correct {
		m.score++
	}
	if m.round >= m.maxRounds {
		m.finished = true
		return correct, nil
	}
	return correct, m.deal()
}
