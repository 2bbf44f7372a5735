package games

import (
	"fmt"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/vocab"
)

// Survival keeps asking until the first wrong answer.
type Survival struct {
	engine *quiz.Engine
	pool   []vocab.Entry

	streak  int
	best    int
	current quiz.Question
	playing bool
	asked   int
}

// NewSurvival returns a survival game. best seeds the best streak, usually
// from persisted progress.
func NewSurvival(e *quiz.Engine, pool []vocab.Entry, best int) *Survival {
	return &Survival{engine: e, pool: pool, best: best}
}

// Start begins a new run with the streak at zero. The best streak carries over.
func (s *Survival) Start() error {
	s.streak = 0
	s.asked = 0
	if err := s.next(); err != nil {
		return err
	}
	s.playing = true
	return nil
}

func (s *Survival) next() error {
	q, err := s.engine.Round(s.pool, fmt.Sprintf("survival-%d", s.asked+1))
	if err != nil {
		return err
	}
	s.asked++
	s.current = q
	return nil
}

// Current returns the question awaiting an answer.
func (s *Survival) Current() quiz.Question { return s.current }

// Streak returns the current run's streak.
func (s *Survival) Streak() int { return s.streak }

// Best returns the best streak seen.
func (s *Survival) Best() int { return s.best }

// Playing reports whether a run is in progress.
func (s *Survival) Playing() bool { return s.playing }

// Answer scores the choice. A correct answer extends the streak and deals
// the next question; a wrong one ends the run.
func (s *Survival) Answer(choice string) (bool, error) {
	if !s.playing {
		return false, ErrGameOver
	}
	if !s.current.HasOption(choice) {
		return false, fmt.Errorf("%w: %q", quiz.ErrInvalidChoice, choice)
	}
	if choice != s.current.CorrectAnswer {
		s.playing = false
		return false, nil
	}
	s.streak++
	s.best = max(s.best, s.streak)
	return true, s.next()
}
