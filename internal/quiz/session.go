package quiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/lashon-study/lashon/internal/vocab"
)

// State is a session's lifecycle stage.
type State int

const (
	NotStarted State = iota
	InProgress
	Finished
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Finished:
		return "finished"
	default:
		return "not started"
	}
}

// Score is the tally of a session.
type Score struct {
	Correct int
	Total   int
}

// Percent returns the rounded-down percentage of correct answers.
func (s Score) Percent() int {
	if s.Total <= 0 {
		return 0
	}
	return s.Correct * 100 / s.Total
}

// Session is one run through a fixed sequence of questions.
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	id        string
	startedAt time.Time
	generate  func() ([]Question, error)
	started   bool
	questions []Question
	answers   []AnswerRecord
	current   int
}

// NewSession returns an unstarted session that draws count questions
// from pool each time it is started.
func NewSession(e *Engine, pool []vocab.Entry, count int) *Session {
	pool = slices.Clone(pool)
	return &Session{
		generate: func() ([]Question, error) {
			return e.GenerateQuestionSet(pool, count)
		},
	}
}

// NewFixedSession returns an unstarted session over a fixed question list.
func NewFixedSession(questions []Question) *Session {
	qs := slices.Clone(questions)
	return &Session{
		generate: func() ([]Question, error) { return qs, nil },
	}
}

// Start generates the question set and enters InProgress (or Finished,
// if the set is empty). Calling Start again is a restart: answers are
// discarded and a fresh set is generated.
func (s *Session) Start() error {
	qs, err := s.generate()
	if err != nil {
		return err
	}
	s.id = uuid.NewString()
	s.startedAt = time.Now()
	s.started = true
	s.questions = qs
	s.answers = nil
	s.current = 0
	return nil
}

// Restart is an alias for Start.
func (s *Session) Restart() error { return s.Start() }

// ID identifies the current run. It changes on every Start.
func (s *Session) ID() string { return s.id }

// StartedAt returns when the current run began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// State reports the session's lifecycle stage.
func (s *Session) State() State {
	switch {
	case !s.started:
		return NotStarted
	case s.current >= len(s.questions):
		return Finished
	default:
		return InProgress
	}
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (Question, bool) {
	if s.State() != InProgress {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.current }

// Len returns the number of questions in the current run.
func (s *Session) Len() int { return len(s.questions) }

// Questions returns a copy of the current run's questions.
func (s *Session) Questions() []Question { return slices.Clone(s.questions) }

// Answers returns a copy of the answers given so far, in order.
func (s *Session) Answers() []AnswerRecord { return slices.Clone(s.answers) }

// Submit answers the current question. The choice is compared to the
// correct answer by exact string equality.
func (s *Session) Submit(chosen string) (AnswerRecord, error) {
	switch s.State() {
	case NotStarted:
		return AnswerRecord{}, ErrNotStarted
	case Finished:
		return AnswerRecord{}, ErrSessionFinished
	}

	q := s.questions[s.current]
	if !q.HasOption(chosen) {
		return AnswerRecord{}, fmt.Errorf("%w: %q", ErrInvalidChoice, chosen)
	}

	rec := AnswerRecord{
		QuestionID:   q.ID,
		ChosenAnswer: chosen,
		IsCorrect:    chosen == q.CorrectAnswer,
	}
	s.answers = append(s.answers, rec)
	s.current++
	return rec, nil
}

// SubmitIndex answers the current question with the option at index i.
func (s *Session) SubmitIndex(i int) (AnswerRecord, error) {
	q, ok := s.Current()
	if !ok {
		return s.Submit("")
	}
	if i < 0 || i >= len(q.Options) {
		return AnswerRecord{}, fmt.Errorf("%w: index %d", ErrInvalidChoice, i)
	}
	return s.Submit(q.Options[i])
}

// Score counts correct answers. Total is the number of questions, not
// the number answered so far.
func (s *Session) Score() Score {
	sc := Score{Total: len(s.questions)}
	for _, a := range s.answers {
		if a.IsCorrect {
			sc.Correct++
		}
	}
	return sc
}

// Progress returns the fraction of questions answered, in [0, 1].
func (s *Session) Progress() float64 {
	if len(s.questions) == 0 {
		if s.started {
			return 1
		}
		return 0
	}
	return float64(len(s.answers)) / float64(len(s.questions))
}
