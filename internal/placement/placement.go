// Package placement runs the multi-section placement test and suggests a
// starting level from its result.
package placement

import (
	"errors"
	"math/rand/v2"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/vocab"
)

// DefaultVocabCount is the number of generated vocabulary questions.
const DefaultVocabCount = 8

// SectionID names a placement section.
type SectionID string

const (
	SectionVocab     SectionID = "vocab"
	SectionSentences SectionID = "sentences"
	SectionReading   SectionID = "reading"
)

// Section is one part of the test.
type Section struct {
	ID          SectionID
	Title       string
	Description string

	session *quiz.Session
}

// Len returns the number of questions in the section.
func (s *Section) Len() int { return s.session.Len() }

// Score returns the section's tally.
func (s *Section) Score() quiz.Score { return s.session.Score() }

// Options configures a Test.
type Options struct {
	VocabCount int
	Rand       *rand.Rand
}

// Test is a placement test in progress. It is not safe for concurrent use.
type Test struct {
	pool     []vocab.Entry
	engine   *quiz.Engine
	count    int
	sections []*Section
	current  int
	answers  []Answer
	started  bool
}

// Answer is an answer record tagged with the section it belongs to.
type Answer struct {
	quiz.AnswerRecord
	Section SectionID
}

// New returns an unstarted test over pool.
func New(pool []vocab.Entry, opts Options) *Test {
	if opts.VocabCount <= 0 {
		opts.VocabCount = DefaultVocabCount
	}
	return &Test{
		pool:  pool,
		count: opts.VocabCount,
		engine: quiz.NewEngine(quiz.Config{
			Prompt:   quiz.PlacementPrompt,
			IDPrefix: quiz.PlacementIDPrefix,
			Rand:     opts.Rand,
		}),
	}
}

// Start builds the sections and begins at the first question. A pool too
// small for vocabulary questions drops that section. Calling Start again
// restarts the test with a fresh vocabulary section.
func (t *Test) Start() error {
	sections := make([]*Section, 0, 3)

	vs := quiz.NewSession(t.engine, t.pool, t.count)
	switch err := vs.Start(); {
	case err == nil:
		sections = append(sections, &Section{
			ID:          SectionVocab,
			Title:       "Vocabulary",
			Description: "Translate common Hebrew words.",
			session:     vs,
		})
	case errors.Is(err, quiz.ErrInsufficientData):
	default:
		return err
	}

	for _, def := range []struct {
		id          SectionID
		title, desc string
		questions   []quiz.Question
	}{
		{SectionSentences, "Sentences", "Choose the correct and natural Hebrew sentence.", sentenceQuestions},
		{SectionReading, "Reading", "Read a short text and answer a question.", readingQuestions},
	} {
		s := quiz.NewFixedSession(def.questions)
		if err := s.Start(); err != nil {
			return err
		}
		sections = append(sections, &Section{ID: def.id, Title: def.title, Description: def.desc, session: s})
	}

	t.sections = sections
	t.current = 0
	t.answers = nil
	t.started = true
	return nil
}

// Restart is an alias for Start.
func (t *Test) Restart() error { return t.Start() }

// Sections returns the test's sections in order.
func (t *Test) Sections() []*Section { return t.sections }

// State reports the test's lifecycle stage.
func (t *Test) State() quiz.State {
	switch {
	case !t.started:
		return quiz.NotStarted
	case t.current >= len(t.sections):
		return quiz.Finished
	default:
		return quiz.InProgress
	}
}

// Current returns the section and question awaiting an answer.
func (t *Test) Current() (*Section, quiz.Question, bool) {
	if t.State() != quiz.InProgress {
		return nil, quiz.Question{}, false
	}
	sec := t.sections[t.current]
	q, ok := sec.session.Current()
	return sec, q, ok
}

// SectionIndex returns the position of the current section.
func (t *Test) SectionIndex() int { return t.current }

// Submit answers the current question and moves on, crossing into the
// next section when the current one is done.
func (t *Test) Submit(chosen string) (quiz.AnswerRecord, error) {
	switch t.State() {
	case quiz.NotStarted:
		return quiz.AnswerRecord{}, quiz.ErrNotStarted
	case quiz.Finished:
		return quiz.AnswerRecord{}, quiz.ErrSessionFinished
	}

	sec := t.sections[t.current]
	rec, err := sec.session.Submit(chosen)
	if err != nil {
		return rec, err
	}
	t.answers = append(t.answers, Answer{AnswerRecord: rec, Section: sec.ID})
	t.advance()
	return rec, nil
}

func (t *Test) advance() {
	for t.current < len(t.sections) && t.sections[t.current].session.State() == quiz.Finished {
		t.current++
	}
}

// Answers returns every answer given so far, in order.
func (t *Test) Answers() []Answer {
	out := make([]Answer, len(t.answers))
	copy(out, t.answers)
	return out
}

// Total returns the number of questions across all sections.
func (t *Test) Total() int {
	n := 0
	for _, s := range t.sections {
		n += s.Len()
	}
	return n
}

// Progress returns the fraction of all questions answered.
func (t *Test) Progress() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(len(t.answers)) / float64(total)
}

// SectionScore is one line of the result breakdown.
type SectionScore struct {
	Section SectionID
	Title   string
	Score   quiz.Score
}

// Result summarizes a test.
type Result struct {
	Score     quiz.Score
	Level     quiz.Level
	Breakdown []SectionScore
}

// Result computes the overall score, suggested level, and per-section
// breakdown. It can be called at any point; totals count all questions.
func (t *Test) Result() Result {
	var r Result
	for _, s := range t.sections {
		sc := s.Score()
		r.Score.Correct += sc.Correct
		r.Score.Total += sc.Total
		r.Breakdown = append(r.Breakdown, SectionScore{Section: s.ID, Title: s.Title, Score: sc})
	}
	r.Level = quiz.SuggestLevel(r.Score.Correct, r.Score.Total)
	return r
}
