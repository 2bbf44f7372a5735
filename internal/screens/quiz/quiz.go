// Package quiz is the multiple-choice vocabulary quiz screen.
package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	qz "github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/tutor"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/vocab"
)

// FeedbackDelay is how long a correct answer stays on screen.
const FeedbackDelay = 1200 * time.Millisecond

// Mode selects the quiz direction.
type Mode int

const (
	// Daily shows a Hebrew headword and asks for its meaning.
	Daily Mode = iota
	// Reverse shows a meaning and asks for the Hebrew word.
	Reverse
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseFinished
)

// QuizScreen runs one quiz session.
type QuizScreen struct {
	deps    screen.Deps
	mode    Mode
	session *qz.Session

	phase phase
	q     qz.Question // shown question; kept through feedback
	mc    components.MultiChoice
	last  qz.AnswerRecord
	seq   int

	explaining  bool
	explanation *tutor.Explanation
	tutorErr    string

	saveErr string
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz over the deps pool.
func New(deps screen.Deps, mode Mode) *QuizScreen {
	cfg := qz.Config{}
	if mode == Reverse {
		cfg = qz.Config{Prompt: qz.ReversePrompt, Direction: qz.GlossToHeadword}
	}
	var entries []vocab.Entry
	if deps.Pool != nil {
		entries = deps.Pool.All()
	}
	count := deps.DailyCount
	if count <= 0 {
		count = 5
	}
	return &QuizScreen{
		deps:    deps,
		mode:    mode,
		session: qz.NewSession(qz.NewEngine(cfg), entries, count),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.start()
	return nil
}

func (s *QuizScreen) start() {
	s.errMsg, s.saveErr = "", ""
	if err := s.session.Start(); err != nil {
		if errors.Is(err, qz.ErrInsufficientData) {
			s.errMsg = "Not enough words to build a quiz."
		} else {
			s.errMsg = err.Error()
		}
		return
	}
	s.deps.Logger().Debug("quiz started", zap.String("session", s.session.ID()), zap.Int("questions", s.session.Len()))
	s.showQuestion()
}

func (s *QuizScreen) showQuestion() {
	s.explaining, s.explanation, s.tutorErr = false, nil, ""
	q, ok := s.session.Current()
	if !ok {
		s.phase = phaseFinished
		return
	}
	s.phase = phaseQuestion
	s.q = q
	s.mc = components.NewMultiChoice(q.Options, q.CorrectIndex())
}

func (s *QuizScreen) Title() string {
	if s.mode == Reverse {
		return "Dictionary Quiz"
	}
	return "Daily Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFeedback:
		hints := []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		if !s.last.IsCorrect && s.deps.Tutor.Enabled() {
			hints = append(hints, layout.KeyHint{Key: "e", Description: "Explain"})
		}
		return hints
	case phaseFinished:
		return []layout.KeyHint{
			{Key: "r", Description: "Restart"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if s.phase == phaseFeedback && msg.seq == s.seq {
			return s, s.advance()
		}
		return s, nil

	case explainedMsg:
		s.explaining = false
		if msg.Err != nil {
			s.tutorErr = msg.Err.Error()
		} else {
			s.explanation = msg.Explanation
		}
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, nil
	}

	switch s.phase {
	case phaseQuestion:
		s.mc, _ = s.mc.Update(msg)
		choice, ok := s.mc.Chosen()
		if !ok {
			return s, nil
		}
		rec, err := s.session.Submit(choice)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.last = rec
		s.phase = phaseFeedback
		s.seq++
		if rec.IsCorrect {
			seq := s.seq
			return s, tea.Tick(FeedbackDelay, func(time.Time) tea.Msg { return feedbackDoneMsg{seq: seq} })
		}
		return s, nil

	case phaseFeedback:
		if msg.String() == "e" && !s.last.IsCorrect && s.deps.Tutor.Enabled() {
			return s, s.explain()
		}
		return s, s.advance()

	case phaseFinished:
		if msg.String() == "r" {
			s.start()
		}
	}
	return s, nil
}

// advance moves past feedback; finishing the session saves it.
func (s *QuizScreen) advance() tea.Cmd {
	s.showQuestion()
	if s.phase != phaseFinished {
		return nil
	}
	return s.save()
}

func (s *QuizScreen) save() tea.Cmd {
	rec := s.deps.Recorder
	sess := s.session
	kind := store.KindDaily
	if s.mode == Reverse {
		kind = store.KindReverse
	}
	return func() tea.Msg {
		return savedMsg{Err: rec.Quiz(context.Background(), kind, sess)}
	}
}

func (s *QuizScreen) explain() tea.Cmd {
	if s.explaining || s.explanation != nil || !s.deps.Tutor.Enabled() || s.deps.Pool == nil {
		return nil
	}
	entry, ok := s.deps.Pool.Get(s.q.EntryID)
	if !ok {
		return nil
	}
	s.explaining, s.tutorErr = true, ""
	x, chosen := s.deps.Tutor, s.last.ChosenAnswer
	if s.mode == Reverse {
		// The options are headwords; the learner's confusion is about meaning.
		chosen = ""
	}
	return func() tea.Msg {
		exp, err := x.Explain(context.Background(), entry, chosen)
		return explainedMsg{Explanation: exp, Err: err}
	}
}
