// Package placement is the placement test screen.
package placement

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	pl "github.com/lashon-study/lashon/internal/placement"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/router"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/screens/summary"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
	"github.com/lashon-study/lashon/internal/vocab"
)

// FeedbackDelay is how long the answer mark stays up before moving on.
const FeedbackDelay = 900 * time.Millisecond

type feedbackDoneMsg struct{ seq int }

type savedMsg struct {
	result pl.Result
	err    error
}

// PlacementScreen walks the learner through every section of the test.
type PlacementScreen struct {
	deps screen.Deps
	test *pl.Test

	section  *pl.Section
	q        quiz.Question
	mc       components.MultiChoice
	feedback bool
	last     quiz.AnswerRecord
	seq      int
	saving   bool

	errMsg string
}

var _ screen.Screen = (*PlacementScreen)(nil)
var _ screen.KeyHintProvider = (*PlacementScreen)(nil)

func New(deps screen.Deps) *PlacementScreen {
	var entries []vocab.Entry
	if deps.Pool != nil {
		entries = deps.Pool.All()
	}
	return &PlacementScreen{
		deps: deps,
		test: pl.New(entries, pl.Options{VocabCount: deps.PlacementVocabCount}),
	}
}

func (s *PlacementScreen) Init() tea.Cmd {
	if err := s.test.Start(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.deps.Logger().Debug("placement started", zap.Int("questions", s.test.Total()))
	s.load()
	return nil
}

func (s *PlacementScreen) load() {
	s.feedback = false
	sec, q, ok := s.test.Current()
	if !ok {
		return
	}
	s.section, s.q = sec, q
	s.mc = components.NewMultiChoice(q.Options, q.CorrectIndex())
}

func (s *PlacementScreen) Title() string { return "Placement Test" }

func (s *PlacementScreen) KeyHints() []layout.KeyHint {
	if s.feedback {
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit test"},
	}
}

func (s *PlacementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if s.feedback && msg.seq == s.seq {
			return s, s.next()
		}
	case savedMsg:
		if msg.err != nil {
			s.deps.Logger().Warn("placement result not saved", zap.Error(msg.err))
		}
		next := summary.New(msg.result, msg.err)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlacementScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || s.saving {
		return s, nil
	}
	if s.feedback {
		return s, s.next()
	}

	s.mc, _ = s.mc.Update(msg)
	choice, ok := s.mc.Chosen()
	if !ok {
		return s, nil
	}
	rec, err := s.test.Submit(choice)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.last = rec
	s.feedback = true
	s.seq++
	seq := s.seq
	return s, tea.Tick(FeedbackDelay, func(time.Time) tea.Msg { return feedbackDoneMsg{seq: seq} })
}

// next leaves feedback. Once every section is done the result is saved
// and the summary replaces this screen.
func (s *PlacementScreen) next() tea.Cmd {
	if s.test.State() != quiz.Finished {
		s.load()
		return nil
	}
	s.feedback = false
	s.saving = true
	rec, test := s.deps.Recorder, s.test
	return func() tea.Msg {
		err := rec.Placement(context.Background(), test)
		return savedMsg{result: test.Result(), err: err}
	}
}

func (s *PlacementScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect.Render(s.errMsg), width, height)
	}
	if s.saving {
		return layout.Center(theme.Hint.Render("Scoring your test..."), width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderPills() + "\n\n")
	b.WriteString(components.NewProgressBar("", s.test.Progress(), true, cw).View() + "\n\n")

	if s.section != nil {
		b.WriteString(theme.Subtitle.Render(s.section.Title) + "  " + theme.Dim.Render(s.section.Description) + "\n\n")
	}
	if s.q.Passage != "" {
		b.WriteString(theme.Hebrew.Width(cw-4).Render(s.q.Passage) + "\n\n")
	}
	b.WriteString(theme.Body.Render(s.q.Prompt) + "\n")
	if s.q.PromptTerm != "" {
		b.WriteString(theme.Hebrew.Render(s.q.PromptTerm) + "\n")
	}
	b.WriteString("\n" + s.mc.View())

	if s.feedback {
		if s.last.IsCorrect {
			b.WriteString("\n" + theme.Correct.Render("Correct!"))
		} else {
			b.WriteString("\n" + theme.Incorrect.Render(fmt.Sprintf("Answer: %s", s.q.CorrectAnswer)))
		}
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}

func (s *PlacementScreen) renderPills() string {
	secs := s.test.Sections()
	pills := make([]components.Pill, 0, len(secs))
	for i, sec := range secs {
		state := components.PillPending
		switch {
		case i < s.test.SectionIndex():
			state = components.PillDone
		case i == s.test.SectionIndex():
			state = components.PillActive
		}
		pills = append(pills, components.Pill{Label: sec.Title, State: state})
	}
	return components.Pills(pills)
}
