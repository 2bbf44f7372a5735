package placement

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/router"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/screens/summary"
	"github.com/lashon-study/lashon/internal/vocab"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newScreen(t *testing.T) *PlacementScreen {
	t.Helper()
	pool, err := vocab.Default()
	if err != nil {
		t.Fatalf("vocab.Default: %v", err)
	}
	s := New(screen.Deps{Pool: pool, PlacementVocabCount: 4})
	s.Init()
	return s
}

// answerCorrectly picks the correct option of the shown question.
func answerCorrectly(s *PlacementScreen) tea.Cmd {
	_, cmd := s.Update(keyPress(rune('1' + s.q.CorrectIndex())))
	return cmd
}

func TestPlacementScreen_Title(t *testing.T) {
	if got := newScreen(t).Title(); got != "Placement Test" {
		t.Errorf("Title = %q", got)
	}
}

func TestPlacementScreen_FirstSection(t *testing.T) {
	s := newScreen(t)
	if s.section == nil || s.section.Title != "Vocabulary" {
		t.Fatalf("section = %+v, want Vocabulary", s.section)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Vocabulary", "Sentences", "Reading"} {
		if !strings.Contains(view, want) {
			t.Errorf("pills missing %q", want)
		}
	}
}

func TestPlacementScreen_FeedbackThenNext(t *testing.T) {
	s := newScreen(t)
	first := s.q.ID
	if cmd := answerCorrectly(s); cmd == nil {
		t.Fatal("expected feedback tick")
	}
	if !s.feedback || !s.last.IsCorrect {
		t.Fatalf("feedback = %v correct = %v", s.feedback, s.last.IsCorrect)
	}
	s.Update(feedbackDoneMsg{seq: s.seq})
	if s.feedback || s.q.ID == first {
		t.Errorf("expected next question, still on %q", s.q.ID)
	}
}

func TestPlacementScreen_CompleteReplacesWithSummary(t *testing.T) {
	s := newScreen(t)
	total := s.test.Total()

	var cmd tea.Cmd
	for range total {
		answerCorrectly(s)
		_, cmd = s.Update(keyPress(' '))
	}
	if s.test.State() != quiz.Finished {
		t.Fatalf("state = %v, want finished", s.test.State())
	}
	if !s.saving || cmd == nil {
		t.Fatal("expected save command after the last answer")
	}

	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected replace command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", cmd())
	}
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	if !ok {
		t.Fatalf("replacement is %T", msg.Screen)
	}
	if !strings.Contains(sum.View(100, 40), quiz.Advanced.Name()) {
		t.Error("all-correct test should suggest advanced")
	}
}

func TestPlacementScreen_SmallPoolSkipsVocab(t *testing.T) {
	s := New(screen.Deps{Pool: vocab.NewPool("v1.0.0", nil)})
	s.Init()
	if s.errMsg != "" {
		t.Fatalf("unexpected error %q", s.errMsg)
	}
	if s.section == nil || s.section.Title != "Sentences" {
		t.Errorf("first section = %+v, want Sentences", s.section)
	}
}
