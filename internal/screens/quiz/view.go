package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lashon-study/lashon/internal/tutor"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect.Render(s.errMsg), width, height)
	}
	if s.phase == phaseFinished {
		return s.renderFinished(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	answered := len(s.session.Answers())
	info := fmt.Sprintf("Question %d of %d   ✓ %d", min(answered+1, s.session.Len()), s.session.Len(), s.session.Score().Correct)
	if s.phase == phaseFeedback {
		info = fmt.Sprintf("Question %d of %d   ✓ %d", answered, s.session.Len(), s.session.Score().Correct)
	}
	b.WriteString(theme.Dim.Render(info) + "\n")
	b.WriteString(components.NewProgressBar("", s.session.Progress(), false, cw).View() + "\n\n")

	b.WriteString(theme.Body.Render(s.q.Prompt) + "\n")
	b.WriteString(theme.Hebrew.Render(s.q.PromptTerm) + "\n\n")
	b.WriteString(s.mc.View())

	if s.phase == phaseFeedback {
		b.WriteString("\n" + s.renderFeedback(cw))
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}

func (s *QuizScreen) renderFeedback(cw int) string {
	if s.last.IsCorrect {
		return theme.Correct.Render("Correct! נכון")
	}

	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Not quite.") + " " +
		theme.Body.Render("The answer is "+s.q.CorrectAnswer) + "\n")

	switch {
	case s.explaining:
		b.WriteString(theme.Hint.Render("Asking the tutor..."))
	case s.tutorErr != "":
		b.WriteString(theme.Incorrect.Render("Tutor: " + s.tutorErr))
	case s.explanation != nil:
		b.WriteString(renderExplanation(s.explanation, cw))
	case s.deps.Tutor.Enabled():
		b.WriteString(theme.Hint.Render("Press e for an explanation."))
	}
	return b.String()
}

func renderExplanation(e *tutor.Explanation, cw int) string {
	wrap := lipgloss.NewStyle().Width(cw - 4)
	return wrap.Render(
		theme.Hebrew.Render(e.Example) + "\n" +
			theme.Body.Render(e.ExampleTranslation) + "\n" +
			theme.Hint.Render("Tip: "+e.Tip))
}

func (s *QuizScreen) renderFinished(width, height int) string {
	cw := components.ContentWidth(width)
	sc := s.session.Score()

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw-4).Render("Quiz complete!") + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d / %d  (%d%%)", sc.Correct, sc.Total, sc.Percent())) + "\n\n")

	questions := s.session.Questions()
	for i, a := range s.session.Answers() {
		q := questions[i]
		mark := theme.Correct.Render("✓")
		if !a.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		line := fmt.Sprintf("%s %s → %s", mark, q.PromptTerm, q.CorrectAnswer)
		b.WriteString(line + "\n")
	}

	if s.saveErr != "" {
		b.WriteString("\n" + theme.Incorrect.Render("Could not save result: "+s.saveErr))
	}
	b.WriteString("\n" + theme.Hint.Render("Press r to play again."))
	return layout.Center(components.Card(b.String(), cw), width, height)
}
