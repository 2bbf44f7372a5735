package games

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/games"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

// SurvivalScreen asks until the first wrong answer.
type SurvivalScreen struct {
	deps   screen.Deps
	game   *games.Survival
	mc     components.MultiChoice
	missed quiz.Question
	saved  string
	err    string
}

var _ screen.Screen = (*SurvivalScreen)(nil)
var _ screen.KeyHintProvider = (*SurvivalScreen)(nil)

// NewSurvival seeds the best streak from saved progress.
func NewSurvival(deps screen.Deps) *SurvivalScreen {
	best := 0
	if t := deps.Recorder.Tracker(); t != nil {
		best = t.State().BestSurvival
	}
	return &SurvivalScreen{
		deps: deps,
		game: games.NewSurvival(quiz.NewEngine(quiz.Config{IDPrefix: "survival"}), poolEntries(deps), best),
	}
}

func (s *SurvivalScreen) Init() tea.Cmd {
	s.missed, s.saved, s.err = quiz.Question{}, "", ""
	if err := s.game.Start(); err != nil {
		s.err = err.Error()
		return nil
	}
	s.deal()
	return nil
}

func (s *SurvivalScreen) deal() {
	q := s.game.Current()
	s.mc = components.NewMultiChoice(q.Options, q.CorrectIndex())
}

func (s *SurvivalScreen) Title() string { return "Survival" }

func (s *SurvivalScreen) KeyHints() []layout.KeyHint {
	if !s.game.Playing() {
		return []layout.KeyHint{{Key: "r", Description: "Try again"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "1-4", Description: "Answer"}, {Key: "Esc", Description: "Back"}}
}

func (s *SurvivalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.saved = "Result not saved: " + msg.Err.Error()
		}
	case tea.KeyMsg:
		if s.err != "" {
			return s, nil
		}
		if !s.game.Playing() {
			if msg.String() == "r" {
				return s, s.Init()
			}
			return s, nil
		}
		q := s.game.Current()
		s.mc, _ = s.mc.Update(msg)
		choice, ok := s.mc.Chosen()
		if !ok {
			return s, nil
		}
		correct, err := s.game.Answer(choice)
		if err != nil {
			s.err = err.Error()
			return s, nil
		}
		if !correct {
			s.missed = q
			streak := s.game.Streak()
			return s, saveGame(s.deps.Recorder, store.KindSurvival, streak, streak+1)
		}
		s.deal()
	}
	return s, nil
}

func (s *SurvivalScreen) View(width, height int) string {
	if s.err != "" {
		return layout.Center(theme.Incorrect.Render(s.err), width, height)
	}
	cw := components.ContentWidth(width)
	var b strings.Builder
	status := fmt.Sprintf("Streak %d   Best %d", s.game.Streak(), s.game.Best())

	if !s.game.Playing() {
		b.WriteString(theme.Title.Render("Out!") + "\n\n")
		b.WriteString(theme.Body.Render(status) + "\n\n")
		b.WriteString(theme.Hebrew.Render(s.missed.PromptTerm) + " " +
			theme.Body.Render("= "+s.missed.CorrectAnswer) + "\n")
		if s.saved != "" {
			b.WriteString("\n" + theme.Incorrect.Render(s.saved) + "\n")
		}
		return layout.Center(components.Card(b.String(), cw), width, height)
	}

	q := s.game.Current()
	b.WriteString(theme.Dim.Render(status) + "\n\n")
	b.WriteString(theme.Hebrew.Render(q.PromptTerm) + "\n\n")
	b.WriteString(s.mc.View())
	return layout.Center(components.Card(b.String(), cw), width, height)
}
