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
	"github.com/lashon-study/lashon/internal/vocab"
)

// MatchScreen plays a fixed number of vocabulary rounds.
type MatchScreen struct {
	deps  screen.Deps
	game  *games.Match
	mc    components.MultiChoice
	last  string // verdict on the previous round
	saved string
	err   string
}

var _ screen.Screen = (*MatchScreen)(nil)
var _ screen.KeyHintProvider = (*MatchScreen)(nil)

func NewMatch(deps screen.Deps) *MatchScreen {
	return &MatchScreen{
		deps: deps,
		game: games.NewMatch(quiz.NewEngine(quiz.Config{IDPrefix: "match"}), poolEntries(deps), deps.MatchRounds),
	}
}

func poolEntries(deps screen.Deps) []vocab.Entry {
	if deps.Pool == nil {
		return nil
	}
	return deps.Pool.All()
}

func (s *MatchScreen) Init() tea.Cmd {
	s.last, s.saved, s.err = "", "", ""
	if err := s.game.Start(); err != nil {
		s.err = err.Error()
		return nil
	}
	s.deal()
	return nil
}

func (s *MatchScreen) deal() {
	q := s.game.Current()
	s.mc = components.NewMultiChoice(q.Options, q.CorrectIndex())
}

func (s *MatchScreen) Title() string { return "Vocabulary Match" }

func (s *MatchScreen) KeyHints() []layout.KeyHint {
	if s.game.Finished() {
		return []layout.KeyHint{{Key: "r", Description: "Play again"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "1-4", Description: "Answer"}, {Key: "Esc", Description: "Back"}}
}

func (s *MatchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.saved = "Result not saved: " + msg.Err.Error()
		}
		return s, nil
	case tea.KeyMsg:
		if s.err != "" {
			return s, nil
		}
		if s.game.Finished() {
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
		if correct {
			s.last = theme.Correct.Render("✓ " + q.PromptTerm + " = " + q.CorrectAnswer)
		} else {
			s.last = theme.Incorrect.Render("✗ " + q.PromptTerm + " = " + q.CorrectAnswer)
		}
		if s.game.Finished() {
			return s, saveGame(s.deps.Recorder, store.KindMatch, s.game.Score(), s.game.MaxRounds())
		}
		s.deal()
	}
	return s, nil
}

func (s *MatchScreen) View(width, height int) string {
	if s.err != "" {
		return layout.Center(theme.Incorrect.Render(s.err), width, height)
	}
	cw := components.ContentWidth(width)
	var b strings.Builder

	if s.game.Finished() {
		b.WriteString(theme.Title.Render("Game over!") + "\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d / %d", s.game.Score(), s.game.MaxRounds())) + "\n")
		if s.last != "" {
			b.WriteString("\n" + s.last + "\n")
		}
		if s.saved != "" {
			b.WriteString("\n" + theme.Incorrect.Render(s.saved) + "\n")
		}
		return layout.Center(components.Card(b.String(), cw), width, height)
	}

	q := s.game.Current()
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Round %d of %d   Score %d", s.game.Round(), s.game.MaxRounds(), s.game.Score())) + "\n")
	b.WriteString(components.NewProgressBar("", s.game.Progress(), false, cw).View() + "\n\n")
	b.WriteString(theme.Hebrew.Render(q.PromptTerm) + "\n\n")
	b.WriteString(s.mc.View())
	if s.last != "" {
		b.WriteString("\n" + s.last)
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}
