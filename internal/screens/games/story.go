package games

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/games"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

// StoryScreen plays the branching story one scene at a time.
type StoryScreen struct {
	deps   screen.Deps
	story  *games.Story
	mc     components.MultiChoice
	picked *games.StoryOption // set while the scene's feedback is shown
	saved  string
}

var _ screen.Screen = (*StoryScreen)(nil)
var _ screen.KeyHintProvider = (*StoryScreen)(nil)

func NewStory(deps screen.Deps) *StoryScreen {
	return &StoryScreen{deps: deps, story: games.NewStory(games.DefaultStory)}
}

func (s *StoryScreen) Init() tea.Cmd {
	s.story.Reset()
	s.picked, s.saved = nil, ""
	s.scene()
	return nil
}

func (s *StoryScreen) scene() {
	n, ok := s.story.Current()
	if !ok {
		return
	}
	opts := make([]string, len(n.Options))
	correct := -1
	for i, o := range n.Options {
		opts[i] = o.Text
		if o.Correct {
			correct = i
		}
	}
	s.mc = components.NewMultiChoice(opts, correct)
}

func (s *StoryScreen) Title() string { return "Story Mode" }

func (s *StoryScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.picked != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.story.Finished():
		return []layout.KeyHint{{Key: "r", Description: "Play again"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{{Key: "1-3", Description: "Reply"}, {Key: "Esc", Description: "Back"}}
}

func (s *StoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.saved = "Result not saved: " + msg.Err.Error()
		}
	case tea.KeyMsg:
		if s.picked != nil {
			s.picked = nil
			if s.story.Finished() {
				return s, saveGame(s.deps.Recorder, store.KindStory, s.story.Score(), s.story.Steps())
			}
			s.scene()
			return s, nil
		}
		if s.story.Finished() {
			if msg.String() == "r" {
				return s, s.Init()
			}
			return s, nil
		}
		s.mc, _ = s.mc.Update(msg)
		if !s.mc.Submitted {
			return s, nil
		}
		opt, err := s.story.Choose(s.mc.ChosenIndex)
		if err != nil {
			return s, nil
		}
		s.picked = &opt
	}
	return s, nil
}

func (s *StoryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	if s.story.Finished() && s.picked == nil {
		b.WriteString(theme.Title.Render("The End") + "\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("Polite replies: %d of %d", s.story.Score(), s.story.Steps())) + "\n")
		if s.saved != "" {
			b.WriteString("\n" + theme.Incorrect.Render(s.saved) + "\n")
		}
		return layout.Center(components.Card(b.String(), cw), width, height)
	}

	n, _ := s.story.Current()
	b.WriteString(theme.Subtitle.Render(n.Title) + "\n\n")
	b.WriteString(theme.Hebrew.Width(cw-4).Render(n.Situation) + "\n\n")
	b.WriteString(theme.Hebrew.Render(n.Question) + "\n\n")
	b.WriteString(s.mc.View())

	if s.picked != nil {
		style := theme.Incorrect
		if s.picked.Correct {
			style = theme.Correct
		}
		b.WriteString("\n" + style.Width(cw-4).Render(s.picked.Feedback))
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}
