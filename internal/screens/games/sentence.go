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

// SentenceScreen rebuilds a shuffled sentence word by word.
type SentenceScreen struct {
	deps    screen.Deps
	builder *games.SentenceBuilder
	checked bool
	correct bool
	saved   string
}

var _ screen.Screen = (*SentenceScreen)(nil)
var _ screen.KeyHintProvider = (*SentenceScreen)(nil)

func NewSentence(deps screen.Deps) *SentenceScreen {
	return &SentenceScreen{deps: deps, builder: games.NewSentenceBuilder(games.DefaultSentence, nil)}
}

func (s *SentenceScreen) Init() tea.Cmd { return nil }

func (s *SentenceScreen) Title() string { return "Sentence Builder" }

func (s *SentenceScreen) KeyHints() []layout.KeyHint {
	if s.checked {
		return []layout.KeyHint{{Key: "r", Description: "Shuffle again"}, {Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Add word"},
		{Key: "Backspace", Description: "Undo"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SentenceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.Err != nil {
			s.saved = "Result not saved: " + msg.Err.Error()
		}
	case tea.KeyMsg:
		key := msg.String()
		if s.checked {
			if key == "r" {
				s.builder.Reset()
				s.checked, s.correct, s.saved = false, false, ""
			}
			return s, nil
		}
		switch {
		case key == "backspace":
			s.builder.Undo()
		case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
			if !s.builder.Choose(int(key[0] - '1')) {
				return s, nil
			}
			if s.builder.Complete() {
				s.checked = true
				s.correct = s.builder.Check()
				score := 0
				if s.correct {
					score = 1
				}
				return s, saveGame(s.deps.Recorder, store.KindSentence, score, 1)
			}
		}
	}
	return s, nil
}

func (s *SentenceScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Body.Render("Put the words in the right order:") + "\n\n")
	for i, tok := range s.builder.Tokens() {
		line := fmt.Sprintf("  %d)  %s", i+1, tok)
		if s.builder.Used(i) {
			line = theme.Dim.Render(line)
		} else {
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	built := s.builder.Built()
	if built == "" {
		built = "…"
	}
	b.WriteString("\n" + theme.Hebrew.Render(built) + "\n")

	if s.checked {
		if s.correct {
			b.WriteString("\n" + theme.Correct.Render("Perfect! מצוין"))
		} else {
			b.WriteString("\n" + theme.Incorrect.Render("Not quite. The sentence is:") + "\n" +
				theme.Hebrew.Render(s.builder.Target()))
		}
		if s.saved != "" {
			b.WriteString("\n" + theme.Incorrect.Render(s.saved))
		}
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}
