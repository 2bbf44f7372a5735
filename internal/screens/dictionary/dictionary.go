// Package dictionary is the searchable word list screen.
package dictionary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/tutor"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
	"github.com/lashon-study/lashon/internal/vocab"
)

type reviewedMsg struct{ Err error }

type explainedMsg struct {
	EntryID     int
	Explanation *tutor.Explanation
	Err         error
}

// DictionaryScreen lists entries by category with a search filter.
type DictionaryScreen struct {
	deps       screen.Deps
	categories []string
	category   int
	search     components.SearchInput
	entries    []vocab.Entry
	selected   int

	explaining  int // entry ID awaiting the tutor, 0 when idle
	explanation *tutor.Explanation
	explainedID int
	tutorErr    string
}

var _ screen.Screen = (*DictionaryScreen)(nil)
var _ screen.KeyHintProvider = (*DictionaryScreen)(nil)
var _ screen.EscapeHandler = (*DictionaryScreen)(nil)

func New(deps screen.Deps) *DictionaryScreen {
	s := &DictionaryScreen{
		deps:       deps,
		categories: []string{vocab.CategoryAll},
		search:     components.NewSearchInput("search words", 40),
	}
	s.search.Blur()
	if deps.Pool != nil {
		s.categories = append(s.categories, deps.Pool.Categories()...)
	}
	s.filter()
	return s
}

// Init marks the review task done; opening the word list is the review.
func (s *DictionaryScreen) Init() tea.Cmd {
	rec := s.deps.Recorder
	if rec.Tracker() == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := rec.Tracker().CompleteTask(context.Background(), progress.TaskReviewWords)
		return reviewedMsg{Err: err}
	}
}

func (s *DictionaryScreen) Title() string { return "Dictionary" }

// HandlesEscape is true while the search box has focus.
func (s *DictionaryScreen) HandlesEscape() bool { return s.search.Focused() }

func (s *DictionaryScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{{Key: "Enter/Esc", Description: "Done"}}
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Category"},
		{Key: "/", Description: "Search"},
		{Key: "↑↓", Description: "Navigate"},
	}
	if s.deps.Tutor.Enabled() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Explain"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *DictionaryScreen) filter() {
	s.entries = nil
	if s.deps.Pool != nil {
		s.entries = s.deps.Pool.Search(s.categories[s.category], s.search.Value())
	}
	s.selected = max(0, min(s.selected, len(s.entries)-1))
}

func (s *DictionaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewedMsg:
		if msg.Err != nil {
			s.deps.Logger().Warn("review task not saved", zap.Error(msg.Err))
		}
		return s, nil

	case explainedMsg:
		if msg.EntryID != s.explaining {
			return s, nil
		}
		s.explaining = 0
		s.explainedID = msg.EntryID
		s.explanation, s.tutorErr = msg.Explanation, ""
		if msg.Err != nil {
			s.tutorErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyMsg:
		if s.search.Focused() {
			return s.updateSearch(msg)
		}
		switch msg.String() {
		case "/":
			return s, s.search.Focus()
		case "left", "h":
			s.category = (s.category + len(s.categories) - 1) % len(s.categories)
			s.filter()
		case "right", "l":
			s.category = (s.category + 1) % len(s.categories)
			s.filter()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			return s, s.explain()
		}
		return s, nil
	}

	if s.search.Focused() {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DictionaryScreen) updateSearch(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		s.search.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.filter()
	return s, cmd
}

func (s *DictionaryScreen) explain() tea.Cmd {
	if !s.deps.Tutor.Enabled() || len(s.entries) == 0 || s.explaining != 0 {
		return nil
	}
	entry := s.entries[s.selected]
	s.explaining, s.tutorErr = entry.ID, ""
	x := s.deps.Tutor
	return func() tea.Msg {
		exp, err := x.Explain(context.Background(), entry, "")
		return explainedMsg{EntryID: entry.ID, Explanation: exp, Err: err}
	}
}

func (s *DictionaryScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	pills := make([]components.Pill, len(s.categories))
	for i, c := range s.categories {
		pills[i] = components.Pill{Label: c}
		if i == s.category {
			pills[i].State = components.PillActive
		}
	}
	b.WriteString(components.Pills(pills) + "\n\n")
	b.WriteString(s.search.View() + "\n\n")

	if len(s.entries) == 0 {
		b.WriteString(theme.Dim.Render("No matching words.") + "\n")
		return layout.Center(components.Card(b.String(), cw), width, height)
	}

	rows := max(3, height-14)
	start := max(0, min(s.selected-rows/2, len(s.entries)-rows))
	end := min(len(s.entries), start+rows)
	for i := start; i < end; i++ {
		e := s.entries[i]
		line := fmt.Sprintf("%s  %s  %s", theme.Hebrew.Render(e.Headword), theme.Dim.Render(e.Translit), e.Gloss)
		if i == s.selected {
			line = theme.Selected.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(theme.Dim.Render(fmt.Sprintf("%d of %d", s.selected+1, len(s.entries))) + "\n")

	sel := s.entries[s.selected]
	switch {
	case s.explaining == sel.ID:
		b.WriteString("\n" + theme.Hint.Render("Asking the tutor..."))
	case s.explainedID == sel.ID && s.tutorErr != "":
		b.WriteString("\n" + theme.Incorrect.Render("Tutor: "+s.tutorErr))
	case s.explainedID == sel.ID && s.explanation != nil:
		b.WriteString("\n" + theme.Hebrew.Width(cw-4).Render(s.explanation.Example) + "\n" +
			theme.Body.Width(cw-4).Render(s.explanation.ExampleTranslation) + "\n" +
			theme.Hint.Width(cw-4).Render("Tip: "+s.explanation.Tip))
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}
