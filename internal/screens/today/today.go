// Package today is the daily checklist screen.
package today

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

type toggledMsg struct {
	State progress.State
	Err   error
}

// TodayScreen lists today's tasks and lets the learner tick them off.
type TodayScreen struct {
	tracker  *progress.Tracker
	state    progress.State
	selected int
	errMsg   string
}

var _ screen.Screen = (*TodayScreen)(nil)
var _ screen.KeyHintProvider = (*TodayScreen)(nil)

func New(deps screen.Deps) *TodayScreen {
	return &TodayScreen{tracker: deps.Recorder.Tracker()}
}

func (s *TodayScreen) Init() tea.Cmd {
	if s.tracker != nil {
		s.state = s.tracker.State()
	}
	return nil
}

func (s *TodayScreen) Title() string { return "Today" }

func (s *TodayScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space/Enter", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TodayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case toggledMsg:
		s.state = msg.State
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.state.Tasks)-1 {
				s.selected++
			}
		case "space", " ", "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

func (s *TodayScreen) toggle() tea.Cmd {
	if s.tracker == nil || s.selected >= len(s.state.Tasks) {
		return nil
	}
	t, id := s.tracker, s.state.Tasks[s.selected].ID
	return func() tea.Msg {
		st, err := t.ToggleTask(context.Background(), id)
		return toggledMsg{State: st, Err: err}
	}
}

func (s *TodayScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.tracker == nil {
		return layout.Center(theme.Hint.Render("Progress tracking is unavailable."), width, height)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Today's plan") + "\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Streak: %s   Done: %d/%d",
		progress.StreakLabel(s.state.Streak), s.state.CompletedCount(), len(s.state.Tasks))) + "\n\n")

	for i, task := range s.state.Tasks {
		box := "[ ]"
		if task.Done {
			box = "[✓]"
		}
		line := fmt.Sprintf("%s %s", box, task.Label)
		switch {
		case i == s.selected:
			line = theme.Selected.Render("▸ " + line)
		case task.Done:
			line = theme.Correct.Render("  " + line)
		default:
			line = theme.Unselected.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}
	return layout.Center(components.Card(b.String(), cw), width, height)
}
