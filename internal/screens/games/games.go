// Package games holds the game menu and one screen per game.
package games

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/games"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/router"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

// savedMsg reports the outcome of storing a finished game.
type savedMsg struct {
	Err error
}

func saveGame(rec *record.Recorder, kind string, correct, total int) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{Err: rec.Game(context.Background(), kind, correct, total)}
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// MenuScreen lists the games.
type MenuScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*MenuScreen)(nil)

func New(deps screen.Deps) *MenuScreen {
	rounds := deps.MatchRounds
	if rounds <= 0 {
		rounds = games.MaxRounds
	}
	items := []components.MenuItem{
		{Label: "Vocabulary Match", Hint: fmt.Sprintf("%d rounds", rounds), Action: func() tea.Cmd { return push(NewMatch(deps)) }},
		{Label: "Survival", Hint: "until the first miss", Action: func() tea.Cmd { return push(NewSurvival(deps)) }},
		{Label: "Sentence Builder", Hint: "put the words in order", Action: func() tea.Cmd { return push(NewSentence(deps)) }},
		{Label: "Story Mode", Hint: "a day at base", Action: func() tea.Cmd { return push(NewStory(deps)) }},
	}
	return &MenuScreen{menu: components.NewMenu(items)}
}

func (m *MenuScreen) Init() tea.Cmd { return nil }

func (m *MenuScreen) Title() string { return "Games" }

func (m *MenuScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *MenuScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Render("Pick a game") + "\n\n")
	b.WriteString(m.menu.View())
	return layout.Center(components.Card(b.String(), cw), width, height)
}
