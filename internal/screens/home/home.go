package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/router"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/screens/dictionary"
	"github.com/lashon-study/lashon/internal/screens/games"
	"github.com/lashon-study/lashon/internal/screens/history"
	"github.com/lashon-study/lashon/internal/screens/placement"
	"github.com/lashon-study/lashon/internal/screens/quiz"
	"github.com/lashon-study/lashon/internal/screens/today"
	"github.com/lashon-study/lashon/internal/ui/components"
	"github.com/lashon-study/lashon/internal/ui/layout"
)

// HomeScreen is the main menu.
type HomeScreen struct {
	deps       screen.Deps
	menu       components.Menu
	menuLabels []string
}

var _ screen.Screen = (*HomeScreen)(nil)

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
	}
}

// New creates the home screen. Each menu entry builds a fresh screen.
func New(deps screen.Deps) *HomeScreen {
	menuLabels := []string{"DAILY QUIZ", "DICTIONARY QUIZ", "PLACEMENT TEST", "GAMES", "TODAY", "DICTIONARY", "PROGRESS", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return quiz.New(deps, quiz.Daily) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return quiz.New(deps, quiz.Reverse) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return placement.New(deps) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return games.New(deps) })},
		{Label: menuLabels[4], Action: push(func() screen.Screen { return today.New(deps) })},
		{Label: menuLabels[5], Action: push(func() screen.Screen { return dictionary.New(deps) })},
		{Label: menuLabels[6], Action: push(func() screen.Screen { return history.New(deps.Recorder) })},
		{Label: menuLabels[7], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer, and gaps
	termHeight := height + 8
	compact := termHeight < 34 || layout.IsCompactWidth(width)

	cw := contentWidth(width)

	var st progress.State
	if t := h.deps.Recorder.Tracker(); t != nil {
		st = t.State()
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(mood(st), cw))
	}
	sections = append(sections, renderStatsBar(st, cw, compact))
	if !h.deps.Tutor.Enabled() {
		sections = append(sections, renderTutorBanner(cw))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// mood picks the mascot from today's progress.
func mood(st progress.State) MascotVariant {
	switch done := st.CompletedCount(); {
	case len(st.Tasks) > 0 && done == len(st.Tasks):
		return MascotCelebrating
	case done == 0 && st.Streak > 0 && st.LastActivity != st.TasksDay:
		return MascotAlert
	}
	return MascotIdle
}
