// Package history shows the streak, totals, and recent results.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/router"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

// RecentLimit is how many results the screen lists.
const RecentLimit = 50

type historyLoadedMsg struct {
	Results []store.Result
	Stats   store.ResultStats
	Err     error
}

// HistoryScreen displays progress and past results.
type HistoryScreen struct {
	results  store.ResultRepo
	state    progress.State
	items    []store.Result
	stats    store.ResultStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen from the recorder's repositories.
func New(rec *record.Recorder) *HistoryScreen {
	s := &HistoryScreen{
		results:  rec.Results(),
		expanded: make(map[int]bool),
	}
	if t := rec.Tracker(); t != nil {
		s.state = t.State()
	}
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.results
	if repo == nil {
		s.loaded = true
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()

		items, err := repo.Recent(ctx, RecentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx, "")
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Results: items, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "Progress"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.items = msg.Results
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderStats(width))
	b.WriteString("\n\n")

	if len(s.items) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No results yet. Start practicing!"))
		return b.String()
	}

	for i, r := range s.items {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-10s %d/%d", prefix, r.CreatedAt.Local().Format("Jan 02 15:04"), r.Kind, r.Correct, r.Total)
		if r.Level != "" {
			line += "  " + r.Level
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderSections(r, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderStats(width int) string {
	pct := 0
	if s.stats.Total > 0 {
		pct = s.stats.Correct * 100 / s.stats.Total
	}
	line := fmt.Sprintf("Streak: %s    Best survival: %d    Results: %d    Accuracy: %d%%",
		progress.StreakLabel(s.state.Streak), s.state.BestSurvival, s.stats.Count, pct)
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Accent).Bold(true).
		Render(line)
}

func (s *HistoryScreen) renderSections(r store.Result, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	if len(r.Sections) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No section breakdown")) + "\n"
	}
	var b strings.Builder
	for _, sec := range r.Sections {
		line := fmt.Sprintf("    %-10s %d/%d", sec.Section, sec.Correct, sec.Total)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
