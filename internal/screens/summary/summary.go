// Package summary shows the result of a finished placement test.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lashon-study/lashon/internal/placement"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/router"
	"github.com/lashon-study/lashon/internal/screen"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/ui/theme"
)

// SummaryScreen displays a placement result.
type SummaryScreen struct {
	result  placement.Result
	saveErr string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. saveErr, when set, is shown under the result.
func New(result placement.Result, saveErr error) *SummaryScreen {
	s := &SummaryScreen{result: result}
	if saveErr != nil {
		s.saveErr = saveErr.Error()
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Placement Result"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Placement complete!"))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Score: %d / %d        %d%%", res.Score.Correct, res.Score.Total, res.Score.Percent())))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(levelColor(res.Level)).Bold(true),
		"Suggested level: "+res.Level.Name()))
	b.WriteString("\n\n")
	b.WriteString(center(theme.Hebrew, res.Level.Advice()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(0, min(width-8, 60))))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Sections")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, sec := range res.Breakdown {
		line := fmt.Sprintf("  %-22s %d/%d correct", sec.Title, sec.Score.Correct, sec.Score.Total)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if sec.Score.Total > 0 && sec.Score.Correct == sec.Score.Total {
			style = style.Foreground(theme.Success)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if s.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Incorrect, "Result not saved: "+s.saveErr))
	}
	return b.String()
}

func levelColor(l quiz.Level) color.Color {
	switch l {
	case quiz.Advanced:
		return theme.Accent
	case quiz.Intermediate:
		return theme.Secondary
	default:
		return theme.Primary
	}
}
