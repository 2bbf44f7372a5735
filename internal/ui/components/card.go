package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lashon-study/lashon/internal/ui/theme"
)

// ContentWidth returns the inner width shared by a screen's boxes so they
// line up.
func ContentWidth(frameWidth int) int {
	return min(64, max(24, frameWidth-6))
}

// Card wraps content in a rounded box of the given content width.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// PillState is how a Pills entry is drawn.
type PillState int

const (
	PillPending PillState = iota
	PillActive
	PillDone
)

// Pill is one label in a step indicator.
type Pill struct {
	Label string
	State PillState
}

// Pills renders a horizontal step indicator such as placement sections.
func Pills(pills []Pill) string {
	parts := make([]string, 0, len(pills))
	for _, p := range pills {
		switch p.State {
		case PillActive:
			parts = append(parts, theme.PillActive.Render(p.Label))
		case PillDone:
			parts = append(parts, theme.PillDone.Render("✓ "+p.Label))
		default:
			parts = append(parts, theme.PillPending.Render(p.Label))
		}
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(theme.Border).Render(" › "))
}
