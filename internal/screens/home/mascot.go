package home

import (
	"charm.land/lipgloss/v2"

	"github.com/lashon-study/lashon/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // every task done today
	MascotAlert                     // streak at risk
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ אבג │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ אבג │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ אבג │
└─────┘`

// RenderMascot returns the mascot art for the variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Highlight
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
