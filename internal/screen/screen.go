package screen

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/tutor"
	"github.com/lashon-study/lashon/internal/ui/layout"
	"github.com/lashon-study/lashon/internal/vocab"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that use Esc themselves, such
// as leaving a search box. When HandlesEscape is true the app forwards
// Esc instead of popping the screen.
type EscapeHandler interface {
	HandlesEscape() bool
}

// Deps is what screens need from the rest of the application.
type Deps struct {
	Pool     *vocab.Pool
	Recorder *record.Recorder
	Tutor    *tutor.Explainer
	Log      *zap.Logger

	DailyCount          int
	PlacementVocabCount int
	MatchRounds         int
}

// Logger returns Log or a no-op logger.
func (d Deps) Logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
