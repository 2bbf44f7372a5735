package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// SearchInput wraps bubbles/textinput for filtering lists.
type SearchInput struct {
	Model textinput.Model
}

// NewSearchInput returns a focused input.
func NewSearchInput(placeholder string, limit int) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return SearchInput{Model: ti}
}

// Init returns the cursor blink command.
func (s SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

func (s SearchInput) View() string { return s.Model.View() }

// Value returns the current query.
func (s SearchInput) Value() string { return s.Model.Value() }

// Focused reports whether keystrokes go to the input.
func (s SearchInput) Focused() bool { return s.Model.Focused() }

// Focus gives the input keyboard focus.
func (s *SearchInput) Focus() tea.Cmd { return s.Model.Focus() }

// Blur releases keyboard focus.
func (s *SearchInput) Blur() { s.Model.Blur() }
