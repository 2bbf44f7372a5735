package today

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/record"
	"github.com/lashon-study/lashon/internal/screen"
)

func newScreen(t *testing.T) (*TodayScreen, *progress.MemoryStore) {
	t.Helper()
	ms := &progress.MemoryStore{}
	tracker, err := progress.NewTracker(context.Background(), ms, nil)
	require.NoError(t, err)
	s := New(screen.Deps{Recorder: record.New(nil, tracker, nil)})
	s.Init()
	return s, ms
}

func TestTodayScreen_ListsTasks(t *testing.T) {
	s, _ := newScreen(t)
	view := s.View(100, 30)
	for _, task := range progress.DefaultTasks() {
		assert.Contains(t, view, task.Label)
	}
	assert.Contains(t, view, "Done: 0/4")
}

func TestTodayScreen_Toggle(t *testing.T) {
	s, ms := newScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.True(t, s.state.Tasks[1].Done)
	assert.Equal(t, 1, s.state.Streak, "completing a task counts as activity")
	assert.Equal(t, 1, ms.Saves())
	assert.True(t, strings.Contains(s.View(100, 30), "Done: 1/4"))

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())
	assert.False(t, s.state.Tasks[1].Done)
}

func TestTodayScreen_NoTracker(t *testing.T) {
	s := New(screen.Deps{})
	s.Init()
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, s.View(80, 24), "unavailable")
}
