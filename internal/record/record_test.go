package record

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashon-study/lashon/internal/placement"
	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/store"
	"github.com/lashon-study/lashon/internal/vocab"
)

func setup(t *testing.T) (*Recorder, *store.Store) {
	t.Helper()
	s, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "rec.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tr, err := progress.NewTracker(context.Background(), &progress.MemoryStore{}, func() time.Time { return day })
	require.NoError(t, err)
	return New(s.ResultRepo(), tr, nil), s
}

func fixed() *quiz.Session {
	return quiz.NewFixedSession([]quiz.Question{
		{ID: "a", CorrectAnswer: "x", Options: []string{"x", "y", "z", "w"}},
		{ID: "b", CorrectAnswer: "y", Options: []string{"x", "y", "z", "w"}},
	})
}

func TestQuiz(t *testing.T) {
	rec, s := setup(t)
	ctx := context.Background()

	sess := fixed()
	require.NoError(t, sess.Start())
	_, err := sess.Submit("x")
	require.NoError(t, err)
	_, err = sess.Submit("x")
	require.NoError(t, err)

	require.NoError(t, rec.Quiz(ctx, store.KindDaily, sess))

	recent, err := s.ResultRepo().Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, sess.ID(), recent[0].SessionID)
	assert.Equal(t, 1, recent[0].Correct)
	assert.Equal(t, 2, recent[0].Total)
	assert.Empty(t, recent[0].Level, "only placement results carry a level")
	assert.Equal(t, 1, rec.Tracker().State().Streak)
}

func TestPlacement(t *testing.T) {
	rec, s := setup(t)
	ctx := context.Background()

	pool, err := vocab.Default()
	require.NoError(t, err)
	test := placement.New(pool.All(), placement.Options{VocabCount: 2})
	require.NoError(t, test.Start())
	for test.State() == quiz.InProgress {
		_, q, ok := test.Current()
		require.True(t, ok)
		_, err := test.Submit(q.CorrectAnswer)
		require.NoError(t, err)
	}
	require.NoError(t, rec.Placement(ctx, test))

	recent, err := s.ResultRepo().Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, store.KindPlacement, recent[0].Kind)
	assert.Equal(t, "advanced", recent[0].Level)
	assert.Len(t, recent[0].Sections, len(test.Sections()))
}

func TestGame_UpdatesProgress(t *testing.T) {
	rec, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, rec.Game(ctx, store.KindSurvival, 7, 8))
	require.NoError(t, rec.Game(ctx, store.KindMatch, 8, 10))

	st := rec.Tracker().State()
	assert.Equal(t, 7, st.BestSurvival)
	for _, task := range st.Tasks {
		assert.Equal(t, task.ID == progress.TaskVocabGame, task.Done, task.Label)
	}
}

func TestNilDependencies(t *testing.T) {
	var nilRec *Recorder
	assert.NoError(t, nilRec.Activity(context.Background()))
	assert.Nil(t, nilRec.Tracker())

	rec := New(nil, nil, nil)
	assert.NoError(t, rec.Game(context.Background(), store.KindStory, 2, 3))
}
