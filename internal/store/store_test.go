package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lashon-study/lashon/internal/progress"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "x")
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestStateRepo_LoadEmpty(t *testing.T) {
	s := openTestStore(t)
	st, err := s.StateRepo().Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, progress.State{}, st)
}

func TestStateRepo_SaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	want := progress.State{
		Tasks:        progress.DefaultTasks(),
		TasksDay:     "2026-03-10",
		Streak:       3,
		LastActivity: "2026-03-10",
		BestSurvival: 9,
	}
	want.Tasks[2].Done = true
	require.NoError(t, repo.Save(ctx, progress.State{Streak: 1}))
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStateRepo_Prune(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	for i := 0; i < DefaultSnapshotKeep+5; i++ {
		require.NoError(t, repo.Save(ctx, progress.State{Streak: i}))
	}
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSnapshotKeep, n)

	require.NoError(t, repo.Prune(ctx, 2))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	st, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSnapshotKeep+4, st.Streak)
}

func TestStateRepo_WithTracker(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := func() time.Time { return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) }

	tr, err := progress.NewTracker(ctx, s.StateRepo(), now)
	require.NoError(t, err)
	_, err = tr.ToggleTask(ctx, progress.TaskReviewWords)
	require.NoError(t, err)

	tr2, err := progress.NewTracker(ctx, s.StateRepo(), now)
	require.NoError(t, err)
	st := tr2.State()
	assert.Equal(t, 1, st.Streak)
	assert.True(t, st.Tasks[0].Done)
}

func TestResultRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	_, err := repo.Append(ctx, Result{SessionID: "a", Kind: KindDaily, Correct: 3, Total: 5, CreatedAt: base})
	require.NoError(t, err)
	id, err := repo.Append(ctx, Result{
		SessionID: "b",
		Kind:      KindPlacement,
		Correct:   9,
		Total:     12,
		Level:     "advanced",
		Sections:  []SectionTally{{Section: "vocab", Correct: 6, Total: 8}},
		CreatedAt: base.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].SessionID)
	assert.Equal(t, []SectionTally{{Section: "vocab", Correct: 6, Total: 8}}, recent[0].Sections)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(time.Hour)))
	assert.Nil(t, recent[1].Sections)

	st, err := repo.Stats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ResultStats{Count: 2, Correct: 12, Total: 17}, st)

	st, err = repo.Stats(ctx, KindDaily)
	require.NoError(t, err)
	assert.Equal(t, ResultStats{Count: 1, Correct: 3, Total: 5}, st)

	st, err = repo.Stats(ctx, KindSurvival)
	require.NoError(t, err)
	assert.Equal(t, ResultStats{}, st)
}

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendTutorRequest(ctx, TutorEventData{
		Provider: "mock", Model: "m1", Purpose: "explain", InputTokens: 10, OutputTokens: 20,
		LatencyMs: 150, Success: true, RequestBody: "{}", ResponseBody: `{"tip":"x"}`,
	}))
	require.NoError(t, repo.AppendTutorRequest(ctx, TutorEventData{
		Provider: "mock", Model: "m1", Purpose: "other", ErrorMessage: "boom",
	}))

	all, err := repo.QueryTutorEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "other", all[0].Purpose)
	assert.False(t, all[0].Success)

	filtered, err := repo.QueryTutorEvents(ctx, QueryOpts{Purpose: "explain", Limit: 5})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Success)
	assert.Equal(t, 20, filtered[0].OutputTokens)

	e, err := repo.GetTutorEvent(ctx, filtered[0].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"tip":"x"}`, e.ResponseBody)

	missing, err := repo.GetTutorEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.StateRepo().Save(ctx, progress.State{Streak: 2}))
	_, err := s.ResultRepo().Append(ctx, Result{SessionID: "x", Kind: KindDaily, Total: 5})
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	st, err := s.StateRepo().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Streak)
	recent, err := s.ResultRepo().Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
