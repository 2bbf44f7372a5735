package progress

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Tracker applies learner activity to persisted State. It is safe for
// concurrent use.
type Tracker struct {
	store StateStore
	now   func() time.Time

	mu    sync.Mutex
	state State
}

// NewTracker loads state from store. now defaults to time.Now.
func NewTracker(ctx context.Context, store StateStore, now func() time.Time) (*Tracker, error) {
	if now == nil {
		now = time.Now
	}
	st, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	t := &Tracker{store: store, now: now, state: st}
	t.rollover()
	return t, nil
}

// rollover resets the checklist when the stored day is not today, or when
// the stored list does not match the default shape.
func (t *Tracker) rollover() {
	today := Day(t.now())
	if t.state.TasksDay != today || len(t.state.Tasks) != len(DefaultTasks()) {
		t.state.Tasks = DefaultTasks()
		t.state.TasksDay = today
	}
}

// State returns a snapshot of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return t.snapshot()
}

func (t *Tracker) snapshot() State {
	s := t.state
	s.Tasks = append([]Task(nil), t.state.Tasks...)
	return s
}

// ToggleTask flips a task's done flag. Completing any task counts as
// activity for the streak.
func (t *Tracker) ToggleTask(ctx context.Context, id int) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()

	found := false
	for i := range t.state.Tasks {
		if t.state.Tasks[i].ID == id {
			t.state.Tasks[i].Done = !t.state.Tasks[i].Done
			found = true
		}
	}
	if !found {
		return t.snapshot(), fmt.Errorf("unknown task %d", id)
	}
	if t.state.CompletedCount() > 0 {
		t.touch()
	}
	return t.snapshot(), t.save(ctx)
}

// RecordActivity marks today as active, updating the streak.
func (t *Tracker) RecordActivity(ctx context.Context) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	t.touch()
	return t.snapshot(), t.save(ctx)
}

// RecordSurvival records a finished survival run and counts it as activity.
func (t *Tracker) RecordSurvival(ctx context.Context, streak int) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	t.state.BestSurvival = max(t.state.BestSurvival, streak)
	t.touch()
	return t.snapshot(), t.save(ctx)
}

// CompleteTask marks a task done if it is not already. Unknown IDs are ignored.
func (t *Tracker) CompleteTask(ctx context.Context, id int) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	for i := range t.state.Tasks {
		if t.state.Tasks[i].ID == id {
			t.state.Tasks[i].Done = true
		}
	}
	t.touch()
	return t.snapshot(), t.save(ctx)
}

func (t *Tracker) touch() {
	today := Day(t.now())
	t.state.Streak = NextStreak(t.state.Streak, t.state.LastActivity, today)
	t.state.LastActivity = today
}

func (t *Tracker) save(ctx context.Context) error {
	if err := t.store.Save(ctx, t.snapshot()); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
