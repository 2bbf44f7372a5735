// Package progress tracks the learner's daily tasks and activity streak.
package progress

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for activity dates.
const DateLayout = "2006-01-02"

// Task is one item on the daily checklist.
type Task struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// State is everything persisted between runs.
type State struct {
	Tasks        []Task `json:"tasks"`
	TasksDay     string `json:"tasks_day,omitempty"`
	Streak       int    `json:"streak"`
	LastActivity string `json:"last_activity,omitempty"`
	BestSurvival int    `json:"best_survival,omitempty"`
}

// StateStore loads and saves State. Load on an empty store returns the
// zero State and no error.
type StateStore interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
}

// Default task IDs.
const (
	TaskReviewWords = 1
	TaskVocabGame   = 2
	TaskSentence    = 3
	TaskAskMadricha = 4
)

// DefaultTasks returns the standard daily checklist, all undone.
func DefaultTasks() []Task {
	return []Task{
		{ID: TaskReviewWords, Label: "Review today's new words (Dictionary)"},
		{ID: TaskVocabGame, Label: "Play one round of Game 1 (vocab)"},
		{ID: TaskSentence, Label: "Play one round of Game 2 (sentences)"},
		{ID: TaskAskMadricha, Label: "Send one question or voice note to madrichot"},
	}
}

// CompletedCount returns the number of done tasks.
func (s State) CompletedCount() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Done {
			n++
		}
	}
	return n
}

// StreakLabel formats a streak length for display.
func StreakLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Day formats t as a calendar day in t's location.
func Day(t time.Time) string { return t.Format(DateLayout) }

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b string) (int, error) {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", a, err)
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", b, err)
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// NextStreak returns the streak after activity on today, given the last
// activity day. Same day leaves it unchanged; the next day extends it; a
// gap or no prior activity restarts it at 1. A last day after today
// (clock skew) leaves it unchanged.
func NextStreak(streak int, last, today string) int {
	if last == "" {
		return 1
	}
	if last == today {
		return streak
	}
	diff, err := daysBetween(last, today)
	if err != nil {
		return 1
	}
	switch {
	case diff == 1:
		return streak + 1
	case diff > 1:
		return 1
	default:
		return streak
	}
}
