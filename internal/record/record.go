// Package record persists finished quizzes, tests, and games and counts
// them as activity for the streak. Every front end goes through it.
package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lashon-study/lashon/internal/placement"
	"github.com/lashon-study/lashon/internal/progress"
	"github.com/lashon-study/lashon/internal/quiz"
	"github.com/lashon-study/lashon/internal/store"
)

// Recorder writes results and activity. Either dependency may be nil, in
// which case that half is skipped.
type Recorder struct {
	results store.ResultRepo
	tracker *progress.Tracker
	log     *zap.Logger
}

func New(results store.ResultRepo, tracker *progress.Tracker, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{results: results, tracker: tracker, log: log}
}

// Tracker returns the progress tracker, possibly nil.
func (r *Recorder) Tracker() *progress.Tracker {
	if r == nil {
		return nil
	}
	return r.tracker
}

// Results returns the result repository, possibly nil.
func (r *Recorder) Results() store.ResultRepo {
	if r == nil {
		return nil
	}
	return r.results
}

// Quiz records a finished quiz session under kind. Quizzes carry no
// level; only placement results suggest one.
func (r *Recorder) Quiz(ctx context.Context, kind string, s *quiz.Session) error {
	sc := s.Score()
	return r.save(ctx, store.Result{
		SessionID: s.ID(),
		Kind:      kind,
		Correct:   sc.Correct,
		Total:     sc.Total,
	})
}

// Placement records a finished placement test with its breakdown.
func (r *Recorder) Placement(ctx context.Context, t *placement.Test) error {
	res := t.Result()
	out := store.Result{
		SessionID: uuid.NewString(),
		Kind:      store.KindPlacement,
		Correct:   res.Score.Correct,
		Total:     res.Score.Total,
		Level:     res.Level.String(),
	}
	for _, b := range res.Breakdown {
		out.Sections = append(out.Sections, store.SectionTally{
			Section: string(b.Section),
			Correct: b.Score.Correct,
			Total:   b.Score.Total,
		})
	}
	return r.save(ctx, out)
}

// Game records a finished game. Survival also updates the best streak,
// and match and sentence games tick off their daily task.
func (r *Recorder) Game(ctx context.Context, kind string, correct, total int) error {
	if err := r.save(ctx, store.Result{Kind: kind, Correct: correct, Total: total}); err != nil {
		return err
	}
	if r == nil || r.tracker == nil {
		return nil
	}

	var err error
	switch kind {
	case store.KindSurvival:
		_, err = r.tracker.RecordSurvival(ctx, correct)
	case store.KindMatch:
		_, err = r.tracker.CompleteTask(ctx, progress.TaskVocabGame)
	case store.KindSentence:
		_, err = r.tracker.CompleteTask(ctx, progress.TaskSentence)
	}
	if err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

// Activity marks today as active without storing a result.
func (r *Recorder) Activity(ctx context.Context) error {
	if r == nil || r.tracker == nil {
		return nil
	}
	if _, err := r.tracker.RecordActivity(ctx); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

func (r *Recorder) save(ctx context.Context, res store.Result) error {
	if r == nil {
		return nil
	}
	if r.results != nil {
		id, err := r.results.Append(ctx, res)
		if err != nil {
			return fmt.Errorf("save %s result: %w", res.Kind, err)
		}
		r.log.Info("result saved",
			zap.Int64("id", id),
			zap.String("kind", res.Kind),
			zap.Int("correct", res.Correct),
			zap.Int("total", res.Total))
	}
	return r.Activity(ctx)
}
