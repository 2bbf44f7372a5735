package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/lashon-study/lashon/internal/progress"
)

// DefaultSnapshotKeep is how many state snapshots Save retains.
const DefaultSnapshotKeep = 20

// StateRepo persists progress.State as append-only JSON snapshots; the
// newest row is the current state.
type StateRepo struct {
	s *Store
}

var _ progress.StateStore = (*StateRepo)(nil)

// Load returns the newest snapshot, or the zero State if none exist.
func (r *StateRepo) Load(ctx context.Context) (progress.State, error) {
	q, args := r.s.builder().
		Select("data").
		From(r.s.builder().Table("state_snapshots")).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var raw string
	err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.State{}, nil
	}
	if err != nil {
		return progress.State{}, fmt.Errorf("query latest snapshot: %w", err)
	}

	var st progress.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return progress.State{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return st, nil
}

// Save appends a snapshot and prunes old ones.
func (r *StateRepo) Save(ctx context.Context, st progress.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	q, args := r.s.builder().
		Insert("state_snapshots").
		Columns("created_at", "data").
		Values(time.Now().UnixMilli(), string(data)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return r.Prune(ctx, DefaultSnapshotKeep)
}

// Prune deletes all but the keep most recent snapshots.
func (r *StateRepo) Prune(ctx context.Context, keep int) error {
	keep = max(1, keep)
	// Find the id of the oldest snapshot to keep.
	q, args := r.s.builder().
		Select("id").
		From(r.s.builder().Table("state_snapshots")).
		OrderBy(entsql.Desc("id")).
		Offset(keep - 1).
		Limit(1).
		Query()

	var threshold int64
	err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	q, args = r.s.builder().
		Delete("state_snapshots").
		Where(entsql.LT("id", threshold)).
		Query()
	if _, err := r.s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (r *StateRepo) Count(ctx context.Context) (int, error) {
	q, args := r.s.builder().
		Select(entsql.Count("*")).
		From(r.s.builder().Table("state_snapshots")).
		Query()
	var n int
	if err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}
