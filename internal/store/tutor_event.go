package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo.
type eventRepo struct {
	s *Store
}

var tutorEventColumns = []string{
	"id", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body", "created_at",
}

func (r *eventRepo) AppendTutorRequest(ctx context.Context, data TutorEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	q, args := r.s.builder().
		Insert("tutor_events").
		Columns(tutorEventColumns[1:]...).
		Values(
			data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs,
			success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
			time.Now().UnixMilli(),
		).
		Query()
	if _, err := r.s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("save tutor event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTutorEvents(ctx context.Context, opts QueryOpts) ([]TutorEvent, error) {
	sel := r.s.builder().
		Select(tutorEventColumns...).
		From(r.s.builder().Table("tutor_events")).
		OrderBy(entsql.Desc("id"))

	var preds []*entsql.Predicate
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("id", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ("purpose", opts.Purpose))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query tutor events: %w", err)
	}
	defer rows.Close()

	var out []TutorEvent
	for rows.Next() {
		e, err := scanTutorEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetTutorEvent(ctx context.Context, id int64) (*TutorEvent, error) {
	q, args := r.s.builder().
		Select(tutorEventColumns...).
		From(r.s.builder().Table("tutor_events")).
		Where(entsql.EQ("id", id)).
		Query()

	e, err := scanTutorEvent(r.s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTutorEvent(row scanner) (*TutorEvent, error) {
	var (
		e       TutorEvent
		success int
		ms      int64
	)
	err := row.Scan(
		&e.ID, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody, &ms,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan tutor event: %w", err)
	}
	e.Success = success != 0
	e.Timestamp = time.UnixMilli(ms)
	return &e, nil
}
