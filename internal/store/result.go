package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// resultRepo implements ResultRepo.
type resultRepo struct {
	s *Store
}

func (r *resultRepo) Append(ctx context.Context, res Result) (int64, error) {
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}
	detail := ""
	if len(res.Sections) > 0 {
		b, err := json.Marshal(res.Sections)
		if err != nil {
			return 0, fmt.Errorf("marshal sections: %w", err)
		}
		detail = string(b)
	}

	q, args := r.s.builder().
		Insert("quiz_results").
		Columns("session_id", "kind", "correct", "total", "level", "detail", "created_at").
		Values(res.SessionID, res.Kind, res.Correct, res.Total, res.Level, detail, res.CreatedAt.UnixMilli()).
		Returning("id").
		Query()

	var id int64
	if err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("save result: %w", err)
	}
	return id, nil
}

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]Result, error) {
	sel := r.s.builder().
		Select("id", "session_id", "kind", "correct", "total", "level", "detail", "created_at").
		From(r.s.builder().Table("quiz_results")).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			res    Result
			detail string
			ms     int64
		)
		if err := rows.Scan(&res.ID, &res.SessionID, &res.Kind, &res.Correct, &res.Total, &res.Level, &detail, &ms); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.CreatedAt = time.UnixMilli(ms)
		if detail != "" {
			if err := json.Unmarshal([]byte(detail), &res.Sections); err != nil {
				return nil, fmt.Errorf("unmarshal sections: %w", err)
			}
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *resultRepo) Stats(ctx context.Context, kind string) (ResultStats, error) {
	sel := r.s.builder().
		Select(entsql.Count("*"), entsql.Sum("correct"), entsql.Sum("total")).
		From(r.s.builder().Table("quiz_results"))
	if kind != "" {
		sel.Where(entsql.EQ("kind", kind))
	}
	q, args := sel.Query()

	var (
		st             ResultStats
		correct, total sql.NullInt64
	)
	if err := r.s.db.QueryRowContext(ctx, q, args...).Scan(&st.Count, &correct, &total); err != nil {
		return ResultStats{}, fmt.Errorf("query result stats: %w", err)
	}
	st.Correct = int(correct.Int64)
	st.Total = int(total.Int64)
	return st, nil
}
