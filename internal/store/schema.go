package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

type table struct {
	name    string
	columns string
}

// Primary keys are added per dialect in migrate.
var tables = []table{
	{
		name: "state_snapshots",
		columns: `created_at BIGINT NOT NULL,
			data TEXT NOT NULL`,
	},
	{
		name: "quiz_results",
		columns: `session_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			detail TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL`,
	},
	{
		name: "tutor_events",
		columns: `provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms BIGINT NOT NULL DEFAULT 0,
			success INTEGER NOT NULL DEFAULT 0,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT '',
			created_at BIGINT NOT NULL`,
	},
}

func (s *Store) migrate(ctx context.Context) error {
	pk := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.dialect == dialect.Postgres {
		pk = "id BIGSERIAL PRIMARY KEY"
	}
	for _, t := range tables {
		ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t\t\t%s,\n\t\t\t%s\n\t\t)", t.name, pk, t.columns)
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	return nil
}
