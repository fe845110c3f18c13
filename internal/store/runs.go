package store

import (
	"context"
	"fmt"
)

// RecordRun inserts or updates a sync run outcome.
func (s *Store) RecordRun(ctx context.Context, r *RunRow) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, finished_at, status, endpoints, rows_written, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			status = excluded.status,
			endpoints = excluded.endpoints,
			rows_written = excluded.rows_written,
			error = excluded.error`,
		r.ID, r.StartedAt, r.FinishedAt, r.Status, r.Endpoints, r.RowsWritten, r.Error)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// RecentRuns returns the most recent sync runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, status, endpoints, rows_written, error
		FROM sync_runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Status,
			&r.Endpoints, &r.RowsWritten, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// entityTables is the fixed set reported by Counts, in display order.
var entityTables = []string{
	"users", "namespaces", "projects", "branches", "commits", "commit_parents",
	"labels", "tags", "project_tags", "releases", "pipelines", "jobs",
	"artifacts", "merge_requests", "mr_labels", "deploy_tokens",
}

// TableCount pairs a table name with its row count.
type TableCount struct {
	Table string
	Count int64
}

// Counts returns per-entity row counts in a stable display order.
func (s *Store) Counts(ctx context.Context) ([]TableCount, error) {
	out := make([]TableCount, 0, len(entityTables))
	for _, table := range entityTables {
		var n int64
		// Table names come from the fixed list above, not user input.
		q := "SELECT COUNT(*) FROM " + table
		if err := s.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		out = append(out, TableCount{Table: table, Count: n})
	}
	return out, nil
}
