package store

import (
	"context"
	"fmt"
)

// IntegrityReport lists rows whose relationships no longer resolve:
// owned children without a parent row, and dangling shared references.
type IntegrityReport struct {
	OrphanedChildren   []Orphan
	DanglingReferences []Orphan
}

// Orphan identifies one broken relationship.
type Orphan struct {
	Table  string
	Key    string
	Refers string
}

// Healthy reports whether no problems were found.
func (r *IntegrityReport) Healthy() bool {
	return len(r.OrphanedChildren) == 0 && len(r.DanglingReferences) == 0
}

// orphanQuery finds child or referencing rows whose target is missing.
type orphanQuery struct {
	table  string
	refers string
	query  string
}

var childQueries = []orphanQuery{
	{"commit_parents", "commits", `
		SELECT cp.commit_id || '#' || cp.position FROM commit_parents cp
		LEFT JOIN commits c ON c.id = cp.commit_id WHERE c.id IS NULL`},
	{"project_tags", "projects", `
		SELECT pt.project_id || '#' || pt.position FROM project_tags pt
		LEFT JOIN projects p ON p.id = pt.project_id WHERE p.id IS NULL`},
	{"mr_labels", "merge_requests", `
		SELECT ml.merge_request_id || '#' || ml.position FROM mr_labels ml
		LEFT JOIN merge_requests m ON m.id = ml.merge_request_id WHERE m.id IS NULL`},
	{"artifacts", "jobs", `
		SELECT a.job_id || '/' || a.filename FROM artifacts a
		LEFT JOIN jobs j ON j.id = a.job_id WHERE j.id IS NULL`},
	{"labels", "projects", `
		SELECT l.id FROM labels l
		LEFT JOIN projects p ON p.id = l.project_id
		WHERE l.project_id IS NOT NULL AND p.id IS NULL`},
}

var referenceQueries = []orphanQuery{
	{"projects", "namespaces", `
		SELECT pr.id FROM projects pr
		LEFT JOIN namespaces n ON n.id = pr.namespace_id
		WHERE pr.namespace_id IS NOT NULL AND n.id IS NULL`},
	{"projects", "users", `
		SELECT pr.id FROM projects pr
		LEFT JOIN users u ON u.id = pr.owner_id
		WHERE pr.owner_id IS NOT NULL AND u.id IS NULL`},
	{"branches", "commits", `
		SELECT b.name FROM branches b
		LEFT JOIN commits c ON c.id = b.commit_id
		WHERE b.commit_id IS NOT NULL AND c.id IS NULL`},
	{"commits", "pipelines", `
		SELECT c.id FROM commits c
		LEFT JOIN pipelines p ON p.id = c.last_pipeline_id
		WHERE c.last_pipeline_id IS NOT NULL AND p.id IS NULL`},
	{"merge_requests", "users", `
		SELECT m.id FROM merge_requests m
		LEFT JOIN users u ON u.id = m.author_id
		WHERE m.author_id IS NOT NULL AND u.id IS NULL`},
	{"tags", "commits", `
		SELECT t.name FROM tags t
		LEFT JOIN commits c ON c.id = t.commit_id
		WHERE t.commit_id IS NOT NULL AND c.id IS NULL`},
	{"tags", "releases", `
		SELECT t.name FROM tags t
		LEFT JOIN releases r ON r.tag_name = t.release_tag
		WHERE t.release_tag IS NOT NULL AND r.tag_name IS NULL`},
	{"releases", "commits", `
		SELECT r.tag_name FROM releases r
		LEFT JOIN commits c ON c.id = r.commit_id
		WHERE r.commit_id IS NOT NULL AND c.id IS NULL`},
	{"jobs", "pipelines", `
		SELECT j.id FROM jobs j
		LEFT JOIN pipelines p ON p.id = j.pipeline_id
		WHERE j.pipeline_id IS NOT NULL AND p.id IS NULL`},
}

// CheckIntegrity scans for orphaned children and dangling references.
// Foreign keys make these unreachable through this store's own writes, so
// findings usually mean the database was modified out-of-band.
func (s *Store) CheckIntegrity(ctx context.Context) (*IntegrityReport, error) {
	report := &IntegrityReport{}

	collect := func(queries []orphanQuery, dst *[]Orphan) error {
		for _, q := range queries {
			rows, err := s.db.QueryContext(ctx, q.query)
			if err != nil {
				return fmt.Errorf("integrity query %s: %w", q.table, err)
			}
			for rows.Next() {
				var key string
				if err := rows.Scan(&key); err != nil {
					rows.Close()
					return fmt.Errorf("integrity scan %s: %w", q.table, err)
				}
				*dst = append(*dst, Orphan{Table: q.table, Key: key, Refers: q.refers})
			}
			if err := rows.Err(); err != nil {
				rows.Close()
				return fmt.Errorf("integrity rows %s: %w", q.table, err)
			}
			rows.Close()
		}
		return nil
	}

	if err := collect(childQueries, &report.OrphanedChildren); err != nil {
		return nil, err
	}
	if err := collect(referenceQueries, &report.DanglingReferences); err != nil {
		return nil, err
	}
	return report, nil
}
