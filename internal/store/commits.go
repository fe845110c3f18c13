package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetCommit returns the commit row by sha, or nil if none exists.
func (s *Session) GetCommit(ctx context.Context, id string) (*CommitRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, short_id, title, message, author_name, author_email,
		       authored_date, committer_name, committer_email, committed_date,
		       created_at, web_url, status, project_id, additions, deletions,
		       total, trailers, last_pipeline_id
		FROM commits WHERE id = ?`, id)
	var c CommitRow
	err := row.Scan(&c.ID, &c.ShortID, &c.Title, &c.Message, &c.AuthorName,
		&c.AuthorEmail, &c.AuthoredDate, &c.CommitterName, &c.CommitterEmail,
		&c.CommittedDate, &c.CreatedAt, &c.WebURL, &c.Status, &c.ProjectID,
		&c.Additions, &c.Deletions, &c.Total, &c.Trailers, &c.LastPipelineID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up commit %s: %w", id, err)
	}
	return &c, nil
}

// SaveCommit writes the full row, inserting or updating by primary key.
func (s *Session) SaveCommit(ctx context.Context, c *CommitRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO commits (id, short_id, title, message, author_name, author_email,
			authored_date, committer_name, committer_email, committed_date,
			created_at, web_url, status, project_id, additions, deletions,
			total, trailers, last_pipeline_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			short_id = excluded.short_id,
			title = excluded.title,
			message = excluded.message,
			author_name = excluded.author_name,
			author_email = excluded.author_email,
			authored_date = excluded.authored_date,
			committer_name = excluded.committer_name,
			committer_email = excluded.committer_email,
			committed_date = excluded.committed_date,
			created_at = excluded.created_at,
			web_url = excluded.web_url,
			status = excluded.status,
			project_id = excluded.project_id,
			additions = excluded.additions,
			deletions = excluded.deletions,
			total = excluded.total,
			trailers = excluded.trailers,
			last_pipeline_id = excluded.last_pipeline_id`,
		c.ID, c.ShortID, c.Title, c.Message, c.AuthorName, c.AuthorEmail,
		c.AuthoredDate, c.CommitterName, c.CommitterEmail, c.CommittedDate,
		c.CreatedAt, c.WebURL, c.Status, c.ProjectID, c.Additions, c.Deletions,
		c.Total, c.Trailers, c.LastPipelineID)
	if err != nil {
		return fmt.Errorf("saving commit %s: %w", c.ID, err)
	}
	return nil
}

// SaveCommitParent writes one parent-id child row at its position.
func (s *Session) SaveCommitParent(ctx context.Context, commitID string, position int, parentID string) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO commit_parents (commit_id, position, parent_id)
		VALUES (?, ?, ?)
		ON CONFLICT(commit_id, position) DO UPDATE SET parent_id = excluded.parent_id`,
		commitID, position, parentID)
	if err != nil {
		return fmt.Errorf("saving commit %s parent %s: %w", commitID, parentID, err)
	}
	return nil
}

// TrimCommitParents drops parent rows at or beyond n.
func (s *Session) TrimCommitParents(ctx context.Context, commitID string, n int) error {
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM commit_parents WHERE commit_id = ? AND position >= ?`, commitID, n)
	if err != nil {
		return fmt.Errorf("trimming commit %s parents: %w", commitID, err)
	}
	return nil
}

// CommitParents returns the commit's parent shas in position order.
func (s *Session) CommitParents(ctx context.Context, commitID string) ([]string, error) {
	rows, err := s.tx.QueryContext(ctx,
		`SELECT parent_id FROM commit_parents WHERE commit_id = ? ORDER BY position`, commitID)
	if err != nil {
		return nil, fmt.Errorf("listing commit %s parents: %w", commitID, err)
	}
	defer rows.Close()

	var parents []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning commit parent: %w", err)
		}
		parents = append(parents, p)
	}
	return parents, rows.Err()
}

// GetBranch returns the branch row by name, or nil if none exists.
func (s *Session) GetBranch(ctx context.Context, name string) (*BranchRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT name, merged, protected, is_default, can_push, web_url, commit_id
		FROM branches WHERE name = ?`, name)
	var b BranchRow
	err := row.Scan(&b.Name, &b.Merged, &b.Protected, &b.IsDefault, &b.CanPush, &b.WebURL, &b.CommitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up branch %s: %w", name, err)
	}
	return &b, nil
}

// SaveBranch writes the full row, inserting or updating by primary key.
func (s *Session) SaveBranch(ctx context.Context, b *BranchRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO branches (name, merged, protected, is_default, can_push, web_url, commit_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			merged = excluded.merged,
			protected = excluded.protected,
			is_default = excluded.is_default,
			can_push = excluded.can_push,
			web_url = excluded.web_url,
			commit_id = excluded.commit_id`,
		b.Name, b.Merged, b.Protected, b.IsDefault, b.CanPush, b.WebURL, b.CommitID)
	if err != nil {
		return fmt.Errorf("saving branch %s: %w", b.Name, err)
	}
	return nil
}
