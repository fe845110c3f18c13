package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetMergeRequest returns the merge request row by id, or nil.
func (s *Session) GetMergeRequest(ctx context.Context, id int64) (*MergeRequestRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, iid, project_id, title, description, state, merge_status,
		       source_branch, target_branch, sha, merge_commit_sha, draft,
		       web_url, created_at, updated_at, author_id, assignee_id
		FROM merge_requests WHERE id = ?`, id)
	var m MergeRequestRow
	err := row.Scan(&m.ID, &m.IID, &m.ProjectID, &m.Title, &m.Description,
		&m.State, &m.MergeStatus, &m.SourceBranch, &m.TargetBranch, &m.SHA,
		&m.MergeCommitSHA, &m.Draft, &m.WebURL, &m.CreatedAt, &m.UpdatedAt,
		&m.AuthorID, &m.AssigneeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up merge request %d: %w", id, err)
	}
	return &m, nil
}

// SaveMergeRequest writes the full row, inserting or updating by primary key.
func (s *Session) SaveMergeRequest(ctx context.Context, m *MergeRequestRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO merge_requests (id, iid, project_id, title, description, state,
			merge_status, source_branch, target_branch, sha, merge_commit_sha,
			draft, web_url, created_at, updated_at, author_id, assignee_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			iid = excluded.iid,
			project_id = excluded.project_id,
			title = excluded.title,
			description = excluded.description,
			state = excluded.state,
			merge_status = excluded.merge_status,
			source_branch = excluded.source_branch,
			target_branch = excluded.target_branch,
			sha = excluded.sha,
			merge_commit_sha = excluded.merge_commit_sha,
			draft = excluded.draft,
			web_url = excluded.web_url,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			author_id = excluded.author_id,
			assignee_id = excluded.assignee_id`,
		m.ID, m.IID, m.ProjectID, m.Title, m.Description, m.State, m.MergeStatus,
		m.SourceBranch, m.TargetBranch, m.SHA, m.MergeCommitSHA, m.Draft,
		m.WebURL, m.CreatedAt, m.UpdatedAt, m.AuthorID, m.AssigneeID)
	if err != nil {
		return fmt.Errorf("saving merge request %d: %w", m.ID, err)
	}
	return nil
}

// SaveMRLabel writes one label name attached to a merge request.
func (s *Session) SaveMRLabel(ctx context.Context, mrID int64, position int, name string) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO mr_labels (merge_request_id, position, name)
		VALUES (?, ?, ?)
		ON CONFLICT(merge_request_id, position) DO UPDATE SET name = excluded.name`,
		mrID, position, name)
	if err != nil {
		return fmt.Errorf("saving merge request %d label %q: %w", mrID, name, err)
	}
	return nil
}

// TrimMRLabels drops label rows at or beyond n.
func (s *Session) TrimMRLabels(ctx context.Context, mrID int64, n int) error {
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM mr_labels WHERE merge_request_id = ? AND position >= ?`, mrID, n)
	if err != nil {
		return fmt.Errorf("trimming merge request %d labels: %w", mrID, err)
	}
	return nil
}

// MRLabels returns the merge request's label names in position order.
func (s *Session) MRLabels(ctx context.Context, mrID int64) ([]string, error) {
	rows, err := s.tx.QueryContext(ctx,
		`SELECT name FROM mr_labels WHERE merge_request_id = ? ORDER BY position`, mrID)
	if err != nil {
		return nil, fmt.Errorf("listing merge request %d labels: %w", mrID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning merge request label: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetRelease returns the release row by tag name, or nil.
func (s *Session) GetRelease(ctx context.Context, tagName string) (*ReleaseRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT tag_name, name, description, created_at, released_at,
		       upcoming_release, author_id, commit_id
		FROM releases WHERE tag_name = ?`, tagName)
	var r ReleaseRow
	err := row.Scan(&r.TagName, &r.Name, &r.Description, &r.CreatedAt,
		&r.ReleasedAt, &r.UpcomingRelease, &r.AuthorID, &r.CommitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up release %s: %w", tagName, err)
	}
	return &r, nil
}

// SaveRelease writes the full row, inserting or updating by primary key.
func (s *Session) SaveRelease(ctx context.Context, r *ReleaseRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO releases (tag_name, name, description, created_at, released_at,
			upcoming_release, author_id, commit_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tag_name) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			created_at = excluded.created_at,
			released_at = excluded.released_at,
			upcoming_release = excluded.upcoming_release,
			author_id = excluded.author_id,
			commit_id = excluded.commit_id`,
		r.TagName, r.Name, r.Description, r.CreatedAt, r.ReleasedAt,
		r.UpcomingRelease, r.AuthorID, r.CommitID)
	if err != nil {
		return fmt.Errorf("saving release %s: %w", r.TagName, err)
	}
	return nil
}

// GetTag returns the tag row by name, or nil.
func (s *Session) GetTag(ctx context.Context, name string) (*TagRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT name, message, target, protected, commit_id, release_tag
		FROM tags WHERE name = ?`, name)
	var t TagRow
	err := row.Scan(&t.Name, &t.Message, &t.Target, &t.Protected, &t.CommitID, &t.ReleaseTag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up tag %s: %w", name, err)
	}
	return &t, nil
}

// SaveTag writes the full row, inserting or updating by primary key.
func (s *Session) SaveTag(ctx context.Context, t *TagRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO tags (name, message, target, protected, commit_id, release_tag)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			message = excluded.message,
			target = excluded.target,
			protected = excluded.protected,
			commit_id = excluded.commit_id,
			release_tag = excluded.release_tag`,
		t.Name, t.Message, t.Target, t.Protected, t.CommitID, t.ReleaseTag)
	if err != nil {
		return fmt.Errorf("saving tag %s: %w", t.Name, err)
	}
	return nil
}
