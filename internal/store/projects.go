package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetProject returns the project row by id, or nil if none exists.
func (s *Session) GetProject(ctx context.Context, id int64) (*ProjectRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, name, path, path_with_namespace, description, default_branch,
		       visibility, web_url, ssh_url_to_repo, http_url_to_repo,
		       created_at, last_activity_at, forks_count, star_count, archived,
		       namespace_id, owner_id
		FROM projects WHERE id = ?`, id)
	var p ProjectRow
	err := row.Scan(&p.ID, &p.Name, &p.Path, &p.PathWithNamespace, &p.Description,
		&p.DefaultBranch, &p.Visibility, &p.WebURL, &p.SSHURLToRepo, &p.HTTPURLToRepo,
		&p.CreatedAt, &p.LastActivityAt, &p.ForksCount, &p.StarCount, &p.Archived,
		&p.NamespaceID, &p.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up project %d: %w", id, err)
	}
	return &p, nil
}

// SaveProject writes the full row, inserting or updating by primary key.
func (s *Session) SaveProject(ctx context.Context, p *ProjectRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO projects (id, name, path, path_with_namespace, description,
			default_branch, visibility, web_url, ssh_url_to_repo, http_url_to_repo,
			created_at, last_activity_at, forks_count, star_count, archived,
			namespace_id, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			path_with_namespace = excluded.path_with_namespace,
			description = excluded.description,
			default_branch = excluded.default_branch,
			visibility = excluded.visibility,
			web_url = excluded.web_url,
			ssh_url_to_repo = excluded.ssh_url_to_repo,
			http_url_to_repo = excluded.http_url_to_repo,
			created_at = excluded.created_at,
			last_activity_at = excluded.last_activity_at,
			forks_count = excluded.forks_count,
			star_count = excluded.star_count,
			archived = excluded.archived,
			namespace_id = excluded.namespace_id,
			owner_id = excluded.owner_id`,
		p.ID, p.Name, p.Path, p.PathWithNamespace, p.Description, p.DefaultBranch,
		p.Visibility, p.WebURL, p.SSHURLToRepo, p.HTTPURLToRepo, p.CreatedAt,
		p.LastActivityAt, p.ForksCount, p.StarCount, p.Archived, p.NamespaceID, p.OwnerID)
	if err != nil {
		return fmt.Errorf("saving project %d: %w", p.ID, err)
	}
	return nil
}

// SaveProjectTag eagerly writes one project tag row. Tags are written
// row-by-row before the collection is assembled.
func (s *Session) SaveProjectTag(ctx context.Context, projectID int64, position int, name string) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO project_tags (project_id, position, name)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id, position) DO UPDATE SET name = excluded.name`,
		projectID, position, name)
	if err != nil {
		return fmt.Errorf("saving project %d tag %q: %w", projectID, name, err)
	}
	return nil
}

// TrimProjectTags drops tag rows at or beyond n, so a shrunk incoming
// collection leaves no stale tail.
func (s *Session) TrimProjectTags(ctx context.Context, projectID int64, n int) error {
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM project_tags WHERE project_id = ? AND position >= ?`, projectID, n)
	if err != nil {
		return fmt.Errorf("trimming project %d tags: %w", projectID, err)
	}
	return nil
}

// ProjectTags returns the project's tag names in position order.
func (s *Session) ProjectTags(ctx context.Context, projectID int64) ([]string, error) {
	rows, err := s.tx.QueryContext(ctx,
		`SELECT name FROM project_tags WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project %d tags: %w", projectID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning project tag: %w", err)
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

// GetLabel returns the label row by id, or nil if none exists.
func (s *Session) GetLabel(ctx context.Context, id int64) (*LabelRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, project_id, name, color, text_color, description, priority, is_project_label
		FROM labels WHERE id = ?`, id)
	var l LabelRow
	err := row.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Color, &l.TextColor,
		&l.Description, &l.Priority, &l.IsProjectLabel)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up label %d: %w", id, err)
	}
	return &l, nil
}

// SaveLabel writes the full row, inserting or updating by primary key.
func (s *Session) SaveLabel(ctx context.Context, l *LabelRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO labels (id, project_id, name, color, text_color, description,
			priority, is_project_label)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			name = excluded.name,
			color = excluded.color,
			text_color = excluded.text_color,
			description = excluded.description,
			priority = excluded.priority,
			is_project_label = excluded.is_project_label`,
		l.ID, l.ProjectID, l.Name, l.Color, l.TextColor, l.Description,
		l.Priority, l.IsProjectLabel)
	if err != nil {
		return fmt.Errorf("saving label %d: %w", l.ID, err)
	}
	return nil
}

// GetDeployToken returns the deploy token row by id, or nil if none exists.
func (s *Session) GetDeployToken(ctx context.Context, id int64) (*DeployTokenRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, name, username, expires_at, revoked, expired, scopes
		FROM deploy_tokens WHERE id = ?`, id)
	var d DeployTokenRow
	err := row.Scan(&d.ID, &d.Name, &d.Username, &d.ExpiresAt, &d.Revoked, &d.Expired, &d.Scopes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up deploy token %d: %w", id, err)
	}
	return &d, nil
}

// SaveDeployToken writes the full row, inserting or updating by primary key.
func (s *Session) SaveDeployToken(ctx context.Context, d *DeployTokenRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO deploy_tokens (id, name, username, expires_at, revoked, expired, scopes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			username = excluded.username,
			expires_at = excluded.expires_at,
			revoked = excluded.revoked,
			expired = excluded.expired,
			scopes = excluded.scopes`,
		d.ID, d.Name, d.Username, d.ExpiresAt, d.Revoked, d.Expired, d.Scopes)
	if err != nil {
		return fmt.Errorf("saving deploy token %d: %w", d.ID, err)
	}
	return nil
}
