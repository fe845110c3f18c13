package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetUser returns the user row by id, or nil if none exists.
func (s *Session) GetUser(ctx context.Context, id int64) (*UserRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, username, name, state, avatar_url, web_url, email, created_at
		FROM users WHERE id = ?`, id)
	var u UserRow
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.State, &u.AvatarURL, &u.WebURL, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user %d: %w", id, err)
	}
	return &u, nil
}

// SaveUser writes the full row, inserting or updating by primary key.
func (s *Session) SaveUser(ctx context.Context, u *UserRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO users (id, username, name, state, avatar_url, web_url, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			name = excluded.name,
			state = excluded.state,
			avatar_url = excluded.avatar_url,
			web_url = excluded.web_url,
			email = excluded.email,
			created_at = excluded.created_at`,
		u.ID, u.Username, u.Name, u.State, u.AvatarURL, u.WebURL, u.Email, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving user %d: %w", u.ID, err)
	}
	return nil
}

// GetNamespace returns the namespace row by id, or nil if none exists.
func (s *Session) GetNamespace(ctx context.Context, id int64) (*NamespaceRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, name, path, kind, full_path, parent_id, web_url
		FROM namespaces WHERE id = ?`, id)
	var n NamespaceRow
	err := row.Scan(&n.ID, &n.Name, &n.Path, &n.Kind, &n.FullPath, &n.ParentID, &n.WebURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up namespace %d: %w", id, err)
	}
	return &n, nil
}

// SaveNamespace writes the full row, inserting or updating by primary key.
func (s *Session) SaveNamespace(ctx context.Context, n *NamespaceRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO namespaces (id, name, path, kind, full_path, parent_id, web_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			kind = excluded.kind,
			full_path = excluded.full_path,
			parent_id = excluded.parent_id,
			web_url = excluded.web_url`,
		n.ID, n.Name, n.Path, n.Kind, n.FullPath, n.ParentID, n.WebURL)
	if err != nil {
		return fmt.Errorf("saving namespace %d: %w", n.ID, err)
	}
	return nil
}
