// Package store persists mirrored GitLab rows in SQLite. It exposes
// primary-key lookup, full-row upsert, and transactional sessions; merge
// policy lives with the materializer, not here.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database connection.
type Store struct {
	db   *sql.DB
	Path string
}

// Open opens a SQLite database with WAL mode, foreign keys, and a busy
// timeout for concurrent readers.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Single writer connection, so the pragmas below bind to every
	// statement the pool hands out.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	return &Store{db: db, Path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying sql.DB for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates all tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Begin starts a write session. The session exclusively owns its
// transaction until Commit or Rollback.
func (s *Store) Begin(ctx context.Context) (*Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Session{tx: tx}, nil
}

// Session is one transactional unit of work.
type Session struct {
	tx *sql.Tx
}

// Commit commits the unit of work.
func (s *Session) Commit() error {
	if err := s.tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Rollback aborts the unit of work. Safe to call after Commit.
func (s *Session) Rollback() error {
	return s.tx.Rollback()
}

// Handle identifies one persisted row.
type Handle struct {
	Table string
	Key   string
}

func (h Handle) String() string {
	return h.Table + "/" + h.Key
}
