// Package materialize turns classified records into relational rows. It
// walks each record depth first so referenced children are durable before
// the rows that point at them, merges field-by-field onto whatever the
// store already holds, and wraps every top-level record or collection in
// one transaction.
package materialize

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"glmirror/internal/record"
	"glmirror/internal/store"
)

// ErrMissingKey marks a record whose primary key field was absent or null.
var ErrMissingKey = errors.New("missing primary key")

// ErrNotDurable marks a record variant that has no table, such as a diff
// or a wiki page.
var ErrNotDurable = errors.New("record has no durable form")

// RowError locates a persistence failure on one row.
type RowError struct {
	Table string
	Key   string
	Err   error
}

func (e *RowError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Table, e.Err)
	}
	return fmt.Sprintf("%s/%s: %v", e.Table, e.Key, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Result summarizes one materialization transaction.
type Result struct {
	// Handles locate the top-level rows, in input order.
	Handles []store.Handle
	// Rows counts every row written, children and collections included.
	Rows int
	// Skipped counts list elements that had no durable form.
	Skipped int
}

// Materializer writes records into a store.
type Materializer struct {
	store *store.Store
	log   *zap.Logger
}

// New returns a Materializer. A nil logger disables logging.
func New(s *store.Store, log *zap.Logger) *Materializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{store: s, log: log}
}

// txn carries one transaction's session and counters.
type txn struct {
	sess *store.Session
	rows int
}

func (t *txn) rowErr(table, key string, err error) error {
	var re *RowError
	if errors.As(err, &re) {
		return err
	}
	return &RowError{Table: table, Key: key, Err: err}
}

// Materialize persists one record or record collection atomically. On any
// row failure the whole transaction rolls back and nothing is durable.
func (m *Materializer) Materialize(ctx context.Context, rec record.Record) (*Result, error) {
	t := &txn{}
	sess, err := m.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()
	t.sess = sess

	res := &Result{}
	switch r := rec.(type) {
	case *record.List:
		for _, item := range r.Items {
			h, err := t.upsert(ctx, item)
			if errors.Is(err, ErrNotDurable) {
				res.Skipped++
				m.log.Debug("skipping non-durable list element",
					zap.String("base", item.BaseType()))
				continue
			}
			if err != nil {
				return nil, err
			}
			res.Handles = append(res.Handles, h)
		}
	default:
		h, err := t.upsert(ctx, rec)
		if err != nil {
			return nil, err
		}
		res.Handles = append(res.Handles, h)
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}
	res.Rows = t.rows
	m.log.Debug("materialized",
		zap.String("base", rec.BaseType()),
		zap.Int("rows", res.Rows),
		zap.Int("top_level", len(res.Handles)))
	return res, nil
}

// upsert dispatches one record to its entity writer. Variants without a
// table report ErrNotDurable.
func (t *txn) upsert(ctx context.Context, rec record.Record) (store.Handle, error) {
	switch r := rec.(type) {
	case *record.User:
		return t.upsertUser(ctx, r)
	case *record.Member:
		return t.upsertMember(ctx, r)
	case *record.Namespace:
		return t.upsertNamespace(ctx, r)
	case *record.Group:
		return t.upsertGroup(ctx, r)
	case *record.Project:
		return t.upsertProject(ctx, r)
	case *record.Label:
		return t.upsertLabel(ctx, r)
	case *record.Pipeline:
		return t.upsertPipeline(ctx, r)
	case *record.Commit:
		return t.upsertCommit(ctx, r)
	case *record.Branch:
		return t.upsertBranch(ctx, r)
	case *record.Release:
		return t.upsertRelease(ctx, r)
	case *record.Tag:
		return t.upsertTag(ctx, r)
	case *record.Job:
		return t.upsertJob(ctx, r)
	case *record.MergeRequest:
		return t.upsertMergeRequest(ctx, r)
	case *record.DeployToken:
		return t.upsertDeployToken(ctx, r)
	default:
		return store.Handle{}, fmt.Errorf("%s: %w", rec.BaseType(), ErrNotDurable)
	}
}
