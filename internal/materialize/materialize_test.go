package materialize

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"glmirror/internal/classify"
	"glmirror/internal/record"
	"glmirror/internal/store"
)

func newTestMaterializer(t *testing.T) (*Materializer, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return New(s, nil), s
}

func getUser(t *testing.T, s *store.Store, id int64) *store.UserRow {
	t.Helper()
	ctx := context.Background()
	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()
	row, err := sess.GetUser(ctx, id)
	require.NoError(t, err)
	return row
}

func TestMaterializeUser(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	res, err := m.Materialize(ctx, &record.User{
		ID:       record.Present(int64(42)),
		Username: record.Present("gwen"),
		Name:     record.Present("Gwen S"),
	})
	require.NoError(t, err)
	require.Equal(t, []store.Handle{{Table: "users", Key: "42"}}, res.Handles)
	require.Equal(t, 1, res.Rows)

	row := getUser(t, s, 42)
	require.NotNil(t, row)
	require.Equal(t, "gwen", *row.Username)
}

func TestMergeAbsentKeepsNullClears(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	_, err := m.Materialize(ctx, &record.User{
		ID:       record.Present(int64(1)),
		Username: record.Present("ida"),
		Name:     record.Present("Ida L"),
		Email:    record.Present("ida@example.com"),
	})
	require.NoError(t, err)

	// Second payload omits Name and nulls Email.
	_, err = m.Materialize(ctx, &record.User{
		ID:       record.Present(int64(1)),
		Username: record.Present("ida"),
		State:    record.Present("active"),
		Email:    record.NullField[string](),
	})
	require.NoError(t, err)

	row := getUser(t, s, 1)
	require.Equal(t, "Ida L", *row.Name, "absent field must keep stored value")
	require.Nil(t, row.Email, "null field must clear stored value")
	require.Equal(t, "active", *row.State)
}

func TestProjectWritesReferencesFirst(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	res, err := m.Materialize(ctx, &record.Project{
		ID:   record.Present(int64(10)),
		Name: record.Present("glmirror"),
		Namespace: &record.Namespace{
			ID:   record.Present(int64(3)),
			Path: record.Present("tools"),
		},
		Owner: &record.User{
			ID:       record.Present(int64(9)),
			Username: record.Present("ops"),
		},
		Topics: record.Present([]string{"go", "mirror"}),
	})
	require.NoError(t, err)
	require.Equal(t, []store.Handle{{Table: "projects", Key: "10"}}, res.Handles)

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	p, err := sess.GetProject(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), *p.NamespaceID)
	require.Equal(t, int64(9), *p.OwnerID)

	ns, err := sess.GetNamespace(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, ns)

	tags, err := sess.ProjectTags(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "mirror"}, tags)
}

func TestCommitParentsShrinkAndAbsent(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	commit := func(parents record.Field[[]string]) *record.Commit {
		return &record.Commit{
			ID:        record.Present("abc"),
			Title:     record.Present("merge branch"),
			ParentIDs: parents,
		}
	}

	_, err := m.Materialize(ctx, commit(record.Present([]string{"p0", "p1"})))
	require.NoError(t, err)

	listParents := func() []string {
		sess, err := s.Begin(ctx)
		require.NoError(t, err)
		defer sess.Rollback()
		parents, err := sess.CommitParents(ctx, "abc")
		require.NoError(t, err)
		return parents
	}
	require.Equal(t, []string{"p0", "p1"}, listParents())

	// Shrunk incoming list trims the stale tail.
	_, err = m.Materialize(ctx, commit(record.Present([]string{"p0"})))
	require.NoError(t, err)
	require.Equal(t, []string{"p0"}, listParents())

	// Absent leaves stored parents alone.
	_, err = m.Materialize(ctx, commit(record.Field[[]string]{}))
	require.NoError(t, err)
	require.Equal(t, []string{"p0"}, listParents())
}

func TestListRollsBackAsOneTransaction(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	_, err := m.Materialize(ctx, &record.List{
		Base: "User", Plural: "Users",
		Items: []record.Record{
			&record.User{ID: record.Present(int64(1)), Username: record.Present("ok")},
			&record.User{Username: record.Present("no-id")},
		},
	})
	require.Error(t, err)
	var re *RowError
	require.ErrorAs(t, err, &re)
	require.Equal(t, "users", re.Table)
	require.ErrorIs(t, err, ErrMissingKey)

	require.Nil(t, getUser(t, s, 1), "failed list must leave nothing durable")
}

func TestNonDurableVariants(t *testing.T) {
	m, _ := newTestMaterializer(t)
	ctx := context.Background()

	_, err := m.Materialize(ctx, &record.Diff{NewPath: record.Present("main.go")})
	require.ErrorIs(t, err, ErrNotDurable)

	// Inside a list the element is skipped, not fatal.
	res, err := m.Materialize(ctx, &record.List{
		Base: "Diff", Plural: "Diffs",
		Items: []record.Record{
			&record.Diff{NewPath: record.Present("main.go")},
		},
	})
	require.NoError(t, err)
	require.Empty(t, res.Handles)
	require.Equal(t, 1, res.Skipped)
}

func TestMaterializeClassifiedMergeRequest(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	rec, err := classify.Bytes([]byte(`{
		"id": 88, "iid": 4,
		"source_branch": "fix/panic", "target_branch": "main",
		"title": "Fix panic on empty config",
		"labels": ["bug", "backend"],
		"author": {"id": 7, "username": "renn"}
	}`))
	require.NoError(t, err)
	require.Equal(t, "MergeRequest", rec.BaseType())

	res, err := m.Materialize(ctx, rec)
	require.NoError(t, err)
	require.Equal(t, []store.Handle{{Table: "merge_requests", Key: "88"}}, res.Handles)

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	mr, err := sess.GetMergeRequest(ctx, 88)
	require.NoError(t, err)
	require.Equal(t, int64(7), *mr.AuthorID)

	labels, err := sess.MRLabels(ctx, 88)
	require.NoError(t, err)
	require.Equal(t, []string{"bug", "backend"}, labels)
}

func TestIdempotentUpsert(t *testing.T) {
	m, s := newTestMaterializer(t)
	ctx := context.Background()

	branch := &record.Branch{
		Name:    record.Present("main"),
		Default: record.Present(true),
		Commit: &record.Commit{
			ID:    record.Present("fff000"),
			Title: record.Present("init"),
		},
	}
	res1, err := m.Materialize(ctx, branch)
	require.NoError(t, err)
	res2, err := m.Materialize(ctx, branch)
	require.NoError(t, err)
	require.Equal(t, res1.Rows, res2.Rows)

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()
	b, err := sess.GetBranch(ctx, "main")
	require.NoError(t, err)
	require.Equal(t, "fff000", *b.CommitID)
}
