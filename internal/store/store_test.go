package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func str(v string) *string { return &v }

func TestSaveUserUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	u := &UserRow{ID: 7, Username: str("marge"), Name: str("Marge B")}
	require.NoError(t, sess.SaveUser(ctx, u))

	// Second save with changed and cleared columns replaces the row.
	u2 := &UserRow{ID: 7, Username: str("marge"), State: str("active")}
	require.NoError(t, sess.SaveUser(ctx, u2))

	got, err := sess.GetUser(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "marge", *got.Username)
	require.Equal(t, "active", *got.State)
	require.Nil(t, got.Name)
	require.NoError(t, sess.Commit())
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	got, err := sess.GetUser(ctx, 404)
	require.NoError(t, err)
	require.Nil(t, got)

	c, err := sess.GetCommit(ctx, "deadbeef")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestProjectTagsTrim(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	require.NoError(t, sess.SaveProject(ctx, &ProjectRow{ID: 1, Name: str("spore")}))

	for i, tag := range []string{"go", "cli", "sqlite"} {
		require.NoError(t, sess.SaveProjectTag(ctx, 1, i, tag))
	}
	tags, err := sess.ProjectTags(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "cli", "sqlite"}, tags)

	// Shrinking collection drops the stale tail.
	require.NoError(t, sess.SaveProjectTag(ctx, 1, 0, "go"))
	require.NoError(t, sess.TrimProjectTags(ctx, 1, 1))
	tags, err = sess.ProjectTags(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"go"}, tags)
}

func TestCommitParentsOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	require.NoError(t, sess.SaveCommit(ctx, &CommitRow{ID: "abc123", Title: str("merge")}))
	require.NoError(t, sess.SaveCommitParent(ctx, "abc123", 0, "p0"))
	require.NoError(t, sess.SaveCommitParent(ctx, "abc123", 1, "p1"))

	parents, err := sess.CommitParents(ctx, "abc123")
	require.NoError(t, err)
	require.Equal(t, []string{"p0", "p1"}, parents)
}

func TestTransactionRollbackDiscardsWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.SaveUser(ctx, &UserRow{ID: 1, Username: str("ghost")}))
	require.NoError(t, sess.Rollback())

	sess2, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess2.Rollback()
	got, err := sess2.GetUser(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	defer sess.Rollback()

	// Branch pointing at a commit that was never written.
	err = sess.SaveBranch(ctx, &BranchRow{Name: "main", CommitID: str("missing")})
	require.Error(t, err)
}

func TestRecordAndListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordRun(ctx, &RunRow{
		ID: "run-1", StartedAt: "2026-08-30T10:00:00Z", Status: "completed",
		Endpoints: 3, RowsWritten: 42,
	}))
	require.NoError(t, s.RecordRun(ctx, &RunRow{
		ID: "run-2", StartedAt: "2026-08-31T10:00:00Z", Status: "failed",
		Endpoints: 1, Error: str("boom"),
	}))

	runs, err := s.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "run-2", runs[0].ID)
	require.Equal(t, "boom", *runs[0].Error)
}

func TestCountsCoverAllEntityTables(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.SaveUser(ctx, &UserRow{ID: 1, Username: str("one")}))
	require.NoError(t, sess.Commit())

	counts, err := s.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, len(entityTables), len(counts))
	byTable := map[string]int64{}
	for _, c := range counts {
		byTable[c.Table] = c.Count
	}
	require.Equal(t, int64(1), byTable["users"])
	require.Equal(t, int64(0), byTable["projects"])
}

func TestCheckIntegrity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	report, err := s.CheckIntegrity(ctx)
	require.NoError(t, err)
	require.True(t, report.Healthy())

	// Plant a dangling reference with enforcement off to simulate
	// an out-of-band edit.
	_, err = s.DB().ExecContext(ctx, "PRAGMA foreign_keys=OFF")
	require.NoError(t, err)
	_, err = s.DB().ExecContext(ctx,
		`INSERT INTO branches (name, commit_id) VALUES ('stale', 'gone')`)
	require.NoError(t, err)
	_, err = s.DB().ExecContext(ctx, "PRAGMA foreign_keys=ON")
	require.NoError(t, err)

	report, err = s.CheckIntegrity(ctx)
	require.NoError(t, err)
	require.False(t, report.Healthy())
	require.Len(t, report.DanglingReferences, 1)
	require.Equal(t, "branches", report.DanglingReferences[0].Table)
	require.Equal(t, "commits", report.DanglingReferences[0].Refers)
}
