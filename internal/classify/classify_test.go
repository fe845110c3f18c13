package classify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glmirror/internal/record"
)

func TestClassifyUserVsMember(t *testing.T) {
	// Without access_level the payload is a plain user.
	rec, err := Bytes([]byte(`{"id": 1, "username": "dev", "name": "Dev"}`))
	require.NoError(t, err)
	require.Equal(t, "User", rec.BaseType())

	// access_level promotes it to a member.
	rec, err = Bytes([]byte(`{"id": 1, "username": "dev", "access_level": 30}`))
	require.NoError(t, err)
	require.Equal(t, "Member", rec.BaseType())
}

func TestClassifyMergeRequestBeforeCommit(t *testing.T) {
	// An MR payload carries id+iid+branches; it must not fall through to a
	// later, looser rule.
	rec, err := Bytes([]byte(`{
		"id": 5, "iid": 2,
		"source_branch": "feat", "target_branch": "main",
		"sha": "abc", "title": "x"
	}`))
	require.NoError(t, err)
	require.Equal(t, "MergeRequest", rec.BaseType())
}

func TestClassifyCommitNotPipeline(t *testing.T) {
	rec, err := Bytes([]byte(`{
		"id": "abc123", "message": "fix", "parent_ids": [],
		"status": "success"
	}`))
	require.NoError(t, err)
	require.Equal(t, "Commit", rec.BaseType())
}

func TestClassifySignatureFirst(t *testing.T) {
	rec, err := Bytes([]byte(`{
		"signature_type": "PGP", "verification_status": "verified",
		"gpg_key_id": 1
	}`))
	require.NoError(t, err)
	require.Equal(t, "CommitSignature", rec.BaseType())
}

func TestClassifyIsTotal(t *testing.T) {
	for _, src := range []string{`42`, `"text"`, `true`, `null`} {
		rec, err := Bytes([]byte(src))
		require.NoError(t, err, src)
		require.Equal(t, "Unknown", rec.BaseType(), src)
	}
}

func TestClassifyUnmatchedObject(t *testing.T) {
	rec, err := Bytes([]byte(`{"frobnicate": 1, "blorp": "x"}`))
	require.NoError(t, err)
	u, ok := rec.(*record.Unknown)
	require.True(t, ok)
	require.True(t, u.Unrecognized())
}

func TestClassifyEmptyArray(t *testing.T) {
	rec, err := Bytes([]byte(`[]`))
	require.NoError(t, err)
	require.Equal(t, record.EmptyList, rec.BaseType())

	// All-scalar arrays have no element shape either.
	rec, err = Bytes([]byte(`[1, 2, null]`))
	require.NoError(t, err)
	require.Equal(t, record.EmptyList, rec.BaseType())
}

func TestClassifyListTakesFirstElementShape(t *testing.T) {
	rec, err := Bytes([]byte(`[
		{"id": 1, "username": "a"},
		{"id": 2, "username": "b"},
		"stray"
	]`))
	require.NoError(t, err)
	l, ok := rec.(*record.List)
	require.True(t, ok)
	require.Equal(t, "User", l.Base)
	require.Equal(t, "Users", l.Plural)
	require.Len(t, l.Items, 3)
	require.Equal(t, "User", l.Items[0].BaseType())
	// Non-object elements survive as Unknown without aborting the list.
	require.Equal(t, "Unknown", l.Items[2].BaseType())
}

func TestClassifyListSkipsLeadingNulls(t *testing.T) {
	rec, err := Bytes([]byte(`[null, {"id": 1, "username": "a"}]`))
	require.NoError(t, err)
	l := rec.(*record.List)
	require.Equal(t, "User", l.Base)
}

func TestClassifyDeterministic(t *testing.T) {
	src := []byte(`{"id": 7, "iid": 1, "title": "m", "due_date": "2026-09-30"}`)
	first, err := Bytes(src)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		rec, err := Bytes(src)
		require.NoError(t, err)
		require.Equal(t, first.BaseType(), rec.BaseType())
	}
	require.Equal(t, "Milestone", first.BaseType())
}

func TestClassifySurfacesDecoderError(t *testing.T) {
	// Declared nested field with the wrong kind is the one hard error.
	_, err := Bytes([]byte(`{"name": "main", "commit": "not-an-object"}`))
	var fe *record.FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "Branch", fe.Base)
}

func TestRuleTableMatchesEveryBaseOnce(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules {
		require.False(t, seen[r.Base], "duplicate rule for %s", r.Base)
		seen[r.Base] = true
		require.NotEmpty(t, r.Required, "%s has no required keys", r.Base)
		require.NotNil(t, r.Decode, "%s has no decoder", r.Base)
	}
}
