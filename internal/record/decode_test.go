package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustObject(t *testing.T, src string) Object {
	t.Helper()
	v, err := FromJSON([]byte(src))
	require.NoError(t, err)
	o, ok := v.(Object)
	require.True(t, ok)
	return o
}

func TestDecodeCommitNested(t *testing.T) {
	o := mustObject(t, `{
		"id": "abc123",
		"short_id": "abc",
		"message": "fix pagination",
		"parent_ids": ["def456"],
		"trailers": {"Reviewed-by": "x"},
		"stats": {"additions": 3, "deletions": 1, "total": 4},
		"last_pipeline": {"id": 99, "status": "success"}
	}`)

	rec, err := DecodeCommit(o)
	require.NoError(t, err)
	c := rec.(*Commit)

	id, _ := c.ID.Get()
	require.Equal(t, "abc123", id)
	parents, _ := c.ParentIDs.Get()
	require.Equal(t, []string{"def456"}, parents)

	require.NotNil(t, c.Stats)
	adds, _ := c.Stats.Additions.Get()
	require.Equal(t, int64(3), adds)

	require.NotNil(t, c.LastPipeline)
	pid, _ := c.LastPipeline.ID.Get()
	require.Equal(t, int64(99), pid)
}

func TestDecodeCommitNestedMismatch(t *testing.T) {
	o := mustObject(t, `{"id": "abc", "message": "x", "stats": "oops"}`)
	_, err := DecodeCommit(o)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "Commit", fe.Base)
	require.Equal(t, "stats", fe.Field)
}

func TestDecodeProjectEmbeds(t *testing.T) {
	o := mustObject(t, `{
		"id": 10,
		"path_with_namespace": "tools/glmirror",
		"namespace": {"id": 3, "path": "tools", "kind": "group"},
		"owner": {"id": 9, "username": "ops"},
		"topics": ["go"]
	}`)

	rec, err := DecodeProject(o)
	require.NoError(t, err)
	p := rec.(*Project)
	require.NotNil(t, p.Namespace)
	require.NotNil(t, p.Owner)
	topics, _ := p.Topics.Get()
	require.Equal(t, []string{"go"}, topics)
	require.True(t, p.Description.IsAbsent())
}

func TestDecodeProtectedBranchAccessLevels(t *testing.T) {
	o := mustObject(t, `{
		"id": 1,
		"name": "main",
		"push_access_levels": [{"access_level": 40, "access_level_description": "Maintainers"}],
		"merge_access_levels": [{"access_level": 30, "access_level_description": "Developers"}]
	}`)

	rec, err := DecodeProtectedBranch(o)
	require.NoError(t, err)
	pb := rec.(*ProtectedBranch)
	require.Len(t, pb.PushAccessLevels, 1)
	lvl, _ := pb.PushAccessLevels[0].AccessLevel.Get()
	require.Equal(t, int64(40), lvl)
	require.Len(t, pb.MergeAccessLevels, 1)
}

func TestDecodeJobArtifacts(t *testing.T) {
	o := mustObject(t, `{
		"id": 5,
		"name": "build",
		"stage": "test",
		"artifacts": [
			{"filename": "junit.xml", "file_type": "junit", "size": 1024}
		],
		"user": {"id": 2, "username": "ci"}
	}`)

	rec, err := DecodeJob(o)
	require.NoError(t, err)
	j := rec.(*Job)
	require.Len(t, j.Artifacts, 1)
	name, _ := j.Artifacts[0].Filename.Get()
	require.Equal(t, "junit.xml", name)
	require.NotNil(t, j.User)
}

func TestDecodeCommitSignatureX509Chain(t *testing.T) {
	o := mustObject(t, `{
		"signature_type": "X509",
		"verification_status": "verified",
		"x509_certificate": {
			"id": 1,
			"subject": "CN=dev",
			"x509_issuer": {"id": 2, "subject": "CN=ca"}
		}
	}`)

	rec, err := DecodeCommitSignature(o)
	require.NoError(t, err)
	sig := rec.(*CommitSignature)
	require.NotNil(t, sig.X509Certificate)
	require.NotNil(t, sig.X509Certificate.X509Issuer)
	subj, _ := sig.X509Certificate.X509Issuer.Subject.Get()
	require.Equal(t, "CN=ca", subj)
}
