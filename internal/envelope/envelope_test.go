package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glmirror/internal/record"
)

func TestWrapNeverFails(t *testing.T) {
	env := Wrap(200, nil, []byte(`{"id": 1, "username": "dev"`)) // truncated
	require.True(t, env.OK())
	require.Nil(t, env.JSON)
	require.NotEmpty(t, env.Diags)
	require.Equal(t, []byte(`{"id": 1, "username": "dev"`), env.RawBody)
}

func TestWrapErrorStatusKeepsBody(t *testing.T) {
	env := Wrap(404, map[string]string{"X-Request-Id": "r1"},
		[]byte(`{"message": "404 Project Not Found"}`))
	require.False(t, env.OK())
	require.NotNil(t, env.JSON, "error bodies still parse")
	require.Contains(t, env.Diags[0], "404")
	require.Equal(t, "r1", env.Headers["X-Request-Id"])
}

func TestOKBoundaries(t *testing.T) {
	require.True(t, (&Envelope{StatusCode: 200}).OK())
	require.True(t, (&Envelope{StatusCode: 302}).OK())
	require.False(t, (&Envelope{StatusCode: 400}).OK())
	require.False(t, (&Envelope{StatusCode: 500}).OK())
}

func TestWrapAndClassify(t *testing.T) {
	env := New(nil).WrapAndClassify(200, nil,
		[]byte(`{"id": "abc", "message": "m", "parent_ids": []}`))
	require.NotNil(t, env.Classified)
	require.Equal(t, "Commit", env.Classified.BaseType())
	require.Empty(t, env.Diags)
}

func TestWrapAndClassifyUnmatched(t *testing.T) {
	env := New(nil).WrapAndClassify(200, nil, []byte(`{"zork": true}`))
	require.NotNil(t, env.Classified)
	u, ok := env.Classified.(*record.Unknown)
	require.True(t, ok)
	require.NotNil(t, u.Raw)
}

func TestWrapAndClassifySchemaMismatch(t *testing.T) {
	env := New(nil).WrapAndClassify(200, nil,
		[]byte(`{"name": "main", "commit": 17}`))
	require.Nil(t, env.Classified)
	require.NotEmpty(t, env.Diags)
	require.Contains(t, env.Diags[0], "classify")
}
