package mirror

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glmirror.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverDefaults(t *testing.T) {
	path := writeConfig(t, `
base_url: https://gitlab.example.com
token: glpat-file
project_id: 278964
per_page: 50
endpoints: [commits, branches]
retry:
  attempts: 5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "https://gitlab.example.com", cfg.BaseURL)
	require.Equal(t, int64(278964), cfg.ProjectID)
	require.Equal(t, 50, cfg.PerPage)
	require.Equal(t, 5, cfg.Retry.Attempts)
	// Unset keys keep their defaults.
	require.Equal(t, 50, cfg.MaxPages)
	require.Equal(t, 30*time.Second, cfg.Timeout)

	set, err := cfg.SyncSet()
	require.NoError(t, err)
	require.Equal(t, []Endpoint{EndpointCommits, EndpointBranches}, set)
}

func TestTokenEnvWinsOverFile(t *testing.T) {
	t.Setenv("GLMIRROR_TOKEN", "glpat-env")
	path := writeConfig(t, `
base_url: https://gitlab.example.com
token: glpat-file
project_id: 1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "glpat-env", cfg.Token)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing base_url", "project_id: 1\n"},
		{"missing project", "base_url: https://x\n"},
		{"per_page too big", "base_url: https://x\nproject_id: 1\nper_page: 500\n"},
		{"unknown endpoint", "base_url: https://x\nproject_id: 1\nendpoints: [wikis]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}
}

func TestSyncSetDefaultsToAll(t *testing.T) {
	cfg := DefaultConfig()
	set, err := cfg.SyncSet()
	require.NoError(t, err)
	require.Equal(t, AllEndpoints, set)
}
