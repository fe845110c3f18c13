package mirror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"glmirror/internal/store"
)

type fakeFetcher struct {
	pages map[string][]*Page
	fail  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string, page, perPage int) (*Page, error) {
	f.calls = append(f.calls, fmt.Sprintf("%s page=%d", path, page))
	if err, ok := f.fail[path]; ok {
		return nil, err
	}
	ps, ok := f.pages[path]
	if !ok {
		return &Page{Status: http.StatusNotFound, Headers: map[string]string{},
			Body: []byte(`{"message":"404 Not Found"}`)}, nil
	}
	idx := 0
	if page > 0 {
		idx = page - 1
	}
	if idx >= len(ps) {
		return nil, fmt.Errorf("fetch past last page %s page=%d", path, page)
	}
	return ps[idx], nil
}

func jsonPage(body string, next int) *Page {
	h := map[string]string{}
	if next > 0 {
		h["X-Next-Page"] = fmt.Sprintf("%d", next)
	}
	return &Page{Status: http.StatusOK, Headers: h, Body: []byte(body)}
}

func newTestEngine(t *testing.T, cfg Config, f Fetcher) (*Engine, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return NewEngine(cfg, f, s, nil), s
}

func baseConfig(endpoints ...string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://gitlab.example.com"
	cfg.ProjectID = 1
	cfg.Endpoints = endpoints
	cfg.Retry = RetryConfig{Attempts: 1, Backoff: time.Millisecond}
	return cfg
}

func TestEngineRunCompleted(t *testing.T) {
	f := &fakeFetcher{pages: map[string][]*Page{
		"projects/1": {jsonPage(`{"id": 1, "path_with_namespace": "tools/glmirror", "name": "glmirror"}`, 0)},
		"projects/1/repository/commits?with_stats=true": {
			jsonPage(`[
				{"id": "aaa", "message": "one", "parent_ids": []},
				{"id": "bbb", "message": "two", "parent_ids": ["aaa"]}
			]`, 2),
			jsonPage(`[{"id": "ccc", "message": "three", "parent_ids": ["bbb"]}]`, 0),
		},
	}}
	e, s := newTestEngine(t, baseConfig("project", "commits"), f)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, report.Status)
	require.Len(t, report.Endpoints, 2)
	require.Equal(t, 2, report.Endpoints[1].Pages)
	require.Greater(t, report.Rows, 0)

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)
	byTable := map[string]int64{}
	for _, c := range counts {
		byTable[c.Table] = c.Count
	}
	require.Equal(t, int64(3), byTable["commits"])
	require.Equal(t, int64(1), byTable["projects"])

	runs, err := s.RecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, report.RunID, runs[0].ID)
	require.Equal(t, string(StatusCompleted), runs[0].Status)
}

func TestEnginePartialOnEndpointFailure(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string][]*Page{
			"projects/1": {jsonPage(`{"id": 1, "path_with_namespace": "tools/glmirror"}`, 0)},
		},
		fail: map[string]error{
			"projects/1/labels": errors.New("connection refused"),
		},
	}
	e, _ := newTestEngine(t, baseConfig("project", "labels"), f)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusPartial, report.Status)
	require.Empty(t, report.Endpoints[0].Err)
	require.Contains(t, report.Endpoints[1].Err, "connection refused")
}

func TestEngineFailedOnErrorStatus(t *testing.T) {
	f := &fakeFetcher{pages: map[string][]*Page{}}
	e, s := newTestEngine(t, baseConfig("project"), f)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusFailed, report.Status)
	require.Contains(t, report.Endpoints[0].Err, "status 404")

	runs, err := s.RecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].Error)
}

func TestEngineRetriesTransientFetch(t *testing.T) {
	attempts := 0
	f := &retryingFetcher{
		after: 2,
		calls: &attempts,
		page:  jsonPage(`{"id": 1, "path_with_namespace": "tools/glmirror"}`, 0),
	}
	cfg := baseConfig("project")
	cfg.Retry = RetryConfig{Attempts: 3, Backoff: time.Millisecond}
	e, _ := newTestEngine(t, cfg, f)

	report, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, report.Status)
	require.Equal(t, 3, attempts)
}

type retryingFetcher struct {
	after int
	calls *int
	page  *Page
}

func (f *retryingFetcher) Fetch(ctx context.Context, path string, page, perPage int) (*Page, error) {
	*f.calls++
	if *f.calls <= f.after {
		return nil, fmt.Errorf("flaky: %w", ErrTransient)
	}
	return f.page, nil
}
