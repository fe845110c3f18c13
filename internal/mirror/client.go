package mirror

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Page is one raw API response.
type Page struct {
	Status  int
	Headers map[string]string
	Body    []byte
}

// NextPage reads GitLab's pagination header; 0 means this was the last page.
func (p *Page) NextPage() int {
	n, err := strconv.Atoi(p.Headers["X-Next-Page"])
	if err != nil {
		return 0
	}
	return n
}

// Fetcher retrieves one page of an API path. The engine depends on this
// interface so tests can feed canned payloads.
type Fetcher interface {
	Fetch(ctx context.Context, path string, page, perPage int) (*Page, error)
}

// Client is the live GitLab API fetcher.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
	log   *zap.Logger
}

// NewClient builds a Client from config. A nil logger disables logging.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base_url: %w", err)
	}
	return &Client{
		base:  base,
		token: cfg.Token,
		http:  &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}, nil
}

// Fetch requests one page. Timeouts, connection errors, 429 and 5xx all
// come back tagged ErrTransient so the caller can retry; 4xx bodies are
// returned as-is for the envelope to record.
func (c *Client) Fetch(ctx context.Context, path string, page, perPage int) (*Page, error) {
	u, err := url.Parse(c.base.String() + "/api/v4/" + path)
	if err != nil {
		return nil, fmt.Errorf("building url for %s: %w", path, err)
	}
	q := u.Query()
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(perPage))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading body: %v: %w", path, err, ErrTransient)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%s: status %d: %w", path, resp.StatusCode, ErrTransient)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	c.log.Debug("fetched page",
		zap.String("path", path),
		zap.Int("page", page),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	return &Page{Status: resp.StatusCode, Headers: headers, Body: body}, nil
}
