// Package mirror drives sync runs: it pages GitLab endpoints through a
// Fetcher, wraps each response in an envelope, and hands classified records
// to the materializer. One endpoint failing marks the run partial instead
// of aborting the rest.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"glmirror/internal/envelope"
	"glmirror/internal/materialize"
	"glmirror/internal/store"
)

// Engine runs syncs against one store.
type Engine struct {
	cfg   Config
	fetch Fetcher
	st    *store.Store
	mat   *materialize.Materializer
	wrap  *envelope.Wrapper
	log   *zap.Logger
	now   func() time.Time
}

// NewEngine wires a sync engine. A nil logger disables logging.
func NewEngine(cfg Config, fetch Fetcher, st *store.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:   cfg,
		fetch: fetch,
		st:    st,
		mat:   materialize.New(st, log),
		wrap:  envelope.New(log),
		log:   log,
		now:   time.Now,
	}
}

// Run syncs every configured endpoint and records the run. The returned
// report is non-nil even when the run failed partway.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	endpoints, err := e.cfg.SyncSet()
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: e.now().UTC().Format(time.RFC3339),
	}
	e.log.Info("sync starting",
		zap.String("run_id", report.RunID),
		zap.Int64("project_id", e.cfg.ProjectID),
		zap.Int("endpoints", len(endpoints)))

	var failures int
	for _, ep := range endpoints {
		res := e.syncEndpoint(ctx, ep)
		report.Endpoints = append(report.Endpoints, res)
		report.Rows += res.Rows
		if res.Err != "" {
			failures++
		}
		if ctx.Err() != nil {
			break
		}
	}

	report.FinishedAt = e.now().UTC().Format(time.RFC3339)
	switch {
	case ctx.Err() != nil:
		report.Status = StatusCancelled
	case failures == 0:
		report.Status = StatusCompleted
	case failures == len(endpoints):
		report.Status = StatusFailed
	default:
		report.Status = StatusPartial
	}

	if err := e.recordRun(ctx, report); err != nil {
		e.log.Warn("recording run failed", zap.Error(err))
	}
	e.log.Info("sync finished",
		zap.String("run_id", report.RunID),
		zap.String("status", string(report.Status)),
		zap.Int("rows", report.Rows))
	return report, ctx.Err()
}

func (e *Engine) syncEndpoint(ctx context.Context, ep Endpoint) EndpointResult {
	res := EndpointResult{Endpoint: ep}
	path := ep.Path(e.cfg.ProjectID)

	page := 0
	if ep.Paginated() {
		page = 1
	}
	for {
		var p *Page
		err := withRetry(ctx, e.cfg.Retry, e.log, string(ep), func() error {
			var ferr error
			p, ferr = e.fetch.Fetch(ctx, path, page, e.cfg.PerPage)
			return ferr
		})
		if err != nil {
			res.Err = err.Error()
			return res
		}
		res.Pages++

		env := e.wrap.WrapAndClassify(p.Status, p.Headers, p.Body)
		if !env.OK() {
			res.Err = fmt.Sprintf("status %d: %s", env.StatusCode, firstDiag(env.Diags))
			return res
		}
		if env.Classified == nil {
			res.Err = "response did not classify: " + firstDiag(env.Diags)
			return res
		}

		mres, err := e.mat.Materialize(ctx, env.Classified)
		if errors.Is(err, materialize.ErrNotDurable) {
			e.log.Warn("endpoint returned non-durable shape",
				zap.String("endpoint", string(ep)),
				zap.String("base", env.Classified.BaseType()))
			res.Skipped++
			return res
		}
		if err != nil {
			res.Err = err.Error()
			return res
		}
		res.Rows += mres.Rows
		res.Skipped += mres.Skipped

		next := p.NextPage()
		if !ep.Paginated() || next == 0 || (e.cfg.MaxPages > 0 && res.Pages >= e.cfg.MaxPages) {
			return res
		}
		page = next
	}
}

func (e *Engine) recordRun(ctx context.Context, r *Report) error {
	row := &store.RunRow{
		ID:          r.RunID,
		StartedAt:   r.StartedAt,
		FinishedAt:  &r.FinishedAt,
		Status:      string(r.Status),
		Endpoints:   int64(len(r.Endpoints)),
		RowsWritten: int64(r.Rows),
	}
	if msg := firstError(r.Endpoints); msg != "" {
		row.Error = &msg
	}
	return e.st.RecordRun(ctx, row)
}

func firstDiag(diags []string) string {
	if len(diags) == 0 {
		return "no diagnostics"
	}
	return diags[0]
}

func firstError(results []EndpointResult) string {
	for _, r := range results {
		if r.Err != "" {
			return fmt.Sprintf("%s: %s", r.Endpoint, r.Err)
		}
	}
	return ""
}
