package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetPipeline returns the pipeline row by id, or nil if none exists.
func (s *Session) GetPipeline(ctx context.Context, id int64) (*PipelineRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, iid, project_id, sha, ref, status, source, created_at, updated_at, web_url
		FROM pipelines WHERE id = ?`, id)
	var p PipelineRow
	err := row.Scan(&p.ID, &p.IID, &p.ProjectID, &p.SHA, &p.Ref, &p.Status,
		&p.Source, &p.CreatedAt, &p.UpdatedAt, &p.WebURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up pipeline %d: %w", id, err)
	}
	return &p, nil
}

// SavePipeline writes the full row, inserting or updating by primary key.
func (s *Session) SavePipeline(ctx context.Context, p *PipelineRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO pipelines (id, iid, project_id, sha, ref, status, source,
			created_at, updated_at, web_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			iid = excluded.iid,
			project_id = excluded.project_id,
			sha = excluded.sha,
			ref = excluded.ref,
			status = excluded.status,
			source = excluded.source,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			web_url = excluded.web_url`,
		p.ID, p.IID, p.ProjectID, p.SHA, p.Ref, p.Status, p.Source,
		p.CreatedAt, p.UpdatedAt, p.WebURL)
	if err != nil {
		return fmt.Errorf("saving pipeline %d: %w", p.ID, err)
	}
	return nil
}

// GetJob returns the job row by id, or nil if none exists.
func (s *Session) GetJob(ctx context.Context, id int64) (*JobRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT id, name, stage, status, ref, created_at, started_at, finished_at,
		       duration, web_url, allow_failure, commit_id, pipeline_id, user_id
		FROM jobs WHERE id = ?`, id)
	var j JobRow
	err := row.Scan(&j.ID, &j.Name, &j.Stage, &j.Status, &j.Ref, &j.CreatedAt,
		&j.StartedAt, &j.FinishedAt, &j.Duration, &j.WebURL, &j.AllowFailure,
		&j.CommitID, &j.PipelineID, &j.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up job %d: %w", id, err)
	}
	return &j, nil
}

// SaveJob writes the full row, inserting or updating by primary key.
func (s *Session) SaveJob(ctx context.Context, j *JobRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO jobs (id, name, stage, status, ref, created_at, started_at,
			finished_at, duration, web_url, allow_failure, commit_id, pipeline_id, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			stage = excluded.stage,
			status = excluded.status,
			ref = excluded.ref,
			created_at = excluded.created_at,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			duration = excluded.duration,
			web_url = excluded.web_url,
			allow_failure = excluded.allow_failure,
			commit_id = excluded.commit_id,
			pipeline_id = excluded.pipeline_id,
			user_id = excluded.user_id`,
		j.ID, j.Name, j.Stage, j.Status, j.Ref, j.CreatedAt, j.StartedAt,
		j.FinishedAt, j.Duration, j.WebURL, j.AllowFailure, j.CommitID,
		j.PipelineID, j.UserID)
	if err != nil {
		return fmt.Errorf("saving job %d: %w", j.ID, err)
	}
	return nil
}

// GetArtifact returns the artifact row by job and filename, or nil.
func (s *Session) GetArtifact(ctx context.Context, jobID int64, filename string) (*ArtifactRow, error) {
	row := s.tx.QueryRowContext(ctx, `
		SELECT job_id, filename, file_type, file_format, size
		FROM artifacts WHERE job_id = ? AND filename = ?`, jobID, filename)
	var a ArtifactRow
	err := row.Scan(&a.JobID, &a.Filename, &a.FileType, &a.FileFormat, &a.Size)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up artifact %d/%s: %w", jobID, filename, err)
	}
	return &a, nil
}

// SaveArtifact writes the full row, inserting or updating by primary key.
func (s *Session) SaveArtifact(ctx context.Context, a *ArtifactRow) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO artifacts (job_id, filename, file_type, file_format, size)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(job_id, filename) DO UPDATE SET
			file_type = excluded.file_type,
			file_format = excluded.file_format,
			size = excluded.size`,
		a.JobID, a.Filename, a.FileType, a.FileFormat, a.Size)
	if err != nil {
		return fmt.Errorf("saving artifact %d/%s: %w", a.JobID, a.Filename, err)
	}
	return nil
}
