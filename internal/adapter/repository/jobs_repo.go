package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-renderer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ErrNotFound is returned by Get when no job has the id.
var ErrNotFound = domain.ErrJobNotFound

// JobsRepo stores render jobs in Postgres. A nil pool turns it into a no-op.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.RenderJob) error {
	if r.pool == nil {
		return nil
	}

	attachments := j.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	attB, err := json.Marshal(attachments)
	if err != nil {
		return fmt.Errorf("marshal attachments: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO render_jobs (id, template_name, status, excerpt, candidate, role, workspace, source, attachments, log, created_at, updated_at)
		VALUES ($1::uuid,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET template_name = EXCLUDED.template_name, status = EXCLUDED.status, excerpt = EXCLUDED.excerpt, candidate = EXCLUDED.candidate, role = EXCLUDED.role, workspace = EXCLUDED.workspace, source = EXCLUDED.source, attachments = EXCLUDED.attachments, log = EXCLUDED.log, updated_at = EXCLUDED.updated_at`,
		j.ID.String(), j.TemplateName, j.Status, j.Excerpt, j.Candidate, j.Role, j.Workspace, j.Source, attB, j.Log, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert render job %s: %w", j.ID, err)
	}
	return nil
}

func (r *JobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error) {
	if r.pool == nil {
		return nil, ErrNotFound
	}

	var (
		j     domain.RenderJob
		rawID string
		attB  []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id::text, template_name, status, excerpt, candidate, role, workspace, source, attachments, log, created_at, updated_at
		FROM render_jobs WHERE id = $1::uuid`, id.String()).
		Scan(&rawID, &j.TemplateName, &j.Status, &j.Excerpt, &j.Candidate, &j.Role, &j.Workspace, &j.Source, &attB, &j.Log, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load render job %s: %w", id, err)
	}
	if j.ID, err = uuid.Parse(rawID); err != nil {
		return nil, err
	}
	if len(attB) > 0 {
		if err := json.Unmarshal(attB, &j.Attachments); err != nil {
			return nil, fmt.Errorf("decode attachments: %w", err)
		}
	}
	return &j, nil
}
