package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations brings the render_jobs schema up to date. Every step is
// idempotent so it runs on each startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			logger.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		logger.Info("Migration completed", "name", m.Name)
	}

	logger.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the steps in the order they run.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_render_jobs", Up: execStep(createRenderJobs)},
		{Name: "add_attachments_to_render_jobs", Up: execStep(addAttachments)},
		{Name: "index_render_jobs_created_at", Up: execStep(indexCreatedAt)},
	}
}

const createRenderJobs = `
	CREATE TABLE IF NOT EXISTS render_jobs (
		id            UUID PRIMARY KEY,
		template_name TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		excerpt       TEXT NOT NULL DEFAULT '',
		candidate     TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT '',
		workspace     TEXT NOT NULL DEFAULT '',
		source        TEXT NOT NULL DEFAULT '',
		log           TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// attachments arrived after the first deployments of the table
const addAttachments = `
	ALTER TABLE render_jobs
	ADD COLUMN IF NOT EXISTS attachments JSONB NOT NULL DEFAULT '[]'::jsonb;
`

const indexCreatedAt = `
	CREATE INDEX IF NOT EXISTS render_jobs_created_at_idx ON render_jobs (created_at DESC);
`

func execStep(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}
