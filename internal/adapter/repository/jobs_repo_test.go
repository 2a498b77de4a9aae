package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/infrastructure/migration"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestNilPoolIsNoop(t *testing.T) {
	r := NewJobsRepo(nil)
	job := &domain.RenderJob{ID: uuid.New(), Status: domain.StatusPreview}
	if err := r.Save(context.Background(), job); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := r.Get(context.Background(), job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "renderer",
			"POSTGRES_PASSWORD": "renderer",
			"POSTGRES_DB":       "jobs",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	host, err := pg.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get host: %v", err)
	}
	return fmt.Sprintf("postgres://renderer:renderer@%s:%s/jobs?sslmode=disable", host, port.Port())
}

func TestJobsRepoPostgres(t *testing.T) {
	if testing.Short() || os.Getenv("RENDERER_INTEGRATION") == "" {
		t.Skip("set RENDERER_INTEGRATION=1 to run against a Postgres container")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pgxpool.Connect(ctx, startPostgres(t, ctx))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if err := migration.RunMigrations(ctx, pool, nil); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	// second run must be a no-op
	if err := migration.RunMigrations(ctx, pool, nil); err != nil {
		t.Fatalf("migrations rerun: %v", err)
	}

	r := NewJobsRepo(pool)
	now := time.Now().UTC().Truncate(time.Millisecond)
	job := &domain.RenderJob{
		ID:           uuid.New(),
		TemplateName: "modern",
		Status:       domain.StatusPreview,
		Excerpt:      "Summary: Led 3 launches.",
		Candidate:    "Ana Li",
		Role:         "PM",
		Workspace:    "Core",
		Source:       `\begin{document}x\end{document}`,
		Attachments:  []domain.Attachment{{Filename: "logo.png", ContentType: "image/png", Size: 2048}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.Save(ctx, job); err != nil {
		t.Fatalf("Save: %v", err)
	}

	job.Status = domain.StatusCompiled
	job.Log = "pages: 1"
	job.UpdatedAt = now.Add(time.Second)
	if err := r.Save(ctx, job); err != nil {
		t.Fatalf("Save upsert: %v", err)
	}

	got, err := r.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != job.ID || got.Status != domain.StatusCompiled || got.Log != "pages: 1" || got.Excerpt != job.Excerpt {
		t.Fatalf("unexpected job %+v", got)
	}
	if len(got.Attachments) != 1 || got.Attachments[0].Size != 2048 {
		t.Fatalf("attachments = %+v", got.Attachments)
	}
	if !got.UpdatedAt.Equal(job.UpdatedAt) {
		t.Fatalf("updated_at = %s, want %s", got.UpdatedAt, job.UpdatedAt)
	}

	if _, err := r.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id err = %v", err)
	}
}
