package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "resume-renderer/internal/adapter/cache"
	httpadapter "resume-renderer/internal/adapter/http"
	repo "resume-renderer/internal/adapter/repository"
	"resume-renderer/internal/config"
	"resume-renderer/internal/infrastructure/migration"
	"resume-renderer/internal/logging"
	"resume-renderer/internal/metrics"
	"resume-renderer/internal/preview"
	"resume-renderer/internal/usecase"
	infra "resume-renderer/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format))
		},
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	pool := openJobsPool(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	var cache usecase.Cache
	if cfg.Cache.RedisAddr != "" {
		client, err := infra.NewRedisClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			logger.Warn("render cache not available", "error", err)
		} else {
			defer client.Close()
			cache = cacheadapter.NewRedisCache(client, cfg.Cache.TTL)
		}
	}

	var jobs usecase.JobsRepo
	if pool != nil {
		jobs = repo.NewJobsRepo(pool)
	}

	compiler := infra.NewLatexmkCompiler(cfg.Render.Binary, cfg.Render.Timeout, cfg.Render.WorkDir)
	if !compiler.Available() {
		logger.Warn("latexmk not found on PATH", "binary", cfg.Render.Binary, "fallback_preview", cfg.Render.FallbackPreview)
	}

	m := metrics.New()
	gen := preview.NewGenerator(cfg.Preview.Defaults)
	svc := usecase.NewRenderService(compiler, jobs, cache, gen, usecase.RenderOptions{
		FallbackPreview: cfg.Render.FallbackPreview,
		Logger:          logger,
		Metrics:         m,
	})
	scheduler := usecase.NewPreviewScheduler(gen, cfg.Preview.Latency)

	h := httpadapter.NewHandler(svc, scheduler, usecase.NewPreviewBoard(), logger)
	app := httpadapter.NewApp(h, httpadapter.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		BodyLimit:      cfg.Server.BodyLimit,
		Metrics:        m,
		Logger:         logger,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("LaTeX render service listening", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openJobsPool connects to the jobs database and applies migrations. A
// missing or unreachable database disables persistence.
func openJobsPool(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	if cfg.Database.URL == "" {
		logger.Info("database.url not set, render jobs are not persisted")
		return nil
	}
	pool, err := infra.NewJobsPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Warn("jobs DB not available", "error", err)
		return nil
	}
	if err := migration.RunMigrations(ctx, pool, logger); err != nil {
		logger.Error("migrations failed, render jobs are not persisted", "error", err)
		pool.Close()
		return nil
	}
	return pool
}
