package main

import (
	"errors"
	"os"

	"resume-renderer/internal/config"
	"resume-renderer/internal/infrastructure/migration"
	"resume-renderer/internal/logging"
	infra "resume-renderer/pkg/infrastructure"

	"github.com/spf13/cobra"
)

func migrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply render_jobs migrations to database.url",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.New("database.url (or JOBS_DATABASE_URL) is required")
			}
			logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
			pool, err := infra.NewJobsPool(cmd.Context(), cfg.Database.URL)
			if err != nil {
				return err
			}
			defer pool.Close()
			return migration.RunMigrations(cmd.Context(), pool, logger)
		},
	}
}
