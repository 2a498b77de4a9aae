package http

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"resume-renderer/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type RouterConfig struct {
	AllowedOrigins []string
	BodyLimit      int
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
}

// NewApp wires the renderer routes onto a fiber app.
func NewApp(h *Handler, cfg RouterConfig) *fiber.App {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 2 * 1024 * 1024
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	origins := "*"
	if len(cfg.AllowedOrigins) > 0 {
		origins = strings.Join(cfg.AllowedOrigins, ",")
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal server error"
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code, msg = fe.Code, fe.Message
			}
			cfg.Logger.Error("unhandled error in request pipeline", "path", c.Path(), "status", code, "error", err)
			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))
	app.Use(requestLogger(cfg.Logger))

	app.Get("/healthz", h.Healthz)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	app.Post("/render", h.Render)
	app.Get("/render/jobs/:id", h.GetJob)
	app.Post("/preview", h.Preview)
	app.Post("/forms/:formId/preview", h.SchedulePreview)
	app.Get("/forms/:formId/preview", h.FormPreview)
	return app
}

func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}
