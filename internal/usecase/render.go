package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/metrics"
	"resume-renderer/internal/model"
	"resume-renderer/internal/preview"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// FallbackLog is the diagnostic returned when the preview stands in for a compile.
const FallbackLog = "latexmk unavailable; returning low-fidelity preview"

// Compiler turns LaTeX source into PDF bytes plus a tool log.
type Compiler interface {
	Compile(ctx context.Context, latex string) ([]byte, string, error)
}

type JobsRepo interface {
	Save(ctx context.Context, j *domain.RenderJob) error
	Get(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error)
}

// Cache stores finished responses by request digest.
type Cache interface {
	Get(ctx context.Context, key string) (*model.RenderResponse, bool, error)
	Set(ctx context.Context, key string, resp *model.RenderResponse) error
}

// RenderOptions carries the optional collaborators of a RenderService.
type RenderOptions struct {
	FallbackPreview bool
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	Now             func() time.Time
}

// RenderService compiles LaTeX through the Compiler and decorates the result
// with the preview excerpt and tokens. Identical concurrent requests share
// one compile.
type RenderService struct {
	compiler  Compiler
	repo      JobsRepo
	cache     Cache
	generator *preview.Generator
	fallback  bool
	log       *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
	group     singleflight.Group
}

func NewRenderService(c Compiler, repo JobsRepo, cache Cache, gen *preview.Generator, opts RenderOptions) *RenderService {
	if gen == nil {
		gen = preview.NewGenerator(preview.DefaultTokens())
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &RenderService{
		compiler:  c,
		repo:      repo,
		cache:     cache,
		generator: gen,
		fallback:  opts.FallbackPreview,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		now:       opts.Now,
	}
}

// Generator exposes the preview generator shared with the scheduler.
func (s *RenderService) Generator() *preview.Generator { return s.generator }

// Preview builds the low-fidelity preview only. It never compiles.
func (s *RenderService) Preview(ctx context.Context, req *model.RenderRequest) (*model.RenderResponse, error) {
	if err := model.ValidateRequest(req); err != nil {
		s.metrics.ObserveRequest("preview", metrics.OutcomeInvalid)
		return nil, err
	}
	start := s.now()
	res := s.generator.Generate(req.LatexSource, req.Overrides())
	s.metrics.ObserveRender("preview", s.now().Sub(start))
	if !res.Available() {
		s.metrics.PreviewUnavailable()
	}
	s.metrics.ObserveRequest("preview", metrics.OutcomeOK)

	s.persist(ctx, req, res, domain.StatusPreview, "")
	return &model.RenderResponse{PDFDataURL: res.PDFDataURL, Excerpt: res.Excerpt, Tokens: res.Tokens}, nil
}

// Render compiles the request, serving repeated requests from the cache.
func (s *RenderService) Render(ctx context.Context, req *model.RenderRequest) (*model.RenderResponse, error) {
	if err := model.ValidateRequest(req); err != nil {
		s.metrics.ObserveRequest("render", metrics.OutcomeInvalid)
		return nil, err
	}

	key := req.CacheKey()
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("render cache lookup failed", "error", err)
		} else if ok {
			s.metrics.CacheHit()
			s.metrics.ObserveRequest("render", metrics.OutcomeCached)
			return cached, nil
		}
	}

	// The shared compile must outlive whichever caller started it; each
	// caller still stops waiting when its own context ends.
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.render(detached, req)
	})
	var r singleflight.Result
	select {
	case r = <-ch:
	case <-ctx.Done():
		s.metrics.ObserveRequest("render", metrics.OutcomeError)
		return nil, ctx.Err()
	}
	if r.Err != nil {
		s.metrics.ObserveRequest("render", metrics.OutcomeError)
		return nil, r.Err
	}
	if r.Shared {
		s.log.Debug("render shared with a concurrent request", "key", key)
	}
	out := *r.Val.(*model.RenderResponse)
	return &out, nil
}

func (s *RenderService) render(ctx context.Context, req *model.RenderRequest) (*model.RenderResponse, error) {
	start := s.now()
	res := s.generator.Generate(req.LatexSource, req.Overrides())
	resp := &model.RenderResponse{Excerpt: res.Excerpt, Tokens: res.Tokens}

	pdf, log, err := s.compiler.Compile(ctx, req.LatexSource)
	status, source, outcome := domain.StatusCompiled, "latexmk", metrics.OutcomeOK
	switch {
	case err == nil:
		resp.PDFDataURL = preview.EncodeDataURL(pdf, s.generator.Encode)
		resp.Log = log
	case errors.Is(err, domain.ErrCompilerUnavailable) && s.fallback:
		s.log.Warn("compiler unavailable, serving preview", "template", req.TemplateName)
		resp.PDFDataURL = res.PDFDataURL
		resp.Log = FallbackLog
		status, source, outcome = domain.StatusPreview, "preview", metrics.OutcomeFallback
	default:
		s.log.Error("latex render failed", "template", req.TemplateName, "error", err)
		s.persist(ctx, req, res, domain.StatusFailed, log)
		return nil, fmt.Errorf("render latex: %w", err)
	}

	s.metrics.ObserveRender(source, s.now().Sub(start))
	s.metrics.ObserveRequest("render", outcome)
	if resp.PDFDataURL == "" {
		s.metrics.PreviewUnavailable()
	}

	s.persist(ctx, req, res, status, resp.Log)
	// fallback previews are not cached
	if s.cache != nil && status == domain.StatusCompiled && resp.PDFDataURL != "" {
		if err := s.cache.Set(ctx, req.CacheKey(), resp); err != nil {
			s.log.Warn("render cache store failed", "error", err)
		}
	}
	return resp, nil
}

// Job loads a stored render job.
func (s *RenderService) Job(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error) {
	if s.repo == nil {
		return nil, domain.ErrJobNotFound
	}
	return s.repo.Get(ctx, id)
}

// persist records the job; failures are logged, never returned.
func (s *RenderService) persist(ctx context.Context, req *model.RenderRequest, res preview.Result, status, log string) {
	if s.repo == nil {
		return
	}
	now := s.now()
	job := &domain.RenderJob{
		ID:           uuid.New(),
		TemplateName: req.TemplateName,
		Status:       status,
		Excerpt:      res.Excerpt,
		Candidate:    res.Tokens.Candidate,
		Role:         res.Tokens.Role,
		Workspace:    res.Tokens.Workspace,
		Source:       req.LatexSource,
		Attachments:  req.Attachments,
		Log:          log,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, job); err != nil {
		s.log.Warn("failed to save render job", "id", job.ID, "error", err)
	}
}
