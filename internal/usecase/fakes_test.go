package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"

	"github.com/google/uuid"
)

type fakeCompiler struct {
	pdf   []byte
	log   string
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeCompiler) Compile(ctx context.Context, latex string) ([]byte, string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, "", ctx.Err()
		}
	}
	return f.pdf, f.log, f.err
}

type memRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*domain.RenderJob
	err  error
}

func newMemRepo() *memRepo { return &memRepo{jobs: map[uuid.UUID]*domain.RenderJob{}} }

func (r *memRepo) Save(ctx context.Context, j *domain.RenderJob) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *memRepo) Get(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return j, nil
}

func (r *memRepo) all() []*domain.RenderJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.RenderJob, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	return out
}

type memCache struct {
	mu    sync.Mutex
	items map[string]*model.RenderResponse
}

func newMemCache() *memCache { return &memCache{items: map[string]*model.RenderResponse{}} }

func (c *memCache) Get(ctx context.Context, key string) (*model.RenderResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.items[key]
	return r, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, resp *model.RenderResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = resp
	return nil
}
