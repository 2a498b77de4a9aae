package usecase

import (
	"sync"
	"time"

	"resume-renderer/internal/preview"
)

// PreviewScheduler delivers previews after a fixed latency and keeps at most
// one pending completion per form. Scheduling again for the same form
// cancels the earlier completion, so a stale preview is never applied.
type PreviewScheduler struct {
	gen     *preview.Generator
	latency time.Duration

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingPreview
}

// Completion is a preview delivered by the scheduler. Seq grows with every
// Schedule call, so a larger Seq always belongs to a newer request.
type Completion struct {
	FormID string
	Seq    uint64
	Result preview.Result
}

type pendingPreview struct {
	seq   uint64
	timer *time.Timer
}

func NewPreviewScheduler(gen *preview.Generator, latency time.Duration) *PreviewScheduler {
	if gen == nil {
		gen = preview.NewGenerator(preview.DefaultTokens())
	}
	return &PreviewScheduler{gen: gen, latency: latency, pending: map[string]*pendingPreview{}}
}

// Schedule arms a completion for formID that calls apply with the preview of
// latex. Any completion still pending for formID is cancelled first. A
// completion that was already handed to apply cannot be recalled, so apply
// must drop a Completion whose Seq is older than the one it holds.
func (s *PreviewScheduler) Schedule(formID, latex string, overrides preview.Tokens, apply func(Completion)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[formID]; ok {
		p.timer.Stop()
	}
	s.seq++
	p := &pendingPreview{seq: s.seq}
	p.timer = time.AfterFunc(s.latency, func() { s.complete(formID, p.seq, latex, overrides, apply) })
	s.pending[formID] = p
}

func (s *PreviewScheduler) complete(formID string, seq uint64, latex string, overrides preview.Tokens, apply func(Completion)) {
	res := s.gen.Generate(latex, overrides)

	s.mu.Lock()
	cur, ok := s.pending[formID]
	if !ok || cur.seq != seq {
		// superseded or cancelled while generating
		s.mu.Unlock()
		return
	}
	delete(s.pending, formID)
	s.mu.Unlock()

	apply(Completion{FormID: formID, Seq: seq, Result: res})
}

// Cancel drops the pending completion for formID and reports whether there was one.
func (s *PreviewScheduler) Cancel(formID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[formID]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(s.pending, formID)
	return true
}

// Pending reports whether formID has a completion waiting to fire.
func (s *PreviewScheduler) Pending(formID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[formID]
	return ok
}

// PreviewBoard holds the latest applied preview per form. It keeps the
// highest Seq seen for each form and ignores older completions.
type PreviewBoard struct {
	mu      sync.RWMutex
	results map[string]Completion
}

func NewPreviewBoard() *PreviewBoard {
	return &PreviewBoard{results: map[string]Completion{}}
}

// Apply stores c unless a newer completion for the same form is already held.
func (b *PreviewBoard) Apply(c Completion) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if cur, ok := b.results[c.FormID]; ok && cur.Seq >= c.Seq {
		return
	}
	b.results[c.FormID] = c
}

func (b *PreviewBoard) Latest(formID string) (preview.Result, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.results[formID]
	return c.Result, ok
}
