package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"resume-renderer/internal/domain"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// LatexmkCompiler runs latexmk in a throwaway directory per request.
type LatexmkCompiler struct {
	Binary  string
	Timeout time.Duration
	WorkDir string // parent of the per-request temp dirs; "" means os.TempDir

	probe     sync.Once
	available bool
}

func NewLatexmkCompiler(binary string, timeout time.Duration, workDir string) *LatexmkCompiler {
	if binary == "" {
		binary = "latexmk"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LatexmkCompiler{Binary: binary, Timeout: timeout, WorkDir: workDir}
}

// Available reports whether the binary is on PATH. The lookup happens once.
func (c *LatexmkCompiler) Available() bool {
	c.probe.Do(func() {
		_, err := exec.LookPath(c.Binary)
		c.available = err == nil
	})
	return c.available
}

// Compile writes latex to main.tex, runs latexmk and returns main.pdf along
// with the combined tool output.
func (c *LatexmkCompiler) Compile(ctx context.Context, latex string) ([]byte, string, error) {
	if !c.Available() {
		return nil, "", domain.ErrCompilerUnavailable
	}

	tmpDir, err := os.MkdirTemp(c.WorkDir, "latex-render-")
	if err != nil {
		return nil, "", err
	}
	defer os.RemoveAll(tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, "main.tex"), []byte(latex), 0o644); err != nil {
		return nil, "", err
	}

	cctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(cctx, c.Binary, "-pdf", "-interaction=nonstopmode", "-halt-on-error", "main.tex")
	cmd.Dir = tmpDir
	cmd.Stdout = &out
	cmd.Stderr = &out
	// latexmk forks pdflatex; do not wait on orphaned pipes after a kill
	cmd.WaitDelay = 2 * time.Second
	runErr := cmd.Run()
	log := out.String()

	if errors.Is(cctx.Err(), context.DeadlineExceeded) {
		return nil, log, fmt.Errorf("rendering timed out after %s\n%s", c.Timeout, log)
	}
	if runErr != nil {
		return nil, log, fmt.Errorf("latexmk failed: %w\n%s", runErr, log)
	}

	pdf, err := os.ReadFile(filepath.Join(tmpDir, "main.pdf"))
	if err != nil {
		return nil, log, fmt.Errorf("read compiled pdf: %w", err)
	}
	if pages, err := pageCount(pdf); err == nil {
		log += fmt.Sprintf("\npages: %d", pages)
	}
	return pdf, log, nil
}

func pageCount(pdf []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(pdf), conf)
}
