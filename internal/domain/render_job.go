package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCompilerUnavailable is returned when no LaTeX toolchain is installed.
	ErrCompilerUnavailable = errors.New("latexmk command not found")
	ErrJobNotFound         = errors.New("render job not found")
)

// Render job statuses.
const (
	StatusCompiled = "compiled"
	StatusPreview  = "preview"
	StatusFailed   = "failed"
)

// Attachment describes a file uploaded next to the LaTeX source. Only the
// metadata travels through the renderer; contents are never read.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type RenderJob struct {
	ID           uuid.UUID    `json:"id"`
	TemplateName string       `json:"template_name,omitempty"`
	Status       string       `json:"status"`
	Excerpt      string       `json:"excerpt"`
	Candidate    string       `json:"candidate"`
	Role         string       `json:"role"`
	Workspace    string       `json:"workspace"`
	Source       string       `json:"-"`
	Attachments  []Attachment `json:"attachments,omitempty"`
	Log          string       `json:"log,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
