package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/preview"
)

// RenderRequest is the body of POST /render and POST /preview.
type RenderRequest struct {
	LatexSource  string              `json:"latexSource"`
	TemplateName string              `json:"templateName,omitempty"`
	Tokens       *preview.Tokens     `json:"tokens,omitempty"`
	Attachments  []domain.Attachment `json:"attachments,omitempty"`
}

// Overrides returns the caller's tokens, empty when none were sent.
func (r *RenderRequest) Overrides() preview.Tokens {
	if r == nil || r.Tokens == nil {
		return preview.Tokens{}
	}
	return *r.Tokens
}

// CacheKey is a stable digest of everything that influences the response.
func (r *RenderRequest) CacheKey() string {
	b, _ := json.Marshal(r)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// RenderResponse mirrors the renderer's JSON reply. An empty PDFDataURL means
// the preview is unavailable.
type RenderResponse struct {
	PDFDataURL string         `json:"pdfDataUrl"`
	Excerpt    string         `json:"excerpt"`
	Tokens     preview.Tokens `json:"tokens"`
	Log        string         `json:"log"`
}
