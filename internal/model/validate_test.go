package model

import (
	"errors"
	"testing"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/preview"
)

func TestValidateJSON(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"minimal", `{"latexSource":"\\section{A}"}`, true},
		{"full", `{"latexSource":"x","templateName":"modern","tokens":{"candidate":"Ana"},"attachments":[{"filename":"a.png","contentType":"image/png","size":12}]}`, true},
		{"missing source", `{"templateName":"modern"}`, false},
		{"empty source", `{"latexSource":""}`, false},
		{"source wrong type", `{"latexSource":42}`, false},
		{"token wrong type", `{"latexSource":"x","tokens":{"role":7}}`, false},
		{"negative size", `{"latexSource":"x","attachments":[{"filename":"a","contentType":"b","size":-1}]}`, false},
		{"fractional size", `{"latexSource":"x","attachments":[{"filename":"a","contentType":"b","size":1.5}]}`, false},
		{"attachment missing field", `{"latexSource":"x","attachments":[{"filename":"a","size":1}]}`, false},
		{"not json", `{"latexSource":`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateJSON([]byte(tc.body))
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				if !errors.Is(err, ErrInvalidRequest) {
					t.Fatalf("error %v does not match ErrInvalidRequest", err)
				}
				var ve *ValidationError
				if !errors.As(err, &ve) || len(ve.Details) == 0 {
					t.Fatalf("expected details, got %v", err)
				}
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	if err := ValidateRequest(&RenderRequest{LatexSource: "hello"}); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := ValidateRequest(&RenderRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("empty source accepted: %v", err)
	}
	if err := ValidateRequest(nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("nil request accepted: %v", err)
	}
}

func TestCacheKey(t *testing.T) {
	a := &RenderRequest{LatexSource: "x", Tokens: &preview.Tokens{Role: "PM"}}
	b := &RenderRequest{LatexSource: "x", Tokens: &preview.Tokens{Role: "PM"}}
	if a.CacheKey() != b.CacheKey() {
		t.Fatalf("equal requests hash differently")
	}
	c := &RenderRequest{LatexSource: "x", Tokens: &preview.Tokens{Role: "PM"},
		Attachments: []domain.Attachment{{Filename: "f", ContentType: "t", Size: 1}}}
	if a.CacheKey() == c.CacheKey() {
		t.Fatalf("attachments ignored by cache key")
	}
	if len(a.CacheKey()) != 64 {
		t.Fatalf("unexpected key %q", a.CacheKey())
	}
}

func TestOverrides(t *testing.T) {
	var nilReq *RenderRequest
	if nilReq.Overrides() != (preview.Tokens{}) {
		t.Fatalf("nil request should have no overrides")
	}
	r := &RenderRequest{Tokens: &preview.Tokens{Candidate: "Ana"}}
	if r.Overrides().Candidate != "Ana" {
		t.Fatalf("overrides lost")
	}
}
