// Package client calls a running resume-renderer over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"resume-renderer/internal/domain"
	"resume-renderer/internal/model"
	"resume-renderer/internal/preview"

	"github.com/google/uuid"
)

// APIError is a non-2xx reply from the renderer.
type APIError struct {
	Status  int      `json:"-"`
	Message string   `json:"error"`
	Details []string `json:"details"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("renderer returned %d: %s (%s)", e.Status, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("renderer returned %d: %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Attempts bounds retries of transport failures; HTTP errors are not retried.
	Attempts int
}

// NewClient targets RENDERER_URL, or the local default port.
func NewClient() *Client {
	base := os.Getenv("RENDERER_URL")
	if base == "" {
		base = "http://localhost:4100"
	}
	return &Client{BaseURL: strings.TrimRight(base, "/"), HTTP: &http.Client{Timeout: 60 * time.Second}, Attempts: 3}
}

func (c *Client) Render(ctx context.Context, req *model.RenderRequest) (*model.RenderResponse, error) {
	var out model.RenderResponse
	if err := c.post(ctx, "/render", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Preview(ctx context.Context, req *model.RenderRequest) (*model.RenderResponse, error) {
	var out model.RenderResponse
	if err := c.post(ctx, "/preview", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Job(ctx context.Context, id uuid.UUID) (*domain.RenderJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/render/jobs/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrJobNotFound
	}
	var job domain.RenderJob
	if err := decode(resp, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.doPostWithRetry(ctx, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decode(resp, out)
}

// doPostWithRetry retries transport failures with exponential backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	attempts := c.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if i < attempts-1 {
			backoff := time.Duration(1<<i) * 250 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func decode(resp *http.Response, out interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	return json.Unmarshal(raw, out)
}

// DecodePDF extracts the PDF bytes from a pdfDataUrl value.
func DecodePDF(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, preview.DataURLPrefix) {
		return nil, errors.New("not a pdf data url")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, preview.DataURLPrefix))
}
