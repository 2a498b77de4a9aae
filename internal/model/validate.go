package model

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/render_request.schema.json
var renderRequestSchema string

var schemaLoader = gojsonschema.NewStringLoader(renderRequestSchema)

// ErrInvalidRequest is matched by every ValidationError.
var ErrInvalidRequest = errors.New("invalid request payload")

// ValidationError lists the schema violations of a request.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRequest, strings.Join(e.Details, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

// ValidateJSON validates a raw request body against the render request schema.
func ValidateJSON(body []byte) error {
	return validate(gojsonschema.NewBytesLoader(body))
}

// ValidateRequest validates an already decoded request.
func ValidateRequest(req *RenderRequest) error {
	if req == nil {
		return &ValidationError{Details: []string{"(root): request is required"}}
	}
	return validate(gojsonschema.NewGoLoader(req))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return &ValidationError{Details: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	details := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		details = append(details, e.String())
	}
	return &ValidationError{Details: details}
}
