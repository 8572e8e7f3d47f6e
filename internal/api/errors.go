package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// NetworkError wraps transport-level failures: connection refused, DNS,
// timeouts. The server was never reached or never answered.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is returned for 401 responses. By the time the caller sees
// it the session has already been invalidated.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

// NotFoundError is returned for 404 responses.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// FieldError is a single entry from a 422 validation response.
type FieldError struct {
	Location string
	Message  string
	Context  map[string]any
}

func (e FieldError) String() string {
	if e.Location == "" {
		return e.Message
	}
	return e.Location + ": " + e.Message
}

// ValidationError carries the per-field errors from a 422 response so
// forms can attach them to the offending inputs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, "; ")
}

// APIError is any other non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAuth reports whether err is (or wraps) an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

type validationItem struct {
	Loc []any          `json:"loc"`
	Msg string         `json:"msg"`
	Ctx map[string]any `json:"ctx"`
}

// parseValidationBody decodes the FastAPI 422 shape
// {"detail":[{"loc":["body","field"],"msg":"...","ctx":{...}}]}.
// Loc segments may be strings or array indices; they are joined with
// dots into a single path.
func parseValidationBody(body []byte) (*ValidationError, bool) {
	var raw struct {
		Detail []validationItem `json:"detail"`
	}
	if err := json.Unmarshal(body, &raw); err != nil || len(raw.Detail) == 0 {
		return nil, false
	}
	verr := &ValidationError{Fields: make([]FieldError, 0, len(raw.Detail))}
	for _, item := range raw.Detail {
		segs := make([]string, 0, len(item.Loc))
		for _, s := range item.Loc {
			switch v := s.(type) {
			case string:
				segs = append(segs, v)
			case float64:
				segs = append(segs, fmt.Sprintf("%d", int(v)))
			default:
				segs = append(segs, fmt.Sprint(v))
			}
		}
		verr.Fields = append(verr.Fields, FieldError{
			Location: strings.Join(segs, "."),
			Message:  item.Msg,
			Context:  item.Ctx,
		})
	}
	return verr, true
}

// extractDetail pulls a human-readable message out of an error body.
// FastAPI uses {"detail": "..."}; a few endpoints use {"message": "..."}.
func extractDetail(body []byte) string {
	var raw struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	if s, ok := raw.Detail.(string); ok && s != "" {
		return s
	}
	return raw.Message
}
