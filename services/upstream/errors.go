package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized means the upstream rejected the session token; the session is dead.
	ErrUnauthorized = errors.New("upstream: unauthorized")
	// ErrInvalidCredentials means a login attempt was refused.
	ErrInvalidCredentials = errors.New("upstream: invalid credentials")
)

// APIError is a non-2xx upstream answer other than 401.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = "API request failed"
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, detail, e.StatusCode)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// parseDetail extracts FastAPI's "detail" field, which is either a string or a list of
// validation errors carrying a "msg".
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
