package heygen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrMissingVideoID indicates the provider accepted a job without returning its id.
	ErrMissingVideoID = errors.New("heygen did not return a video_id")
	// ErrNotConfigured indicates the client was built without an API key.
	ErrNotConfigured = errors.New("heygen client is not configured")
)

// APIError is returned when the provider answers with a non-success HTTP status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("heygen API returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("heygen API returned status %d", e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return apiErr
	}
	if !gjson.Valid(trimmed) {
		apiErr.Message = trimmed
		return apiErr
	}
	apiErr.Body = json.RawMessage(trimmed)

	parsed := gjson.Parse(trimmed)
	apiErr.Code = firstString(parsed, "error.code", "code")
	apiErr.Message = firstString(parsed, "error.message", "message", "error")
	return apiErr
}

func firstString(parsed gjson.Result, paths ...string) string {
	for _, path := range paths {
		v := parsed.Get(path)
		if v.Exists() && v.Type != gjson.JSON && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
