package gateway

import (
	"errors"
	"fmt"

	"github.com/M1DES1/aigenimgtovid/internal/heygen"
)

// ErrNoVoices indicates the provider account exposes an empty voice catalog.
var ErrNoVoices = errors.New("no voices available in the provider account")

// ValidationError reports a request that was rejected before reaching the provider.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UpstreamError wraps a provider failure. Details carries the provider payload when one was returned.
type UpstreamError struct {
	Message string
	Code    string
	Details any
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func upstreamError(message string, err error) *UpstreamError {
	upErr := &UpstreamError{Message: message, Code: "unknown_error", Err: err}

	var apiErr *heygen.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Code != "" {
			upErr.Code = apiErr.Code
		}
		if len(apiErr.Body) > 0 {
			upErr.Details = apiErr.Body
		} else {
			upErr.Details = apiErr.Error()
		}
	case err != nil:
		upErr.Details = err.Error()
	}
	return upErr
}
