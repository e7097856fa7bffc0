package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUpstream matches every GatewayError.
var ErrUpstream = errors.New("gateway returned an error")

const genericServerError = "server error"

// ValidationError is raised before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayError reports a non-success response from the gateway.
type GatewayError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *GatewayError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Is lets callers match any gateway failure with errors.Is(err, ErrUpstream).
func (e *GatewayError) Is(target error) bool {
	return target == ErrUpstream
}

// ConnectivityError reports that the gateway could not be reached at all.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach gateway (%s): %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// newGatewayError extracts the message and code from an error payload of the form
// {"error": "...", "details": ..., "code": "..."}.
func newGatewayError(status int, body []byte) *GatewayError {
	gwErr := &GatewayError{StatusCode: status, Message: genericServerError}
	if !gjson.ValidBytes(body) {
		return gwErr
	}

	parsed := gjson.ParseBytes(body)
	message := strings.TrimSpace(parsed.Get("error").String())
	detail := ""
	switch details := parsed.Get("details"); {
	case details.Type == gjson.String:
		detail = details.String()
	case details.Get("error.message").Exists():
		detail = details.Get("error.message").String()
	case details.Get("message").Exists():
		detail = details.Get("message").String()
	}
	detail = strings.TrimSpace(detail)

	switch {
	case message != "" && detail != "" && detail != message:
		gwErr.Message = message + ": " + detail
	case message != "":
		gwErr.Message = message
	case detail != "":
		gwErr.Message = detail
	}

	gwErr.Code = parsed.Get("code").String()
	if gwErr.Code == "" {
		gwErr.Code = parsed.Get("details.error.code").String()
	}
	return gwErr
}
