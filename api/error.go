package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Operation names a gateway call. Values double as metric labels.
type Operation string

const (
	OpSignUp         Operation = "sign_up"
	OpLogin          Operation = "login"
	OpRefresh        Operation = "refresh"
	OpFetchProtected Operation = "fetch_protected"
)

// Error is the failure half of every gateway result. Code 0 means no HTTP
// response was obtained; any other value is the HTTP status received.
type Error struct {
	Op      Operation
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, e.Message)
}

func (e *Error) IsTransport() bool {
	return e.Code == 0
}

func (e *Error) IsUnauthorized() bool {
	return e.Code == http.StatusUnauthorized
}

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusText is the fallback message used when an error response has no body.
func StatusText(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Bad Request"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return "Forbidden"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusServiceUnavailable:
		return "Service Unavailable"
	case http.StatusGatewayTimeout:
		return "Gateway Timeout"
	default:
		return fmt.Sprintf("Unknown error: HTTP %d", code)
	}
}

func transportError(op Operation, err error) *Error {
	detail := "Unknown error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return &Error{Op: op, Code: 0, Message: "Network error: " + detail}
}
