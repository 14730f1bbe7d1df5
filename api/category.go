package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Category groups gateway errors by how the client reacts to them.
type Category int

const (
	CategoryTransportFailure Category = iota
	CategoryClientError
	CategoryAuthExpired
	CategoryInvalidCredentials
	CategoryAccountExists
	CategoryServerUnavailable
	CategoryUnknown
)

var categoryNames = map[Category]string{
	CategoryTransportFailure:   "transport_failure",
	CategoryClientError:        "client_error",
	CategoryAuthExpired:        "auth_expired",
	CategoryInvalidCredentials: "invalid_credentials",
	CategoryAccountExists:      "account_exists",
	CategoryServerUnavailable:  "server_unavailable",
	CategoryUnknown:            "unknown",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Categorize maps an error to its category. A 401 means expired credentials on
// the protected call and bad credentials on login. Errors that are not *Error
// are Unknown.
func Categorize(err error) Category {
	apiErr, ok := AsError(err)
	if !ok {
		return CategoryUnknown
	}

	switch code := apiErr.Code; {
	case code == 0:
		return CategoryTransportFailure
	case code == http.StatusUnauthorized && apiErr.Op == OpLogin:
		return CategoryInvalidCredentials
	case code == http.StatusUnauthorized && apiErr.Op == OpFetchProtected:
		return CategoryAuthExpired
	case code == http.StatusBadRequest && apiErr.Op == OpSignUp && IsAccountExists(apiErr.Message):
		return CategoryAccountExists
	case code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout:
		return CategoryServerUnavailable
	case code >= 400 && code < 500:
		return CategoryClientError
	default:
		return CategoryUnknown
	}
}

// IsAccountExists reports whether a sign-up error message denotes a duplicate account.
func IsAccountExists(message string) bool {
	return strings.Contains(strings.ToLower(message), "already exists")
}

// UserMessage is the text shown to the user for a failed call.
func UserMessage(err error) string {
	apiErr, ok := AsError(err)
	if !ok {
		if err == nil {
			return ""
		}
		return "Unexpected error: " + err.Error()
	}

	switch apiErr.Code {
	case 0:
		if strings.TrimSpace(apiErr.Message) == "" {
			return "Network error"
		}
		return apiErr.Message
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Sprintf("Error %d: %s", apiErr.Code, StatusText(apiErr.Code))
	default:
		if strings.TrimSpace(apiErr.Message) == "" {
			return "An error occurred"
		}
		return apiErr.Message
	}
}
