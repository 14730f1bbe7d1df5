package config

import (
	"strings"
	"time"
)

const (
	baseURLVar             = "BASE_URL"
	requestTimeoutVar      = "REQUEST_TIMEOUT"
	reachabilityTimeoutVar = "REACHABILITY_TIMEOUT"

	DefaultBaseURL        = "https://api--quiz--d7xc6gwzfsnz.code.run"
	DefaultRequestTimeout = 30 * time.Second
)

type API struct{}

var _ APIConfig = API{}

// GetBaseURL returns the API root without a trailing slash.
func (API) GetBaseURL() string {
	return strings.TrimRight(GetEnv(baseURLVar, DefaultBaseURL), "/")
}

// GetRequestTimeout bounds connect, response header and the whole request.
func (API) GetRequestTimeout() time.Duration {
	return GetDuration(requestTimeoutVar, DefaultRequestTimeout)
}

func (API) GetReachabilityTimeout() time.Duration {
	return GetDuration(reachabilityTimeoutVar, 3*time.Second)
}
