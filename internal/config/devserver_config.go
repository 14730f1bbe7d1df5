package config

import (
	"fmt"
	"time"
)

const (
	portEnvVar            = "PORT"
	signingSecretVar      = "SIGNING_SECRET"
	accessTokenExpiryVar  = "ACCESS_TOKEN_EXPIRY"
	refreshTokenExpiryVar = "REFRESH_TOKEN_EXPIRY"
)

// DevServerConfig configures the local quiz API used for development.
type DevServerConfig interface {
	GetPort() string
	GetSigningSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
}

type DevServer struct{}

var _ DevServerConfig = DevServer{}

func (DevServer) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (DevServer) GetSigningSecret() string {
	return GetEnv(signingSecretVar, "dev-signing-secret")
}

func (DevServer) GetAccessTokenExpiry() time.Duration {
	return GetDuration(accessTokenExpiryVar, 15*time.Minute)
}

func (DevServer) GetRefreshTokenExpiry() time.Duration {
	return GetDuration(refreshTokenExpiryVar, 7*24*time.Hour) // 7 days
}

func (DevServer) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}
