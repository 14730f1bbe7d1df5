package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	DevServerConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetMetricsAddr() string
}

// APIConfig describes how the client reaches the remote quiz API.
type APIConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetReachabilityTimeout() time.Duration
}

// StorageConfig locates the persisted credential record.
type StorageConfig interface {
	GetCredentialsFile() string
	GetCredentialsSecret() string
}

type mainConfig struct {
	EnvVars
	API
	Storage
	DevServer
}

func New() Config {
	return mainConfig{}
}
