package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetUserAgent() string
}

type StorageConfig interface {
	GetCredentialsFile() string
	GetCredentialsKey() string
}

type mainConfig struct {
	EnvVars
}

// New returns the environment-backed configuration. When TICKETING_CONFIG
// names a YAML file its values sit between the environment and the defaults.
func New() (Config, error) {
	file, err := LoadFile(GetEnv(configFileEnvVar, ""))
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars{file: file}}, nil
}
