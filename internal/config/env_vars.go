package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	appNameVar          = "APP_NAME"
	envVar              = "ENV"
	logLevelEnvVar      = "TICKETING_LOG_LEVEL"
	apiURLEnvVar        = "TICKETING_API_URL"
	timeoutEnvVar       = "TICKETING_REQUEST_TIMEOUT"
	credentialsEnvVar   = "TICKETING_CREDENTIALS_FILE"
	credentialsKeyVar   = "TICKETING_CREDENTIALS_KEY"
	configFileEnvVar    = "TICKETING_CONFIG"
	defaultAPIBaseURL   = "http://localhost:3000/api"
	defaultAppName      = "Ticketing"
	credentialsFileName = "credentials.json"
)

type EnvVars struct {
	file FileValues
}

var _ Config = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, defaultAppName)
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(envVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func (e EnvVars) GetLogLevel() string {
	level := GetEnv(logLevelEnvVar, e.file.LogLevel)
	if level != "" {
		return strings.ToLower(level)
	}
	if e.GetEnv() == "DEV" {
		return "debug"
	}
	return "info"
}

// GetAPIBaseURL returns the backend base URL without a trailing slash
func (e EnvVars) GetAPIBaseURL() string {
	url := GetEnv(apiURLEnvVar, e.file.APIURL)
	if url == "" {
		url = defaultAPIBaseURL
	}
	return strings.TrimRight(url, "/")
}

// GetRequestTimeout returns zero (no timeout) unless one is configured
func (e EnvVars) GetRequestTimeout() time.Duration {
	raw := GetEnv(timeoutEnvVar, e.file.RequestTimeout)
	if raw == "" {
		return 0
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout < 0 {
		log.Warn().Str("value", raw).Msg("ignoring invalid request timeout")
		return 0
	}
	return timeout
}

func (e EnvVars) GetUserAgent() string {
	return e.GetAppName() + "-cli"
}

// GetCredentialsFile checks TICKETING_CREDENTIALS_FILE first, then the
// config file, then $XDG_CONFIG_HOME/ticketing and ~/.config/ticketing.
func (e EnvVars) GetCredentialsFile() string {
	if path := GetEnv(credentialsEnvVar, e.file.CredentialsFile); path != "" {
		return path
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "ticketing-"+credentialsFileName)
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "ticketing", credentialsFileName)
}

// GetCredentialsKey returns the hex encoded key used to seal the credentials
// file. It is only read from the environment so it never lands on disk.
func (EnvVars) GetCredentialsKey() string {
	return os.Getenv(credentialsKeyVar)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
