// Package config loads the client configuration from a config file and
// FITTRACK_ environment variables, with working defaults for a local
// backend.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config interface {
	APIConfig
	SessionConfig
	ProfileConfig
	OAuthConfig
	LogConfig
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type SessionConfig interface {
	GetRefreshThreshold() time.Duration
	GetRefreshCheckInterval() time.Duration
}

type ProfileConfig interface {
	GetProfileDir() string
	GetStoragePassphrase() string
}

type OAuthConfig interface {
	GetOAuthClientID() string
	GetOAuthClientSecret() string
	GetOAuthIssuerURL() string
}

type LogConfig interface {
	GetLogLevel() string
}

type mainConfig struct {
	v *viper.Viper
}

var _ Config = mainConfig{}

// New loads the configuration. A config file is optional; environment
// variables and flags bound by the caller override it.
func New(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FITTRACK")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/fittrack")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "[config.New] read config")
		}
	}
	return mainConfig{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_base_url", "http://localhost:8080/api")
	v.SetDefault("api_timeout", 30*time.Second)
	v.SetDefault("token_refresh_threshold", 5*time.Minute)
	v.SetDefault("refresh_check_interval", 30*time.Second)
	v.SetDefault("profile_dir", "")
	v.SetDefault("storage_passphrase", "")
	v.SetDefault("oauth_client_id", "")
	v.SetDefault("oauth_client_secret", "")
	v.SetDefault("oauth_issuer_url", "")
	v.SetDefault("log_level", "info")
}

func (c mainConfig) GetAPIBaseURL() string {
	return c.v.GetString("api_base_url")
}

func (c mainConfig) GetAPITimeout() time.Duration {
	return c.v.GetDuration("api_timeout")
}

func (c mainConfig) GetRefreshThreshold() time.Duration {
	return c.v.GetDuration("token_refresh_threshold")
}

func (c mainConfig) GetRefreshCheckInterval() time.Duration {
	return c.v.GetDuration("refresh_check_interval")
}

func (c mainConfig) GetProfileDir() string {
	return c.v.GetString("profile_dir")
}

func (c mainConfig) GetStoragePassphrase() string {
	return c.v.GetString("storage_passphrase")
}

func (c mainConfig) GetOAuthClientID() string {
	return c.v.GetString("oauth_client_id")
}

func (c mainConfig) GetOAuthClientSecret() string {
	return c.v.GetString("oauth_client_secret")
}

func (c mainConfig) GetOAuthIssuerURL() string {
	return c.v.GetString("oauth_issuer_url")
}

func (c mainConfig) GetLogLevel() string {
	return c.v.GetString("log_level")
}
