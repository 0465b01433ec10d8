package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server honours.
// Unset variables leave the current setting untouched.
type EnvConfig struct {
	EndpointAddrHTTP             string        `env:"HTTP_ADDRESS"`
	DatabaseDSN                  string        `env:"DATABASE_DSN"`
	SecretKey                    string        `env:"JWT_SECRET"`
	AccessTokenValidityDuration  time.Duration `env:"ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `env:"REFRESH_TOKEN_TTL"`
	LogLevel                     string        `env:"LOG_LEVEL"`
}

// parseEnv overlays environment variables on config. A malformed value panics.
func parseEnv(config *Config) {
	var c EnvConfig
	if err := env.Parse(&c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration
	}
	if c.RefreshTokenValidityDuration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration
	}
}
