package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/usermgmt/internal/flagx"
	"github.com/dmitrijs2005/usermgmt/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
// Zero values leave the current setting untouched.
type JsonConfig struct {
	EndpointAddrHTTP             string         `json:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	SaltBits                     int            `json:"salt_bits"`
	KDFTime                      uint32         `json:"kdf_time"`
	KDFMemory                    uint32         `json:"kdf_memory"`
	KDFThreads                   uint8          `json:"kdf_threads"`
	KDFKeyLength                 uint32         `json:"kdf_key_length"`
	LogLevel                     string         `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, and overlays it on config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration != 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.SaltBits != 0 {
		config.SaltBits = c.SaltBits
	}
	if c.KDFTime != 0 {
		config.KDFTime = c.KDFTime
	}
	if c.KDFMemory != 0 {
		config.KDFMemory = c.KDFMemory
	}
	if c.KDFThreads != 0 {
		config.KDFThreads = c.KDFThreads
	}
	if c.KDFKeyLength != 0 {
		config.KDFKeyLength = c.KDFKeyLength
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
