package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-l string   log level (debug, info, warn, error)
//
// Flags owned by other components are ignored. A malformed value panics.
func parseFlags(config *Config) {
	var accessMinutes, refreshMinutes int

	fs, err := flagx.Parse("main", os.Args[1:], func(fs *flag.FlagSet) {
		fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
		fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
		fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
		fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
		fs.IntVar(&accessMinutes, "t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
		fs.IntVar(&refreshMinutes, "r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	})
	if err != nil {
		panic(err)
	}

	// only explicit flags override, so sub-minute values from env or JSON survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(accessMinutes) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(refreshMinutes) * time.Minute
		}
	})
}
