package config

import "os"

// Version is stamped at build time with -ldflags "-X salesdash/internal/config.Version=...".
var Version = "dev"

// GetVersion returns the build version, preferring APP_VERSION when set by CI/CD.
func GetVersion() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return Version
}
