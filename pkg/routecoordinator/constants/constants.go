// Package constants defines environment variables and defaults shared by
// the routecoordinator packages.
package constants

import (
	"os"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// LogLevelEnvVar overrides the configured log level (e.g. "debug").
const LogLevelEnvVar = "ROUTECOORDINATOR_LOG_LEVEL"

// ConfigPathEnvVar points LoadOptionsFromEnv at a TOML options file.
const ConfigPathEnvVar = "ROUTECOORDINATOR_CONFIG"

// DefaultSuggestDistance is the largest edit distance at which an unmatched
// path gets a "did you mean" suggestion.
const DefaultSuggestDistance = 3

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}
