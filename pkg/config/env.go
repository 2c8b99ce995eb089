// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// envFiles are loaded in order; later files override earlier ones.
var envFiles = []string{".env", ".env.dev"}

// LoadEnv overlays local env files onto the process environment. Missing
// files are fine; deployments usually configure through the environment
// directly.
func LoadEnv(logger *logrus.Logger) {
	var loaded []string
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Failed to load %s", file)
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger == nil {
		return
	}
	if len(loaded) == 0 {
		logger.Debug("No local env files loaded; relying on process environment")
	} else {
		logger.Debugf("Loaded env files: %s", strings.Join(loaded, ", "))
	}
}

// getParsed reads key and parses it; empty or unparseable values fall back
// to the default.
func getParsed[T any](key string, parse func(string) (T, error), defaultValue T) T {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := parse(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetEnv returns the variable's value, or the default when unset or empty.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt parses an integer variable with a default.
func GetEnvInt(key string, defaultValue int) int {
	return getParsed(key, strconv.Atoi, defaultValue)
}

// GetEnvBool parses a boolean variable with a default.
func GetEnvBool(key string, defaultValue bool) bool {
	return getParsed(key, strconv.ParseBool, defaultValue)
}

// GetEnvDuration parses a duration variable ("30s", "5m") with a default.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return getParsed(key, time.ParseDuration, defaultValue)
}

// RequireEnv returns the variable's value or exits the process. For
// configuration the service cannot run without.
func RequireEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		logrus.Fatalf("environment variable %s is required but not set", key)
	}
	return value
}

// GetLogLevel maps LOG_LEVEL onto a logrus level, defaulting to info.
func GetLogLevel() logrus.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
