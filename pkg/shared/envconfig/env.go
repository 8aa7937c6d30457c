// Package envconfig resolves adapter configuration from env files, the process
// environment and an optional YAML file.
package envconfig

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultEnvFiles are loaded from the working directory when present.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadDotenv loads env files without overriding variables that are already set.
func LoadDotenv(log zerolog.Logger, files ...string) []string {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Warn().Err(err).Str("file", file).Msg("Failed to load env file")
			continue
		}
		loaded = append(loaded, file)
	}
	if len(loaded) == 0 {
		log.Debug().Msg("No env files loaded, relying on process environment")
	} else {
		log.Debug().Strs("files", loaded).Msg("Loaded env files")
	}
	return loaded
}

// String returns the trimmed value of key, or "".
func String(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// Int returns the integer value of key, or defaultValue when unset or malformed.
func Int(key string, defaultValue int) int {
	if value := String(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Bool returns the boolean value of key, or defaultValue when unset or malformed.
func Bool(key string, defaultValue bool) bool {
	if value := String(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Or returns existing unless value is non-empty after trimming.
func Or(existing, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return existing
	}
	return value
}

// MissingError lists mandatory settings that could not be resolved.
type MissingError struct {
	Adapter string
	Keys    []string
}

func (e *MissingError) Error() string {
	return e.Adapter + ": missing required configuration: " + strings.Join(e.Keys, ", ")
}

// Require collects the names of empty mandatory values.
// pairs alternates environment variable names and resolved values.
func Require(adapter string, pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingError{Adapter: adapter, Keys: missing}
}

// IsMissing reports whether err is a *MissingError.
func IsMissing(err error) bool {
	var missing *MissingError
	return errors.As(err, &missing)
}
