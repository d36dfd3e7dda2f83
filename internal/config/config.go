// Package config loads tool-level settings from the environment, with an
// optional .env file for local development. Pipeline content never comes from
// here; only how the tool itself behaves.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the tool settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is json or console.
	LogFormat string

	// Pipeline is the default pipeline file, used when no --pipeline flag
	// is given.
	Pipeline string
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validFormats = map[string]bool{"json": true, "console": true}

// Load reads configuration from the environment. A .env file in the current
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		LogLevel:  getEnv("TASKFORGE_LOG_LEVEL", "info"),
		LogFormat: getEnv("TASKFORGE_LOG_FORMAT", "console"),
		Pipeline:  getEnv("TASKFORGE_PIPELINE", "pipeline.yaml"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings hold supported values.
func (c *Config) Validate() error {
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("config: invalid log level %q (debug|info|warn|error)", c.LogLevel)
	}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("config: invalid log format %q (json|console)", c.LogFormat)
	}
	if c.Pipeline == "" {
		return fmt.Errorf("config: pipeline file must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
