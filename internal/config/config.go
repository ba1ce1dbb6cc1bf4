// Package config resolves runtime settings from the environment (and an
// optional .env file). CLI flags use these values as their defaults.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvAddr      = "TEACHERSDAY_ADDR"
	EnvImagesDir = "TEACHERSDAY_IMAGES"
	EnvRoster    = "TEACHERSDAY_ROSTER"
	EnvLogLevel  = "TEACHERSDAY_LOG_LEVEL"
	EnvLogFormat = "TEACHERSDAY_LOG_FORMAT"
	EnvFormat    = "TEACHERSDAY_FORMAT"
	EnvOpen      = "TEACHERSDAY_OPEN"
)

type Config struct {
	Addr       string
	ImagesDir  string
	RosterFile string
	LogLevel   string
	LogFormat  string
	// Format is the CLI output format (json|edn).
	Format string
	Open   bool
}

func Defaults() Config {
	return Config{
		Addr:      "127.0.0.1:8501",
		ImagesDir: "images",
		LogLevel:  "info",
		LogFormat: "console",
		Format:    "json",
	}
}

// Load reads .env files (missing files are fine) and then the environment.
// Variables already set in the process win over .env entries.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...)
	return FromEnv()
}

// FromEnv overlays TEACHERSDAY_* variables on Defaults().
func FromEnv() Config {
	cfg := Defaults()
	cfg.Addr = firstNonEmpty(os.Getenv(EnvAddr), cfg.Addr)
	cfg.ImagesDir = firstNonEmpty(os.Getenv(EnvImagesDir), cfg.ImagesDir)
	cfg.RosterFile = firstNonEmpty(os.Getenv(EnvRoster), cfg.RosterFile)
	cfg.LogLevel = firstNonEmpty(os.Getenv(EnvLogLevel), cfg.LogLevel)
	cfg.LogFormat = firstNonEmpty(os.Getenv(EnvLogFormat), cfg.LogFormat)
	cfg.Format = firstNonEmpty(os.Getenv(EnvFormat), cfg.Format)
	if raw := strings.TrimSpace(os.Getenv(EnvOpen)); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Open = v
		}
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
