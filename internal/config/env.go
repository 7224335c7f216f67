package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvProductionHost    = "REDIRECTGEN_PRODUCTION_HOST"
	EnvDevelopmentOrigin = "REDIRECTGEN_DEVELOPMENT_ORIGIN"
	EnvSiteURL           = "REDIRECTGEN_SITE_URL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files that exist. Variables already present in the
// process environment are never overwritten.
func loadEnvFiles() {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load environment file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvProductionHost); v != "" {
		cfg.Redirects.ProductionHost = v
	}
	if v := os.Getenv(EnvDevelopmentOrigin); v != "" {
		cfg.Redirects.DevelopmentOrigin = v
	}
	if v := os.Getenv(EnvSiteURL); v != "" {
		cfg.Site.URL = v
	}
}
