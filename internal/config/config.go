// Package config loads the redirectgen YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
	"git.home.luguber.info/inful/redirectgen/internal/site"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "redirectgen.yaml"

// Config represents the application configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Redirects RedirectsConfig `yaml:"redirects"`
	Build     BuildConfig     `yaml:"build"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SiteConfig describes the static site.
type SiteConfig struct {
	URL         string `yaml:"url,omitempty"`
	BaseURL     string `yaml:"baseurl,omitempty"`
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// RedirectsConfig controls target resolution and output.
type RedirectsConfig struct {
	ProductionHost    string `yaml:"production_host"`
	DevelopmentOrigin string `yaml:"development_origin"`

	// Manifest toggles writing redirects.json; nil means enabled.
	Manifest *bool            `yaml:"manifest,omitempty"`
	Static   []StaticRedirect `yaml:"static,omitempty"`
}

// StaticRedirect is a redirect declared in configuration instead of front matter.
type StaticRedirect struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Title string `yaml:"title,omitempty"`
}

// BuildConfig tunes the generation run.
type BuildConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// MetricsConfig controls metric export.
type MetricsConfig struct {
	// Textfile, when set, receives the metrics of each run in text exposition format.
	Textfile string `yaml:"textfile,omitempty"`
}

// ManifestEnabled reports whether redirects.json should be written.
func (r RedirectsConfig) ManifestEnabled() bool {
	return r.Manifest == nil || *r.Manifest
}

// RedirectConfig returns the resolution settings for redirect.NewBuilder.
func (c *Config) RedirectConfig() redirect.Config {
	return redirect.Config{
		ProductionHost:    c.Redirects.ProductionHost,
		DevelopmentOrigin: c.Redirects.DevelopmentOrigin,
	}
}

// SiteOptions returns the settings for site.New.
func (c *Config) SiteOptions() site.Config {
	return site.Config{
		URL:     c.Site.URL,
		BaseURL: c.Site.BaseURL,
		Source:  c.Site.Source,
	}
}

// Load reads, expands, defaults and validates the configuration at configPath.
// Environment files are loaded first so ${VAR} references and overrides see them.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse decodes YAML configuration, applies environment overrides and
// defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	applyEnvOverrides(&cfg)
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}

// Init writes a starter configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Site.URL = "https://" + redirect.DefaultProductionHost
	example.Redirects.Static = []StaticRedirect{
		{From: "/old-page/", To: "/new-page/"},
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- configuration contains no secrets.
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
