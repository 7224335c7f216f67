package config

import (
	"runtime"

	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles site defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Source == "" {
		cfg.Site.Source = "."
	}
	if cfg.Site.Destination == "" {
		cfg.Site.Destination = "_site"
	}
	return nil
}

// RedirectsDefaultApplier handles target resolution defaults.
type RedirectsDefaultApplier struct{}

func (RedirectsDefaultApplier) Domain() string { return "redirects" }

func (RedirectsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Redirects.ProductionHost == "" {
		cfg.Redirects.ProductionHost = redirect.DefaultProductionHost
	}
	if cfg.Redirects.DevelopmentOrigin == "" {
		cfg.Redirects.DevelopmentOrigin = redirect.DefaultDevelopmentOrigin
	}
	return nil
}

// BuildDefaultApplier handles build defaults.
type BuildDefaultApplier struct{}

func (BuildDefaultApplier) Domain() string { return "build" }

func (BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Build.Concurrency <= 0 {
		cfg.Build.Concurrency = min(runtime.NumCPU(), 8)
	}
	return nil
}

var defaultAppliers = []DefaultApplier{
	SiteDefaultApplier{},
	RedirectsDefaultApplier{},
	BuildDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
