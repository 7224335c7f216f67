package config

import (
	"net/url"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
)

// Validate checks the configuration for values that would make every page fail.
// Individual static redirects are checked per page at generation time so one
// bad entry does not stop the run.
func Validate(cfg *Config) error {
	if cfg.Site.URL != "" {
		if u, err := url.Parse(cfg.Site.URL); err != nil || u.Scheme == "" || u.Host == "" {
			return ferrors.ConfigError("site.url must be an absolute URL").
				WithContext("url", cfg.Site.URL).
				Build()
		}
	}

	origin, err := url.Parse(strings.TrimSpace(cfg.Redirects.DevelopmentOrigin))
	if err != nil || (origin.Scheme != "http" && origin.Scheme != "https") || origin.Host == "" {
		return ferrors.ConfigError("redirects.development_origin must be an http(s) origin").
			WithContext("development_origin", cfg.Redirects.DevelopmentOrigin).
			Build()
	}
	if strings.Trim(origin.Path, "/") != "" || origin.RawQuery != "" || origin.Fragment != "" {
		return ferrors.ConfigError("redirects.development_origin must not carry a path, query or fragment").
			WithContext("development_origin", cfg.Redirects.DevelopmentOrigin).
			Build()
	}

	host := strings.TrimSuffix(strings.TrimSpace(cfg.Redirects.ProductionHost), "/")
	if !strings.Contains(host, "://") && strings.ContainsAny(host, " /?#") {
		return ferrors.ConfigError("redirects.production_host must be a host name or URL").
			WithContext("production_host", cfg.Redirects.ProductionHost).
			Build()
	}

	src, srcErr := filepath.Abs(cfg.Site.Source)
	dst, dstErr := filepath.Abs(cfg.Site.Destination)
	if srcErr == nil && dstErr == nil && src == dst {
		return ferrors.ConfigError("site.destination must differ from site.source").
			WithContext("destination", cfg.Site.Destination).
			Build()
	}

	return nil
}
