package redirect

import (
	"net/url"
	"strings"
)

const (
	// DefaultProductionHost is the canonical public host of the production deployment.
	DefaultProductionHost = "software.hifis.net"
	// DefaultDevelopmentOrigin is the local preview origin substituted for non-production targets.
	DefaultDevelopmentOrigin = "http://localhost:4000"
)

// Config carries the environment-dependent values used during target resolution.
type Config struct {
	// ProductionHost may be a bare host name, host:port or a URL; only its host name is compared.
	ProductionHost string
	// DevelopmentOrigin is a scheme and authority, e.g. http://localhost:4000.
	DevelopmentOrigin string
}

// DefaultConfig returns the configuration used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		ProductionHost:    DefaultProductionHost,
		DevelopmentOrigin: DefaultDevelopmentOrigin,
	}
}

// normalized fills defaults and reduces both values to their canonical form.
func (c Config) normalized() Config {
	host := strings.TrimSpace(c.ProductionHost)
	if strings.Contains(host, "//") {
		if u, err := url.Parse(host); err == nil && u.Hostname() != "" {
			host = u.Hostname()
		}
	}
	host = authorityHost(strings.TrimSuffix(host, "/"))
	if host == "" {
		host = DefaultProductionHost
	}

	origin := strings.TrimRight(strings.TrimSpace(c.DevelopmentOrigin), "/")
	if origin == "" {
		origin = DefaultDevelopmentOrigin
	}

	return Config{ProductionHost: host, DevelopmentOrigin: origin}
}
