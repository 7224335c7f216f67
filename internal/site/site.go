// Package site models the static site that redirect pages are generated for.
package site

import (
	"net/url"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Config describes where the site lives and how it is addressed.
type Config struct {
	// URL is the scheme and host of the deployed site, e.g. https://software.hifis.net.
	URL string
	// BaseURL is the path prefix the site is served under, e.g. /docs.
	BaseURL string
	// Source is the directory content is read from.
	Source string
}

// Site turns site-relative paths into URLs.
type Site struct {
	url     string
	scheme  string
	baseURL string
	source  string
}

// New validates cfg and returns a Site.
func New(cfg Config) (*Site, error) {
	s := &Site{
		url:     strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		scheme:  "https",
		baseURL: sanitizeBaseURL(cfg.BaseURL),
		source:  cfg.Source,
	}
	if s.url != "" {
		u, err := url.Parse(s.url)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, ferrors.ConfigError("site url must be an absolute URL").
				WithContext("url", cfg.URL).
				WithCause(err).
				Build()
		}
		s.scheme = u.Scheme
	}
	return s, nil
}

// SourceRoot returns the directory the site is built from.
func (s *Site) SourceRoot() string {
	return s.source
}

// URL returns the configured site URL without a trailing slash.
func (s *Site) URL() string {
	return s.url
}

// BaseURL returns the sanitized base path ("" or "/prefix").
func (s *Site) BaseURL() string {
	return s.baseURL
}

// RelativeURL prefixes path with the base URL.
func (s *Site) RelativeURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// Absolutize returns the fully qualified URL for path. URLs that already
// carry a scheme are returned unchanged and protocol-relative URLs adopt the
// site's scheme. Without a site URL the base-relative path is returned.
func (s *Site) Absolutize(path string) string {
	switch {
	case schemePattern.MatchString(path):
		return path
	case strings.HasPrefix(path, "//"):
		return s.scheme + ":" + path
	}
	return s.url + s.RelativeURL(path)
}

func sanitizeBaseURL(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}
