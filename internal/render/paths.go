package render

import (
	"net/url"
	"path/filepath"
	"strings"
)

// DestinationPath maps a permalink to a file path relative to the site
// destination: directory permalinks get index.html and extensionless ones
// get a .html suffix.
func DestinationPath(permalink string) string {
	p := permalink
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimPrefix(p, "/")

	switch {
	case p == "" || strings.HasSuffix(p, "/"):
		p += "index.html"
	case !strings.HasSuffix(p, ".html") && !strings.HasSuffix(p, ".htm"):
		p += ".html"
	}
	return filepath.FromSlash(p)
}
