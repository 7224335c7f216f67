package docs

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// Front matter keys understood by discovery.
const (
	KeyPermalink    = "permalink"
	KeyTitle        = "title"
	KeyRedirectFrom = "redirect_from"
	KeyRedirectTo   = "redirect_to"
)

// Document is a source page that may declare redirects in its front matter.
type Document struct {
	// Path is the slash-separated path relative to the site source.
	Path  string
	Title string
	// RedirectFrom lists old paths that should forward to this document.
	RedirectFrom []string
	// RedirectTo, when set, forwards this document's own URL elsewhere.
	RedirectTo string

	url  string
	site redirect.Site
}

// NewDocument creates a document for relPath on site. An empty permalink
// derives the URL from the file path.
func NewDocument(site redirect.Site, relPath, permalink string) *Document {
	relPath = path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	return &Document{
		Path: relPath,
		url:  documentURL(relPath, permalink),
		site: site,
	}
}

// URL returns the site-relative URL the document is served at.
func (d *Document) URL() string { return d.url }

// Site returns the owning site.
func (d *Document) Site() redirect.Site { return d.site }

// HasRedirects reports whether the document declares any redirect.
func (d *Document) HasRedirects() bool {
	return len(d.RedirectFrom) > 0 || d.RedirectTo != ""
}

// documentURL maps a source path to its output URL: index pages own their
// directory, everything else becomes name.html.
func documentURL(relPath, permalink string) string {
	if permalink != "" {
		return redirect.NormalizePath(permalink)
	}
	dir, file := path.Split(relPath)
	name := strings.TrimSuffix(file, path.Ext(file))
	if name == "index" {
		return "/" + dir
	}
	return "/" + dir + name + ".html"
}
