package redirect

// DefaultLayout is the layout name rendering stages use for redirect pages.
const DefaultLayout = "redirect"

// Record is a resolved redirect page. It has no body of its own; the
// rendering stage turns it into an HTML document or server rule.
type Record struct {
	// Permalink is the site-relative path the page is served at. Always starts with "/".
	Permalink string
	// RedirectFrom mirrors Permalink for templates.
	RedirectFrom string
	// RedirectTo is the resolved destination URL or path.
	RedirectTo string
	// Branch records which resolution rule produced RedirectTo.
	Branch Branch

	Content string
	Output  string
	Layout  string
	// Sitemap is always false; redirect pages are excluded from sitemaps.
	Sitemap bool
}

// NormalizePath ensures path starts with exactly one leading slash.
func NormalizePath(path string) string {
	if path == "" || path[0] != '/' {
		return "/" + path
	}
	return path
}
