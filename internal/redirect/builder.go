package redirect

import (
	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
)

// Site is the static site a redirect page belongs to.
type Site interface {
	// SourceRoot is the directory the site is built from.
	SourceRoot() string
	// Absolutize turns a site-relative path into a fully qualified URL.
	Absolutize(path string) string
}

// Document is a piece of site content that can anchor a redirect.
type Document interface {
	URL() string
	Site() Site
}

// ErrMissingCollaborator is returned when a redirect is requested without a site or document.
var ErrMissingCollaborator = ferrors.ValidationError("redirect requires a site and document").Build()

// MalformedHandler is notified when a target cannot be parsed as a URI.
type MalformedHandler func(target string, err error)

// Option configures a Builder.
type Option func(*Builder)

// WithMalformedHandler registers a callback for targets that fail URI parsing.
// The handler is invoked synchronously and must be safe for concurrent use
// when the builder is shared across goroutines.
func WithMalformedHandler(h MalformedHandler) Option {
	return func(b *Builder) {
		b.onMalformed = h
	}
}

// Builder creates redirect records.
type Builder struct {
	cfg         Config
	onMalformed MalformedHandler
}

// NewBuilder returns a Builder for the given configuration.
func NewBuilder(cfg Config, opts ...Option) *Builder {
	b := &Builder{cfg: cfg.normalized()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config returns the normalized configuration in use.
func (b *Builder) Config() Config {
	return b.cfg
}

// FromPaths builds a record that redirects visitors of from to to.
func (b *Builder) FromPaths(site Site, from, to string) (Record, error) {
	if site == nil {
		return Record{}, ErrMissingCollaborator.WithContext("from", from).WithContext("to", to)
	}

	res, err := b.Resolve(site, to)
	if err != nil {
		return Record{}, err
	}

	from = NormalizePath(from)
	return Record{
		Permalink:    from,
		RedirectFrom: from,
		RedirectTo:   res.Target,
		Branch:       res.Branch,
		Layout:       DefaultLayout,
	}, nil
}

// RedirectFrom builds a record sending visitors of path on to doc.
func (b *Builder) RedirectFrom(doc Document, path string) (Record, error) {
	if doc == nil {
		return Record{}, ErrMissingCollaborator.WithContext("from", path)
	}
	return b.FromPaths(doc.Site(), path, doc.URL())
}

// RedirectTo builds a record sending visitors of doc on to path.
func (b *Builder) RedirectTo(doc Document, path string) (Record, error) {
	if doc == nil {
		return Record{}, ErrMissingCollaborator.WithContext("to", path)
	}
	return b.FromPaths(doc.Site(), doc.URL(), path)
}
