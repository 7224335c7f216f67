package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	derrors "git.home.luguber.info/inful/redirectgen/internal/docs/errors"
	"git.home.luguber.info/inful/redirectgen/internal/frontmatter"
	"git.home.luguber.info/inful/redirectgen/internal/logfields"
	"git.home.luguber.info/inful/redirectgen/internal/markdown"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// SkippedFile records a source file that could not be turned into a Document.
type SkippedFile struct {
	Path string
	Err  error
}

// Result is the outcome of a discovery run.
type Result struct {
	Documents []*Document
	Skipped   []SkippedFile
}

// Discovery finds documents with redirect front matter beneath the site source.
type Discovery struct {
	site    redirect.Site
	exclude map[string]struct{}
	logger  *slog.Logger
}

// Option configures Discovery.
type Option func(*Discovery)

// WithExclude skips the given directories (absolute or relative to the source).
func WithExclude(dirs ...string) Option {
	return func(d *Discovery) {
		for _, dir := range dirs {
			if dir == "" {
				continue
			}
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(d.site.SourceRoot(), dir)
			}
			if abs, err := filepath.Abs(dir); err == nil {
				dir = abs
			}
			d.exclude[filepath.Clean(dir)] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(d *Discovery) {
		d.logger = l
	}
}

// NewDiscovery creates a Discovery rooted at site.SourceRoot().
func NewDiscovery(site redirect.Site, opts ...Option) *Discovery {
	d := &Discovery{
		site:    site,
		exclude: make(map[string]struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover walks the source directory. Files whose front matter cannot be
// read are reported in Result.Skipped and do not fail the walk.
func (d *Discovery) Discover(ctx context.Context) (*Result, error) {
	root, err := filepath.Abs(d.site.SourceRoot())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrSourceNotFound, err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrSourceNotFound, root)
	}

	result := &Result{}
	err = filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if entry.IsDir() {
			if p != root && d.skipDir(p, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isPageFile(entry.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		doc, err := d.load(p, rel)
		if err != nil {
			d.logger.Warn("Skipping document", logfields.Document(rel), logfields.Error(err))
			result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Err: err})
			return nil
		}
		if doc == nil {
			return nil
		}
		d.logger.Debug("Discovered document", logfields.Document(rel), slog.String("url", doc.URL()),
			slog.Int("redirect_from", len(doc.RedirectFrom)), slog.Bool("redirect_to", doc.RedirectTo != ""))
		result.Documents = append(result.Documents, doc)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDirWalkFailed, root, err)
	}

	sort.Slice(result.Documents, func(i, j int) bool {
		return result.Documents[i].Path < result.Documents[j].Path
	})
	d.logger.Info("Documents discovered", slog.Int("count", len(result.Documents)), slog.Int("skipped", len(result.Skipped)))
	return result, nil
}

// load parses one file. Files without front matter are not pages and yield nil.
func (d *Discovery) load(fullPath, rel string) (*Document, error) {
	// #nosec G304 -- fullPath comes from walking the configured source root.
	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFileReadFailed, err)
	}

	fm, body, had, err := frontmatter.Split(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFrontMatterInvalid, err)
	}
	if !had {
		return nil, nil
	}

	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFrontMatterInvalid, err)
	}

	permalink, err := fields.String(KeyPermalink)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFrontMatterInvalid, err)
	}
	doc := NewDocument(d.site, rel, permalink)

	if doc.Title, err = fields.String(KeyTitle); err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFrontMatterInvalid, err)
	}
	if doc.Title == "" && isMarkdownFile(rel) {
		doc.Title = markdown.Title(body)
	}

	if doc.RedirectFrom, err = fields.StringList(KeyRedirectFrom); err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFrontMatterInvalid, err)
	}
	targets, err := fields.StringList(KeyRedirectTo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", derrors.ErrFrontMatterInvalid, err)
	}
	if len(targets) > 0 {
		doc.RedirectTo = targets[0]
	}
	return doc, nil
}

// IgnoredDir reports whether a directory with this name is never scanned for
// documents: underscore and dot directories, node_modules and vendor.
func IgnoredDir(name string) bool {
	if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
		return true
	}
	return name == "node_modules" || name == "vendor"
}

func (d *Discovery) skipDir(fullPath, name string) bool {
	if IgnoredDir(name) {
		return true
	}
	_, excluded := d.exclude[filepath.Clean(fullPath)]
	return excluded
}

func isPageFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm" || isMarkdownFile(name)
}

func isMarkdownFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown" || ext == ".mdown" || ext == ".mkd"
}
