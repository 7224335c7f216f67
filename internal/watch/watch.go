// Package watch triggers regeneration when files under the site source change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/redirectgen/internal/docs"
	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a directory tree recursively.
type Watcher struct {
	root     string
	ignored  []string
	debounce time.Duration
	logger   *slog.Logger
	fs       *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithIgnore excludes directories (typically the destination) from watching.
func WithIgnore(dirs ...string) Option {
	return func(w *Watcher) {
		for _, dir := range dirs {
			if abs, err := filepath.Abs(dir); err == nil {
				w.ignored = append(w.ignored, filepath.Clean(abs))
			}
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts watching root and every directory below it.
func New(root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "resolve watch root").Build()
	}
	w := &Watcher{root: abs, debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}

	w.fs, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "create file watcher").Build()
	}
	if err := w.addDirsRecursive(abs); err != nil {
		_ = w.fs.Close()
		return nil, err
	}
	return w, nil
}

// Run calls rebuild after each burst of changes until ctx is done. Rebuilds
// never overlap; changes made during a rebuild schedule one more.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context)) error {
	defer func() { _ = w.fs.Close() }()

	rebuildReq, trigger, stop := newDebouncer(w.debounce)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev, trigger)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		case <-rebuildReq:
			w.logger.Info("Change detected; regenerating redirects")
			rebuild(ctx)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) || w.isIgnored(ev.Name) || w.underIgnoredDir(ev.Name) {
		return
	}
	if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
		if docs.IgnoredDir(fi.Name()) {
			return
		}
		if ev.Has(fsnotify.Create) {
			_ = w.addDirsRecursive(ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return ferrors.WrapError(err, ferrors.CategoryFileSystem, "watch directory").
					WithContext("path", path).
					Build()
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (docs.IgnoredDir(d.Name()) || w.isIgnored(path)) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func (w *Watcher) isIgnored(path string) bool {
	path = filepath.Clean(path)
	for _, dir := range w.ignored {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// underIgnoredDir reports whether path lies inside a directory that document
// discovery never scans.
func (w *Watcher) underIgnoredDir(path string) bool {
	rel, err := filepath.Rel(w.root, filepath.Clean(path))
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for _, dir := range parts[:len(parts)-1] {
		if docs.IgnoredDir(dir) {
			return true
		}
	}
	return false
}

// newDebouncer returns a channel that fires once per burst of trigger calls.
func newDebouncer(delay time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	req := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case req <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return req, trigger, stop
}

// shouldIgnoreEvent reports editor temp files and other noise.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
