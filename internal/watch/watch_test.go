package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/site/page.md", false},
		{"/site/.hidden.md", true},
		{"/site/page.md~", true},
		{"/site/.page.md.swp", true},
		{"/site/page.md.swx", true},
		{"/site/#page.md#", true},
		{"/site/Thumbs.db", true},
		{"/site/#notes.md", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shouldIgnoreEvent(tt.path), tt.path)
	}
}

func TestIsIgnored(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "public")
	w := &Watcher{root: root}
	WithIgnore(dest)(w)

	assert.True(t, w.isIgnored(dest))
	assert.True(t, w.isIgnored(filepath.Join(dest, "old", "index.html")))
	assert.False(t, w.isIgnored(filepath.Join(root, "publications.md")))
	assert.False(t, w.isIgnored(root))
}

func TestHandleEvent_SkipsDirectoriesDiscoveryIgnores(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "_drafts"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules"), 0o750))
	w := &Watcher{root: root, logger: slog.Default()}

	var triggered int
	trigger := func() { triggered++ }

	for _, p := range []string{
		filepath.Join(root, "_drafts", "post.md"),
		filepath.Join(root, "node_modules", "pkg", "README.md"),
		filepath.Join(root, "vendor", "x", "page.html"),
		filepath.Join(root, "_drafts"),
		filepath.Join(root, "node_modules"),
	} {
		w.handleEvent(fsnotify.Event{Name: p, Op: fsnotify.Create}, trigger)
	}
	assert.Zero(t, triggered)

	w.handleEvent(fsnotify.Event{Name: filepath.Join(root, "services", "index.md"), Op: fsnotify.Write}, trigger)
	w.handleEvent(fsnotify.Event{Name: filepath.Join(root, "_config.yml"), Op: fsnotify.Write}, trigger)
	assert.Equal(t, 2, triggered)
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestRun_RebuildsOnChange(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "_site")
	require.NoError(t, os.MkdirAll(dest, 0o750))

	w, err := New(root, WithIgnore(dest), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var rebuilds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { rebuilds.Add(1) })
	}()

	require.NoError(t, os.WriteFile(filepath.Join(root, "page.md"), []byte("---\nredirect_from: /a\n---\n"), 0o600))
	require.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	req, trigger, stop := newDebouncer(30 * time.Millisecond)
	defer stop()

	for range 5 {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}
	select {
	case <-req:
		t.Fatal("debouncer fired twice for one burst")
	case <-time.After(100 * time.Millisecond):
	}
}
