package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

var _ redirect.Site = (*Site)(nil)

func TestAbsolutize(t *testing.T) {
	s, err := New(Config{URL: "https://software.hifis.net/", BaseURL: "docs/", Source: "/src"})
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"/guide/", "https://software.hifis.net/docs/guide/"},
		{"guide.html", "https://software.hifis.net/docs/guide.html"},
		{"", "https://software.hifis.net/docs/"},
		{"https://example.com/x", "https://example.com/x"},
		{"//software.hifis.net/x", "https://software.hifis.net/x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Absolutize(tt.in), "input %q", tt.in)
	}
	assert.Equal(t, "/src", s.SourceRoot())
}

func TestAbsolutize_NoSiteURL(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, "/guide/", s.Absolutize("guide/"))
	assert.Equal(t, "https://cdn.example.com/a", s.Absolutize("//cdn.example.com/a"))
}

func TestAbsolutize_KeepsSiteScheme(t *testing.T) {
	s, err := New(Config{URL: "http://localhost:4000"})
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.com/a", s.Absolutize("//cdn.example.com/a"))
}

func TestRelativeURL(t *testing.T) {
	s, err := New(Config{BaseURL: "/project"})
	require.NoError(t, err)
	assert.Equal(t, "/project/a/b/", s.RelativeURL("a/b/"))
	assert.Equal(t, "/project", s.BaseURL())
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New(Config{URL: "software.hifis.net"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}
