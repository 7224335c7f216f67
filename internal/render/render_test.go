package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// pageAttrs collects attribute values of interest from a rendered page.
func pageAttrs(t *testing.T, page []byte) map[string]string {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	require.NoError(t, err)

	out := map[string]string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			attrs := map[string]string{}
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			switch n.Data {
			case "link":
				if attrs["rel"] == "canonical" {
					out["canonical"] = attrs["href"]
				}
			case "meta":
				if attrs["http-equiv"] == "refresh" {
					out["refresh"] = attrs["content"]
				}
				if attrs["name"] == "robots" {
					out["robots"] = attrs["content"]
				}
			case "a":
				out["link"] = attrs["href"]
			case "title":
				if n.FirstChild != nil {
					out["title"] = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestPage(t *testing.T) {
	rec := redirect.Record{Permalink: "/old/", RedirectFrom: "/old/", RedirectTo: "http://localhost:4000/new/?a=1&b=2"}

	page, err := Page(rec, "New Page")
	require.NoError(t, err)

	attrs := pageAttrs(t, page)
	assert.Equal(t, "New Page", attrs["title"])
	assert.Equal(t, "http://localhost:4000/new/?a=1&b=2", attrs["canonical"])
	assert.Equal(t, "http://localhost:4000/new/?a=1&b=2", attrs["link"])
	assert.Equal(t, "0; url=http://localhost:4000/new/?a=1&b=2", attrs["refresh"])
	assert.Equal(t, "noindex", attrs["robots"])
	assert.Contains(t, string(page), "<script>location=")
}

func TestPage_DefaultTitleAndEscaping(t *testing.T) {
	rec := redirect.Record{RedirectTo: `http://localhost:4000/"><script>alert(1)</script>`}

	page, err := Page(rec, "")
	require.NoError(t, err)
	assert.NotContains(t, string(page), "<script>alert(1)</script>")
	assert.Equal(t, DefaultTitle, pageAttrs(t, page)["title"])
}

func TestDestinationPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "index.html"},
		{"/old/", "old/index.html"},
		{"/old/page", "old/page.html"},
		{"/old/page.html", "old/page.html"},
		{"/legacy.htm", "legacy.htm"},
		{"/with%20space/", "with space/index.html"},
		{"/q?x=1", "q.html"},
	}
	for _, tt := range tests {
		assert.Equal(t, filepath.FromSlash(tt.want), DestinationPath(tt.in), "permalink %q", tt.in)
	}
}

func TestWriteFile(t *testing.T) {
	dest := t.TempDir()

	full, err := WriteFile(dest, filepath.Join("a", "b", "index.html"), []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "a", "b", "index.html"), full)

	_, err = WriteFile(dest, filepath.Join("a", "b", "index.html"), []byte("two"))
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestWriteFile_RejectsEscapes(t *testing.T) {
	dest := t.TempDir()
	for _, rel := range []string{"", "..", filepath.Join("..", "x.html"), filepath.Join("a", "..", "..", "x.html")} {
		_, err := WriteFile(dest, rel, []byte("x"))
		require.Error(t, err, "rel %q", rel)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	}
	_, err := WriteFile("", "a.html", nil)
	require.Error(t, err)
}

func TestManifest(t *testing.T) {
	data, err := Manifest([]redirect.Record{
		{RedirectFrom: "/z", RedirectTo: "http://localhost:4000/z2"},
		{RedirectFrom: "/a", RedirectTo: "https://example.com/"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
	assert.Less(t, strings.Index(string(data), `"/a"`), strings.Index(string(data), `"/z"`))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "https://example.com/", decoded["/a"])
}
