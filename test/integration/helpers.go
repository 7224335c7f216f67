package integration

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// PageStructure is the golden view of one generated redirect page.
type PageStructure struct {
	Title     string `json:"title"`
	Canonical string `json:"canonical"`
}

// SiteStructure is the golden view of a destination directory.
type SiteStructure struct {
	Pages map[string]PageStructure `json:"pages"`
}

// collectStructure parses every HTML page below dest.
func collectStructure(t *testing.T, dest string) SiteStructure {
	t.Helper()

	out := SiteStructure{Pages: map[string]PageStructure{}}
	err := filepath.WalkDir(dest, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := html.Parse(bytes.NewReader(data))
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dest, path)
		if err != nil {
			return err
		}
		out.Pages[filepath.ToSlash(rel)] = pageStructure(doc)
		return nil
	})
	require.NoError(t, err)
	return out
}

func pageStructure(n *html.Node) PageStructure {
	var page PageStructure
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil {
					page.Title = n.FirstChild.Data
				}
			case "link":
				if attr(n, "rel") == "canonical" {
					page.Canonical = attr(n, "href")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return page
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// compareGolden decodes both JSON documents into the type of want and
// compares them. With update set, got is written to goldenPath instead.
func compareGolden[T any](t *testing.T, goldenPath string, got T, update bool) {
	t.Helper()

	if update {
		data, err := json.MarshalIndent(got, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(goldenPath, append(data, '\n'), 0o600))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "golden file missing; run with -update-golden")
	var want T
	require.NoError(t, json.Unmarshal(data, &want))
	require.Equal(t, want, got)
}
