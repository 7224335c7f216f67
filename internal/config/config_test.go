package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redirectgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "site:\n  url: https://software.hifis.net\n"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Site.Source)
	assert.Equal(t, "_site", cfg.Site.Destination)
	assert.Equal(t, redirect.DefaultProductionHost, cfg.Redirects.ProductionHost)
	assert.Equal(t, redirect.DefaultDevelopmentOrigin, cfg.Redirects.DevelopmentOrigin)
	assert.True(t, cfg.Redirects.ManifestEnabled())
	assert.Positive(t, cfg.Build.Concurrency)
	assert.Equal(t, redirect.DefaultConfig(), cfg.RedirectConfig())
}

func TestLoad_FullFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
site:
  url: https://docs.example.org
  baseurl: /handbook
  source: content
  destination: public
redirects:
  production_host: docs.example.org
  development_origin: http://127.0.0.1:1313
  manifest: false
  static:
    - from: /old/
      to: /new/
      title: New
build:
  concurrency: 3
metrics:
  textfile: /tmp/redirectgen.prom
`))
	require.NoError(t, err)

	assert.Equal(t, "/handbook", cfg.Site.BaseURL)
	assert.Equal(t, "content", cfg.SiteOptions().Source)
	assert.Equal(t, "docs.example.org", cfg.RedirectConfig().ProductionHost)
	assert.False(t, cfg.Redirects.ManifestEnabled())
	require.Len(t, cfg.Redirects.Static, 1)
	assert.Equal(t, StaticRedirect{From: "/old/", To: "/new/", Title: "New"}, cfg.Redirects.Static[0])
	assert.Equal(t, 3, cfg.Build.Concurrency)
	assert.Equal(t, "/tmp/redirectgen.prom", cfg.Metrics.Textfile)
}

func TestLoad_EnvExpansionAndOverrides(t *testing.T) {
	t.Setenv("DOCS_HOST", "docs.example.org")
	t.Setenv(EnvDevelopmentOrigin, "http://localhost:8080")

	cfg, err := Load(writeConfig(t, "site:\n  url: https://${DOCS_HOST}\nredirects:\n  development_origin: http://localhost:4000\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.org", cfg.Site.URL)
	assert.Equal(t, "http://localhost:8080", cfg.Redirects.DevelopmentOrigin)

	t.Setenv(EnvProductionHost, "www.example.org")
	t.Setenv(EnvSiteURL, "https://www.example.org")
	cfg, err = Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "www.example.org", cfg.Redirects.ProductionHost)
	assert.Equal(t, "https://www.example.org", cfg.Site.URL)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = Load(writeConfig(t, "site: [not a map\n"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative site url", func(c *Config) { c.Site.URL = "software.hifis.net" }},
		{"origin without scheme", func(c *Config) { c.Redirects.DevelopmentOrigin = "localhost:4000" }},
		{"origin with path", func(c *Config) { c.Redirects.DevelopmentOrigin = "http://localhost:4000/site" }},
		{"production host with path", func(c *Config) { c.Redirects.ProductionHost = "example.org/docs" }},
		{"destination equals source", func(c *Config) { c.Site.Source = "site"; c.Site.Destination = "./site" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
		})
	}

	ok := Default()
	ok.Redirects.ProductionHost = "https://software.hifis.net/"
	ok.Redirects.DevelopmentOrigin = "http://localhost:4000/"
	ok.Redirects.Static = []StaticRedirect{{From: "/a"}}
	require.NoError(t, Validate(ok))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://software.hifis.net", cfg.Site.URL)
	require.Len(t, cfg.Redirects.Static, 1)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	require.NoError(t, Init(path, true))
}
