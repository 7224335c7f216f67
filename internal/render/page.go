// Package render turns redirect records into files in the site destination.
//
// Records stay plain data; this package is the only place that knows what a
// redirect page looks like on disk.
package render

import (
	"bytes"
	"html/template"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// DefaultTitle is used when the target document has no title.
const DefaultTitle = "Redirecting…"

const redirectLayout = `<!DOCTYPE html>
<html lang="en-US">
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <link rel="canonical" href="{{ .To }}">
  <script>location="{{ .To }}"</script>
  <meta http-equiv="refresh" content="0; url={{ .To }}">
  <meta name="robots" content="noindex">
  <h1>Redirecting&hellip;</h1>
  <a href="{{ .To }}">Click here if you are not redirected.</a>
</html>
`

var pageTemplate = template.Must(template.New(redirect.DefaultLayout).Parse(redirectLayout))

type pageData struct {
	Title string
	From  string
	To    string
}

// Page renders the HTML document for rec.
func Page(rec redirect.Record, title string) ([]byte, error) {
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{Title: title, From: rec.RedirectFrom, To: rec.RedirectTo})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "render redirect page").
			WithContext("permalink", rec.Permalink).
			Build()
	}
	return buf.Bytes(), nil
}
