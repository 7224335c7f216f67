package render

import (
	"encoding/json"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// ManifestFile is the name of the redirect map written next to the pages.
const ManifestFile = "redirects.json"

// Manifest encodes records as a JSON object mapping source path to target.
// Keys are emitted in sorted order.
func Manifest(records []redirect.Record) ([]byte, error) {
	entries := make(map[string]string, len(records))
	for _, rec := range records {
		entries[rec.RedirectFrom] = rec.RedirectTo
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRender, "encode redirect manifest").Build()
	}
	return append(data, '\n'), nil
}
