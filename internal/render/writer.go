package render

import (
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/redirectgen/internal/foundation/errors"
)

// WriteFile writes data to relativePath beneath destDir, creating parent
// directories. Paths that would escape destDir are rejected. Existing files
// are replaced so repeated builds converge.
func WriteFile(destDir, relativePath string, data []byte) (string, error) {
	if destDir == "" {
		return "", ferrors.ValidationError("destination directory is required").Build()
	}
	if relativePath == "" {
		return "", ferrors.ValidationError("output path is required").Build()
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", ferrors.ValidationError("output path must stay inside the destination").
			WithContext("path", relativePath).
			Build()
	}

	fullPath := filepath.Join(destDir, cleanRel)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "create output directory").
			WithContext("path", fullPath).
			Build()
	}

	// #nosec G306 -- generated site output is meant to be world readable.
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "write output file").
			WithContext("path", fullPath).
			Build()
	}
	return fullPath, nil
}
