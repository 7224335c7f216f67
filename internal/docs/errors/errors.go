// Package errors provides sentinel errors for source document discovery.
package errors

import "errors"

var (
	// ErrSourceNotFound indicates the configured source directory does not exist.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrDirWalkFailed indicates filesystem traversal of the source directory failed.
	ErrDirWalkFailed = errors.New("source directory walk failed")

	// ErrFileReadFailed indicates reading a source document failed.
	ErrFileReadFailed = errors.New("source document read failed")

	// ErrFrontMatterInvalid indicates a document's front matter could not be parsed
	// or carried redirect fields of the wrong type.
	ErrFrontMatterInvalid = errors.New("invalid front matter")
)
