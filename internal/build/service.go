package build

import (
	"time"

	"git.home.luguber.info/inful/redirectgen/internal/redirect"
)

// Status is the overall outcome of a run.
type Status string

const (
	StatusSuccess Status = "success"
	// StatusPartial means at least one page failed but the rest were written.
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Request holds the per-run inputs.
type Request struct {
	// Destination overrides the configured output directory when set.
	Destination string
	// DryRun builds and reports records without writing files.
	DryRun bool
}

// Failure records a redirect that could not be generated.
type Failure struct {
	// Source is the document path, or "config" for static redirects.
	Source string
	From   string
	To     string
	Err    error
}

// Result summarises a run.
type Result struct {
	BuildID string
	Status  Status
	// Records are the pages that were (or, in dry runs, would be) written, in definition order.
	Records          []redirect.Record
	Duplicates       int
	Malformed        int
	SkippedDocuments int
	Failures         []Failure
	ManifestPath     string
	Duration         time.Duration
}

// Generated returns the number of pages produced.
func (r *Result) Generated() int {
	return len(r.Records)
}
