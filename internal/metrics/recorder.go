package metrics

import "time"

// ResultLabel enumerates per-page outcomes.
type ResultLabel string

const (
	ResultGenerated ResultLabel = "generated"
	ResultDuplicate ResultLabel = "duplicate"
	ResultSkipped   ResultLabel = "skipped"
	ResultFailed    ResultLabel = "failed"
)

// Recorder defines observability hooks for redirect generation.
type Recorder interface {
	IncResolution(branch string)
	IncMalformedTarget()
	IncPageResult(result ResultLabel)
	ObserveRunDuration(d time.Duration)
	SetRedirects(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncResolution(string)         {}
func (NoopRecorder) IncMalformedTarget()          {}
func (NoopRecorder) IncPageResult(ResultLabel)    {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) SetRedirects(int)             {}
