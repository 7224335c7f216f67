package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyFrom       = "from"
	KeyTo         = "to"
	KeyBranch     = "branch"
	KeyDocument   = "document"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func From(p string) slog.Attr          { return slog.String(KeyFrom, p) }
func To(target string) slog.Attr       { return slog.String(KeyTo, target) }
func Branch(b string) slog.Attr        { return slog.String(KeyBranch, b) }
func Document(path string) slog.Attr   { return slog.String(KeyDocument, path) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
