package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyTarget     = "target"
	KeyLabel      = "label"
	KeyNavPath    = "nav_path"
	KeyConfigPath = "config_path"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyOp         = "op"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Target(t string) slog.Attr          { return slog.String(KeyTarget, t) }
func Label(l string) slog.Attr           { return slog.String(KeyLabel, l) }
func ConfigPath(p string) slog.Attr      { return slog.String(KeyConfigPath, p) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Op(op string) slog.Attr             { return slog.String(KeyOp, op) }
func NavPath(labels []string) slog.Attr  { return slog.Any(KeyNavPath, labels) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
