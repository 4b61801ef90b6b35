package logging

import "log/slog"

// Canonical log field names.
const (
	KeyClass    = "class"
	KeyMethod   = "method"
	KeyPath     = "path"
	KeyError    = "error"
	KeyWarnings = "warnings"
	KeyWorkers  = "workers"
)

func Class(name string) slog.Attr  { return slog.String(KeyClass, name) }
func Method(name string) slog.Attr { return slog.String(KeyMethod, name) }
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func Warnings(n int) slog.Attr     { return slog.Int(KeyWarnings, n) }
func Workers(n int) slog.Attr      { return slog.Int(KeyWorkers, n) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
