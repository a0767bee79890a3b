package search

import "log"

// Logger is the minimal diagnostic sink the branch-and-prune driver writes
// progress lines to (nodes found empty, and solutions with their proof
// certificate and depth). Callers that don't want output pass NopLogger{}; StdLogger
// adapts the standard library's *log.Logger.
type Logger interface {
	Logf(format string, args ...any)
}

// NopLogger discards every message; the driver's default when no Logger
// is configured.
type NopLogger struct{}

func (NopLogger) Logf(string, ...any) {}

// StdLogger adapts *log.Logger to the Logger interface.
type StdLogger struct{ *log.Logger }

func (s StdLogger) Logf(format string, args ...any) { s.Printf(format, args...) }
