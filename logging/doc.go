// Package logging defines the structured Logger used across revmatch and two
// implementations of it: SlogLogger, backed by log/slog, and NopLogger, which
// discards everything.
//
// The interface is intentionally narrow (Debug/Info/Warn/Error with key-value
// pairs) so that zap's SugaredLogger and similar loggers satisfy it directly.
package logging
