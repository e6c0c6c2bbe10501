// Package logging assembles structured slog loggers and formatting helpers used
// across ytdlx.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so resolver and runner code can
// tag log lines with correlation IDs and queries. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
