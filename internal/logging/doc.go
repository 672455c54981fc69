// Package logging builds the slog loggers used across Discovery.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for machine consumption. The package also re-exports slog
// attribute constructors so call sites stay terse.
package logging
