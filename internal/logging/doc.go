// Package logging constructs the slog loggers used across the CLI, with
// console and JSON output formats driven by configuration.
package logging
