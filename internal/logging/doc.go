// Package logging wraps log/slog with the handlers and typed attribute
// helpers used across cadence.
//
// Loggers are constructed once from configuration and injected; packages
// never log through globals. The console handler renders compact
// human-readable lines, the json handler emits one object per line for
// machine consumption. Tests use NewNop.
package logging
