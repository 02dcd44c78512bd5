// Package logging constructs slog loggers for the CLI and library code.
// Library packages accept a *slog.Logger and tolerate nil by falling back
// to the no-op logger from NewNop.
package logging
