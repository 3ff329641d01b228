// Package logging builds the log/slog loggers used by the parameter service
// and its command line tool. Loggers write JSON by default; the CLI can ask
// for the text format when a person reads the output.
package logging
