// Package logger builds the slog.Logger used across the Contexta backend.
//
// New assembles a handler chain from options: JSON or text output, a level,
// static attributes (service name), and optional context extractors that
// inject request-scoped attributes at log time via a decorator handler.
// Defaults are production-safe (JSON, info level, stdout).
package logger
