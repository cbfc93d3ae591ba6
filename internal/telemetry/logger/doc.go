// Package logger provides structured logging for bucketmap.
//
// It wraps log/slog behind a small Logger interface:
//
//   - logger.go: handler construction, level control, package default
//   - context.go: context propagation of the logger and run ID
//   - truncate.go: clamps oversized attribute values
//
// The htable package logs lifecycle events (creation, Clear) at debug
// level through this interface; the CLI configures it from the loaded
// configuration.
package logger
