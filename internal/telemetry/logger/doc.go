// Package logger provides structured logging for triemap.
//
//   - logger.go: slog-backed Logger, level control, default logger
//   - context.go: session ID propagation through context
//   - redact.go: secret and value redaction
//
// Output is text by default and JSON on request. Map operations log the
// key under "key" and the stored value under "value"/"old_value"; the
// latter two are masked when Config.RedactValues is set.
package logger
