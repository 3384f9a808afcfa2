package logger

import (
	"log/slog"
	"strings"
)

// Attribute keys that carry stored map values.
const (
	ValueKey    = "value"
	OldValueKey = "old_value"
)

// Key patterns that are always redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
	"bearer",
}

const redactedValue = "***REDACTED***"

// redact masks secrets always, and map values when redactValues is set.
func redact(a slog.Attr, redactValues bool) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redact(attr, redactValues)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}
	s := a.Value.String()
	if s == "" {
		return a
	}

	if redactValues && (a.Key == ValueKey || a.Key == OldValueKey) {
		return slog.String(a.Key, MaskValue(s))
	}
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, redactedValue)
	}
	return a
}

// MaskValue keeps the first and last character of long values and hides
// the rest; short values are hidden entirely.
func MaskValue(value string) string {
	if len(value) <= 6 {
		return "***"
	}
	return value[:1] + "***" + value[len(value)-1:]
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
