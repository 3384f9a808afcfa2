package logger

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name         string
		attr         slog.Attr
		redactValues bool
		want         string
	}{
		{"map key untouched", slog.String("key", "tiger"), true, "tiger"},
		{"value kept by default", slog.String(ValueKey, "TIGER-STRIPES"), false, "TIGER-STRIPES"},
		{"value masked", slog.String(ValueKey, "TIGER-STRIPES"), true, "T***S"},
		{"old value masked", slog.String(OldValueKey, "short"), true, "***"},
		{"secret always redacted", slog.String("api_secret", "abc"), false, redactedValue},
		{"empty secret kept", slog.String("password", ""), false, ""},
		{"normal attr", slog.String("op", "set"), true, "set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redact(tt.attr, tt.redactValues)
			if got.Value.String() != tt.want {
				t.Errorf("redact() = %q, want %q", got.Value.String(), tt.want)
			}
		})
	}
}

func TestRedact_Group(t *testing.T) {
	a := slog.Group("entry", slog.String(ValueKey, "LONG-VALUE"), slog.Int("len", 10))
	got := redact(a, true).Value.Group()

	if got[0].Value.String() != "L***E" {
		t.Errorf("nested value = %q, want L***E", got[0].Value.String())
	}
	if got[1].Value.Int64() != 10 {
		t.Error("non-string attrs should pass through")
	}
}

func TestLogger_RedactValues(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf, RedactValues: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("set", "key", "vault", ValueKey, "hunter2hunter2")

	entry := decode(t, &buf)
	if entry["key"] != "vault" {
		t.Errorf("key = %v, want vault", entry["key"])
	}
	if entry[ValueKey] != "h***2" {
		t.Errorf("value = %v, want h***2", entry[ValueKey])
	}
}

func TestIsSensitiveKey(t *testing.T) {
	for key, want := range map[string]bool{
		"password":   true,
		"AuthHeader": true,
		"key":        false,
		"value":      false,
	} {
		if got := IsSensitiveKey(key); got != want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", key, got, want)
		}
	}
}
