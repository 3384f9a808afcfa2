package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newJSON(t *testing.T, level string, buf *bytes.Buffer) Logger {
	t.Helper()
	l, err := New(Config{Level: level, Format: "json", Output: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"default config", DefaultConfig(), ""},
		{"json format", Config{Level: "debug", Format: "json"}, ""},
		{"empty config", Config{}, ""},
		{"unknown format", Config{Level: "info", Format: "console"}, `unknown format "console"`},
		{"unknown level", Config{Level: "trace"}, `unknown level "trace"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("New() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(t, "debug", &buf)

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("set", "key", "cat")

			entry := decode(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["key"] != "cat" {
				t.Errorf("key = %v, want cat", entry["key"])
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(t, "info", &buf)

	l.With("component", "repl").Info("started")

	if got := decode(t, &buf)["component"]; got != "repl" {
		t.Errorf("component = %v, want repl", got)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newJSON(t, "error", &buf)

	l.Info("filtered")
	if buf.Len() > 0 {
		t.Error("Info should be filtered at error level")
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	l.Info("visible")
	if buf.Len() == 0 {
		t.Error("Info should be logged after level changed to debug")
	}
	if got := Level(); got != "debug" {
		t.Errorf("Level() = %q, want debug", got)
	}

	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel(loud) should fail")
	}
	if got := Level(); got != "debug" {
		t.Errorf("Level() = %q after bad SetLevel, want debug", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"Error", slog.LevelError, false},
		{"", slog.LevelInfo, false},
		{"invalid", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(newJSON(t, "debug", &buf))
	defer SetDefault(prev)

	Default().Warn("message")
	if buf.Len() == 0 {
		t.Error("Default() did not return the logger passed to SetDefault")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("loaded", "entries", 37)

	out := buf.String()
	if !strings.Contains(out, "loaded") || !strings.Contains(out, "entries=37") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic or write anywhere.
	Discard().With("a", 1).Error("dropped")
}
