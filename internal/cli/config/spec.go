package config

import (
	"fmt"
	"strings"

	"github.com/yndnr/triemap/internal/cli/output"
	"github.com/yndnr/triemap/internal/telemetry/logger"
)

// CLIConfig is the configuration for the triemap command.
type CLIConfig struct {
	Log    LogConfig    `koanf:"log" yaml:"log"`
	Output OutputConfig `koanf:"output" yaml:"output"`
	Repl   ReplConfig   `koanf:"repl" yaml:"repl"`
	Seed   SeedConfig   `koanf:"seed" yaml:"seed"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level        string `koanf:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `koanf:"format" yaml:"format"`               // text, json
	RedactValues bool   `koanf:"redact_values" yaml:"redact_values"` // mask stored values in logs
}

// OutputConfig controls result rendering on stdout.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format"` // table, json, yaml
	Wide   bool   `koanf:"wide" yaml:"wide"`
}

// ReplConfig controls the interactive shell.
type ReplConfig struct {
	Prompt      string `koanf:"prompt" yaml:"prompt"`
	HistoryFile string `koanf:"history_file" yaml:"history_file"`
	HistorySize int    `koanf:"history_size" yaml:"history_size"`
	WatchConfig bool   `koanf:"watch_config" yaml:"watch_config"`
}

// SeedConfig names entries preloaded before a command runs.
type SeedConfig struct {
	File string `koanf:"file" yaml:"file"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Repl: ReplConfig{
			Prompt:      "triemap> ",
			HistoryFile: DefaultHistoryPath(),
			HistorySize: 1000,
		},
	}
}

// Validate checks enumerated fields and limits.
func (c *CLIConfig) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !oneOf(c.Log.Format, "text", "json") {
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Repl.HistorySize < 0 {
		return fmt.Errorf("repl.history_size: must not be negative, got %d", c.Repl.HistorySize)
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	v = strings.ToLower(v)
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
