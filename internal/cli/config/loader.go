package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/triemap/internal/infra/confloader"
)

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".triemap", "config.yaml")
}

// DefaultHistoryPath returns the default REPL history path.
func DefaultHistoryPath() string {
	return filepath.Join(homeDir(), ".triemap", "history")
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

// Load builds the configuration from defaults, the file at path, and
// TRIEMAP_* environment variables. An empty path means the default
// location; a missing default file is not an error, a missing explicit
// file is. overrides, keyed by dotted path, are applied last.
func Load(path string, overrides map[string]any) (*CLIConfig, *confloader.Loader, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("config file: %w", err)
		}
		path = ""
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(defaults()),
	)
	cfg, err := apply(loader, overrides, (*confloader.Loader).Load)
	if err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}

// Reload re-reads the loader's sources, then re-applies overrides.
func Reload(loader *confloader.Loader, overrides map[string]any) (*CLIConfig, error) {
	return apply(loader, overrides, (*confloader.Loader).Reload)
}

func apply(loader *confloader.Loader, overrides map[string]any, load func(*confloader.Loader, any) error) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	if err := load(loader, cfg); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"log.level":         d.Log.Level,
		"log.format":        d.Log.Format,
		"log.redact_values": d.Log.RedactValues,
		"output.format":     d.Output.Format,
		"output.wide":       d.Output.Wide,
		"repl.prompt":       d.Repl.Prompt,
		"repl.history_file": d.Repl.HistoryFile,
		"repl.history_size": d.Repl.HistorySize,
		"repl.watch_config": d.Repl.WatchConfig,
		"seed.file":         d.Seed.File,
	}
}

// Save writes cfg as YAML to path, creating the directory.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
