package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/triemap/internal/cli/config"
	"github.com/yndnr/triemap/internal/cli/output"
	"github.com/yndnr/triemap/internal/core/service"
	"github.com/yndnr/triemap/internal/infra/buildinfo"
	"github.com/yndnr/triemap/internal/infra/confloader"
	"github.com/yndnr/triemap/internal/telemetry/logger"
	"github.com/yndnr/triemap/internal/telemetry/metric"
	"github.com/yndnr/triemap/pkg/trie"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "triemap",
		Usage:   "Inspect and exercise a case-insensitive ordered trie map",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ListCommand(),
			GetCommand(),
			DumpCommand(),
			DigestCommand(),
			StatsCommand(),
			CheckCommand(),
			ReplCommand(),
			ConfigCommand(),
		},
		Before: setup,
		Action: runRepl,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.triemap/config.yaml)",
			EnvVars: []string{"TRIEMAP_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: "info",
		},
		&cli.StringFlag{
			Name:    "seed",
			Aliases: []string{"f"},
			Usage:   "File of entries to load first, one key or key=value per line",
		},
	}
}

// overrides maps explicitly set global flags to config paths. Flags left
// at their defaults do not override the file or the environment.
func overrides(c *cli.Context) map[string]any {
	o := make(map[string]any)
	if c.IsSet("output") {
		o["output.format"] = c.String("output")
	}
	if c.IsSet("wide") {
		o["output.wide"] = c.Bool("wide")
	}
	if c.IsSet("log-level") {
		o["log.level"] = c.String("log-level")
	}
	if c.IsSet("seed") {
		o["seed.file"] = c.String("seed")
	}
	return o
}

// Env is the state shared by every command of one invocation.
type Env struct {
	Config    *config.CLIConfig
	Loader    *confloader.Loader
	Overrides map[string]any
	Log       logger.Logger
	Metrics   *metric.Registry
	Service   *service.MapService
	Out       io.Writer
	Err       io.Writer
}

// Formatter returns the configured result formatter.
func (e *Env) Formatter() output.Formatter {
	format, _ := output.ParseFormat(e.Config.Output.Format)
	return output.NewFormatter(format, e.Config.Output.Wide)
}

// GetEnv retrieves the invocation state set up by Before.
func GetEnv(c *cli.Context) *Env {
	if env, ok := c.App.Metadata[envKey].(*Env); ok {
		return env
	}
	return nil
}

// setup loads configuration, builds the logger and the map service, and
// loads the seed file.
func setup(c *cli.Context) error {
	o := overrides(c)
	cfg, loader, err := config.Load(c.String("config"), o)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       c.App.ErrWriter,
		RedactValues: cfg.Log.RedactValues,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)

	metrics := metric.NewRegistry()
	env := &Env{
		Config:    cfg,
		Loader:    loader,
		Overrides: o,
		Log:       log,
		Metrics:   metrics,
		Service:   service.NewMapService(trie.New(), service.WithLogger(log), service.WithMetrics(metrics)),
		Out:       c.App.Writer,
		Err:       c.App.ErrWriter,
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[envKey] = env

	if cfg.Seed.File != "" {
		if err := env.seed(c.Context, cfg.Seed.File); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) seed(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	n, err := e.Service.Load(ctx, f)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	e.Log.Debug("seed loaded", "file", path, "entries", n)
	return nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
