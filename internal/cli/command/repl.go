package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/triemap/internal/cli/config"
	"github.com/yndnr/triemap/internal/cli/repl"
	"github.com/yndnr/triemap/internal/infra/confloader"
	"github.com/yndnr/triemap/internal/telemetry/logger"
)

// ReplCommand returns the repl command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start an interactive session",
		Action: runRepl,
	}
}

func runRepl(c *cli.Context) error {
	env := GetEnv(c)
	cfg := env.Config

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	if cfg.Repl.WatchConfig && env.Loader.FilePath() != "" {
		w, err := watchConfig(ctx, env)
		if err != nil {
			env.Log.Warn("config watch disabled", "error", err)
		} else {
			defer w.Stop()
		}
	}

	r := repl.New(env.Service,
		repl.WithIO(c.App.Reader, env.Out),
		repl.WithPrompt(cfg.Repl.Prompt),
		repl.WithHistory(repl.NewHistory(cfg.Repl.HistoryFile, cfg.Repl.HistorySize)),
		repl.WithFormatter(env.Formatter()),
		repl.WithLogger(env.Log),
	)
	return r.Run(ctx)
}

// watchConfig reloads the config file on change and applies its log
// level. Other settings take effect in the next session.
func watchConfig(ctx context.Context, env *Env) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(env.Log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(env.Loader.FilePath()); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(path string) {
		cfg, err := config.Reload(env.Loader, env.Overrides)
		if err != nil {
			env.Log.Warn("config reload failed", "file", path, "error", err)
			return
		}
		if err := logger.SetLevel(cfg.Log.Level); err != nil {
			env.Log.Warn("config reload failed", "file", path, "error", err)
			return
		}
		env.Log.Info("config reloaded", "file", path, "log_level", cfg.Log.Level)
	})
	go w.Run(ctx)
	return w, nil
}
