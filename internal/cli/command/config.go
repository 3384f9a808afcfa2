package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/triemap/internal/cli/config"
	"github.com/yndnr/triemap/internal/cli/output"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: configShow,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
			{
				Name:      "init",
				Usage:     "Write the default configuration",
				ArgsUsage: "[FILE]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	env := GetEnv(c)
	if env.Config.Output.Format == string(output.FormatJSON) {
		return (&output.JSONFormatter{}).Format(env.Out, env.Config)
	}
	return (&output.YAMLFormatter{}).Format(env.Out, env.Config)
}

func configValidate(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = GetEnv(c).Loader.FilePath()
	}
	if path == "" {
		return fmt.Errorf("no configuration file found at %s", config.DefaultConfigPath())
	}

	if _, _, err := config.Load(path, nil); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Fprintf(GetEnv(c).Out, "configuration is valid: %s\n", path)
	return nil
}

func configInit(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = config.DefaultConfigPath()
	}

	_, err := os.Stat(path)
	switch {
	case err == nil && !c.Bool("force"):
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(GetEnv(c).Out, "wrote %s\n", path)
	return nil
}
