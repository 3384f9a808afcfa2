package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/triemap/internal/cli/output"
	"github.com/yndnr/triemap/internal/core/service"
	"github.com/yndnr/triemap/pkg/trie"
)

// CheckCommand returns the check command.
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Run random operations against a fresh trie and verify it against a reference set",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "ops",
				Usage: "Number of random operations",
				Value: 10000,
			},
			&cli.Uint64Flag{
				Name:  "seed-value",
				Usage: "PRNG seed (default: derived from the clock)",
			},
			&cli.IntFlag{
				Name:  "key-len",
				Usage: "Maximum random key length",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Draw a progress bar on stderr",
			},
		},
		Action: check,
	}
}

func check(c *cli.Context) error {
	env := GetEnv(c)
	ops := c.Int("ops")
	if ops < 0 {
		return fmt.Errorf("--ops must not be negative, got %d", ops)
	}

	seed := c.Uint64("seed-value")
	if !c.IsSet("seed-value") {
		seed = uint64(time.Now().UnixNano())
	}

	var progress func()
	if c.Bool("progress") {
		bar := output.NewProgressBar(env.Err, "check", int64(ops))
		progress = func() { bar.Increment(1) }
		defer bar.Finish()
	}

	env.Log.Info("check started", "ops", ops, "seed", seed)
	report, err := service.Check(c.Context, trie.New(), service.CheckOptions{
		Ops:    ops,
		Seed:   seed,
		KeyLen: c.Int("key-len"),
	}, progress)
	if err != nil {
		return err
	}

	if err := env.Formatter().Format(env.Out, report); err != nil {
		return err
	}
	if report.OK() {
		env.Log.Info("check passed", "ops", report.Ops, "size", report.Size)
		return nil
	}

	fmt.Fprintf(env.Err, "\nreplay in `triemap repl` (seed %d):\n", report.Seed)
	for _, line := range report.Script {
		fmt.Fprintln(env.Err, line)
	}
	return fmt.Errorf("check failed after %d operations: %s", report.Ops, report.Failures[0])
}
