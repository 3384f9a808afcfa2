package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/triemap/pkg/ordmap"
	"github.com/yndnr/triemap/pkg/trie"
)

// entryRow is one listed entry. Path is filled only in wide mode.
type entryRow struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty" table:"wide"`
}

func rows(pairs []ordmap.Pair, wide bool) []entryRow {
	out := make([]entryRow, len(pairs))
	for i, p := range pairs {
		out[i] = entryRow{Key: p.Key, Value: p.Value}
		if wide {
			out[i].Path = trie.Path(p.Key)
		}
	}
	return out
}

// ListCommand returns the list command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List entries in key order",
		Action:  list,
	}
}

func list(c *cli.Context) error {
	env := GetEnv(c)
	entries, err := env.Service.Entries(c.Context)
	if err != nil {
		return err
	}
	return env.Formatter().Format(env.Out, rows(entries, env.Config.Output.Wide))
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the values stored under keys",
		ArgsUsage: "KEY...",
		Action:    get,
	}
}

func get(c *cli.Context) error {
	if c.NArg() == 0 {
		return ordmap.ErrInvalidArgument.WithDetails("usage: get KEY...")
	}

	env := GetEnv(c)
	var (
		found   []ordmap.Pair
		missing []error
	)
	for _, key := range c.Args().Slice() {
		v, err := env.Service.Get(c.Context, key)
		if err != nil {
			missing = append(missing, err)
			continue
		}
		found = append(found, ordmap.Pair{Key: key, Value: v})
	}

	if len(found) > 0 {
		if err := env.Formatter().Format(env.Out, rows(found, env.Config.Output.Wide)); err != nil {
			return err
		}
	}
	return errors.Join(missing...)
}

// DumpCommand returns the dump command.
func DumpCommand() *cli.Command {
	return &cli.Command{
		Name:   "dump",
		Usage:  "Print the trie structure",
		Action: dump,
	}
}

func dump(c *cli.Context) error {
	env := GetEnv(c)
	return env.Service.Dump(c.Context, env.Out)
}

// DigestCommand returns the digest command.
func DigestCommand() *cli.Command {
	return &cli.Command{
		Name:   "digest",
		Usage:  "Print a fingerprint of the entries in key order",
		Action: digest,
	}
}

type digestResult struct {
	Size   int    `json:"size" yaml:"size"`
	Digest string `json:"digest" yaml:"digest"`
}

func digest(c *cli.Context) error {
	env := GetEnv(c)
	d, err := env.Service.Digest(c.Context)
	if err != nil {
		return err
	}
	return env.Formatter().Format(env.Out, digestResult{Size: env.Service.Size(), Digest: d})
}

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Print operation metrics for this run",
		Action: stats,
	}
}

func stats(c *cli.Context) error {
	env := GetEnv(c)
	samples, err := env.Service.Stats()
	if err != nil {
		return fmt.Errorf("collect stats: %w", err)
	}
	return env.Formatter().Format(env.Out, samples)
}
