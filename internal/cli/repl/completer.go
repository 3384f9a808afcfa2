package repl

import (
	"strings"

	"github.com/yndnr/triemap/pkg/ordmap"
	"github.com/yndnr/triemap/pkg/trie"
)

// commands lists every REPL command line form completion offers.
var commands = []string{
	"set", "get", "has", "del", "size",
	"list", "keys", "values", "dump", "digest", "load", "stats",
	"cursor", "cursor open", "cursor next", "cursor has",
	"cursor remove", "cursor close", "cursor list",
	"help", "exit", "quit",
}

// Completer suggests REPL commands. Commands are kept in a trie, so
// suggestions come back in the trie's key order.
type Completer struct {
	commands *trie.Trie
}

// NewCompleter creates a Completer over the built-in commands.
func NewCompleter() *Completer {
	t := trie.New()
	for _, c := range commands {
		t.Set(c, c)
	}
	return &Completer{commands: t}
}

// Complete returns the commands that start with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var out []string
	_ = ordmap.Range(c.commands, func(p ordmap.Pair) bool {
		if strings.HasPrefix(p.Key, prefix) {
			out = append(out, p.Key)
		}
		return true
	})
	return out
}

// Commands returns every command in order.
func (c *Completer) Commands() []string {
	return c.Complete("")
}
