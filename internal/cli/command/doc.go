// Package command defines the triemap CLI using urfave/cli/v2.
//
// Every invocation first builds an Env in the app's Before hook: the
// layered configuration, the logger, a metrics registry, and a
// MapService over a fresh trie preloaded from the seed file. Commands
// then read or mutate that one map and render results with the
// configured formatter:
//
//   - list, get, dump, digest, stats: one-shot queries
//   - check: randomized verification against a reference set
//   - repl: interactive session, also run when no command is given
//   - config: show, validate, or initialize the configuration
package command
