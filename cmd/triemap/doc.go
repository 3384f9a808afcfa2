// Package main provides the entry point for triemap.
//
// triemap is a command-line front end for the case-insensitive ordered
// trie map:
//
//   - Loading entries from a seed file and listing them in key order
//   - Looking up keys and dumping the trie's diagnostic listing
//   - Randomized consistency checks against a reference model
//   - Configuration management
//
// Usage:
//
//	triemap [command] [flags]
//	triemap --seed words.txt list -o json
//	triemap check --ops 50000 --progress
//
// Without a command it starts the interactive REPL.
package main
