// Package config defines the triemap CLI configuration.
//
// The configuration lives in ~/.triemap/config.yaml by default:
//
//	log:
//	  level: info
//	  format: text
//	  redact_values: false
//	output:
//	  format: table
//	  wide: false
//	repl:
//	  prompt: "triemap> "
//	  history_file: ~/.triemap/history
//	  history_size: 1000
//	  watch_config: false
//	seed:
//	  file: ""
//
// Every key can be overridden with TRIEMAP_SECTION_KEY environment
// variables and, for the common ones, command-line flags.
package config
