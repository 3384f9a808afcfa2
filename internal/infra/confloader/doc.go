// Package confloader layers configuration from defaults, a YAML file,
// and environment variables into a typed struct, using koanf.
//
// Priority (highest to lowest):
//
//  1. Command-line flags, applied by the caller via LoadMap
//  2. Environment variables (TRIEMAP_SECTION_KEY)
//  3. The configuration file
//  4. Defaults
//
// Watcher reports edits to the configuration file so long-running
// sessions can reload it.
package confloader
