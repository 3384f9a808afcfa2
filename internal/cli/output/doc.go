// Package output renders command results as tables, JSON, or YAML.
//
// Table rendering reflects over slices of structs: exported fields become
// columns named after their json tag, and fields tagged `table:"wide"`
// only appear with --wide. Empty strings print as "" so that an empty
// key stays visible.
//
// ProgressBar reports progress of long randomized checks on stderr.
package output
