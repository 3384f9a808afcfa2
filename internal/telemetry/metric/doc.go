// Package metric provides Prometheus metrics for triemap.
//
// Metrics live on a private registry so that several maps (and tests) do
// not collide on the default one:
//
//   - triemap_operations_total{op,result}: map operations
//   - triemap_entries: current entry count
//   - triemap_cursor_failures_total{kind}: failed iterator calls
//
// Snapshot flattens the registry for the CLI "stats" output.
package metric
