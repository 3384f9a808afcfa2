// Package service provides the application service over an ordered map.
//
// MapService owns one ordmap.Map and is the only code that mutates it.
// It adds what the bare map does not carry:
//
//   - structured logging of every mutation, tagged with the session ID
//   - Prometheus counters for operations and cursor failures
//   - bulk loading from line-oriented input
//   - named cursors wrapping the map's fail-fast iterators
//
// The service is single-owner and not safe for concurrent use, matching
// the map it wraps.
package service
