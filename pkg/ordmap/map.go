package ordmap

import (
	"fmt"
	"io"
)

// Pair is one stored key/value entry.
type Pair struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// String renders the pair the way Dump output shows it.
func (p Pair) String() string {
	return fmt.Sprintf("<%s, %s>", p.Key, p.Value)
}

// Map is an ordered string-to-string map.
//
// Implementations are single-writer: mutation from more than one goroutine
// needs external locking. Staleness of outstanding iterators is detected,
// not prevented.
type Map interface {
	// Set stores value under key and returns the displaced value, if any.
	Set(key, value string) (old string, replaced bool)

	// Get returns the value stored under key or ErrNotFound.
	Get(key string) (string, error)

	// ContainsKey reports whether key has a stored value.
	ContainsKey(key string) bool

	// Remove deletes key and returns the removed value, if any.
	Remove(key string) (old string, removed bool)

	// Size returns the number of stored entries.
	Size() int

	// Iterator returns a fresh iterator positioned before the first entry.
	Iterator() Iterator

	// Dump writes a human-readable listing of all entries.
	Dump(w io.Writer) error
}

// Iterator walks the entries of a Map in ascending key order.
//
// Every call fails with ErrConcurrentModification once the map has been
// changed by anything other than this iterator's own Remove.
type Iterator interface {
	// HasNext reports whether Next will return another entry.
	HasNext() (bool, error)

	// Next returns the next entry, or ErrNoSuchElement when exhausted.
	Next() (Pair, error)

	// Remove deletes the entry most recently returned by Next.
	// It fails with ErrIllegalState before the first Next and when
	// repeated without an intervening Next.
	Remove() error
}
