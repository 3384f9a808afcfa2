package benchmark

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"testing"

	"github.com/yndnr/triemap/pkg/trie"
)

// EntryCounts defines the map sizes for benchmarking.
var EntryCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallEntryCounts for quick benchmarks.
var SmallEntryCounts = []int{1000, 5000, 10000}

// newKeys returns n distinct lower-case keys of 4 to 12 letters. Keys
// avoid non-letters and mixed case so no two of them share a trie path.
func newKeys(n int) []string {
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]bool, n)
	keys := make([]string, 0, n)
	for len(keys) < n {
		b := make([]byte, 4+rng.IntN(9))
		for i := range b {
			b[i] = byte('a' + rng.IntN(26))
		}
		if k := string(b); !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// prefillTrie returns a trie holding keys, each mapped to its upper-case form.
func prefillTrie(keys []string) *trie.Trie {
	t := trie.New()
	for _, k := range keys {
		t.Set(k, strings.ToUpper(k))
	}
	return t
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithEntryCounts runs a benchmark function with various map sizes.
func runWithEntryCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
