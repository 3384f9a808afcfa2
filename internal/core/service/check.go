package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/yndnr/triemap/pkg/ordmap"
)

// CheckOptions controls a randomized consistency check.
type CheckOptions struct {
	Ops    int    // number of random operations
	Seed   uint64 // PRNG seed; runs with equal seeds are identical
	KeyLen int    // maximum random key length
}

// CheckReport summarizes a check run.
type CheckReport struct {
	Seed     uint64   `json:"seed" yaml:"seed"`
	Ops      int      `json:"ops" yaml:"ops"`
	Sets     int      `json:"sets" yaml:"sets"`
	Removes  int      `json:"removes" yaml:"removes"`
	Size     int      `json:"size" yaml:"size"`
	Digest   string   `json:"digest,omitempty" yaml:"digest,omitempty"`
	Failures []string `json:"failures,omitempty" yaml:"failures,omitempty"`
	Script   []string `json:"-" yaml:"-" table:"-"`
}

// OK reports whether the run found no inconsistencies.
func (r *CheckReport) OK() bool {
	return len(r.Failures) == 0
}

// Check runs random set and remove operations against m and a reference
// set of live keys. After every operation it verifies that every live
// key is contained and that the sizes agree; at the end it verifies that
// iteration returns exactly the live keys in order. The run stops at the
// first inconsistency. A clean run records the digest of the final
// contents. Script holds the operations performed, as REPL
// lines, so a failure can be replayed. progress, if set, is called after
// each operation.
func Check(ctx context.Context, m ordmap.Map, opts CheckOptions, progress func()) (*CheckReport, error) {
	if opts.KeyLen < 1 {
		opts.KeyLen = 10
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	report := &CheckReport{Seed: opts.Seed}
	live := make(map[string]bool)

	fail := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		report.Failures = append(report.Failures, msg)
		report.Script = append(report.Script, "# "+msg)
	}

	for i := 0; i < opts.Ops && report.OK(); i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return report, err
			}
		}
		report.Ops++

		key := randomKey(rng, opts.KeyLen)
		if rng.IntN(2) == 0 {
			if !m.ContainsKey(key) {
				m.Set(key, strings.ToUpper(key))
				report.Script = append(report.Script, "set "+key)
				report.Sets++
			}
			live[key] = true
			if !m.ContainsKey(key) {
				fail("after adding %s, has %s is false", key, key)
			}
		} else {
			m.Remove(key)
			report.Script = append(report.Script, "del "+key)
			report.Removes++
			delete(live, key)
			if m.ContainsKey(key) {
				fail("after removing %s, has %s is true", key, key)
			}
		}

		for k := range live {
			if !m.ContainsKey(k) {
				fail("map no longer contains %s", k)
				break
			}
		}
		if m.Size() != len(live) {
			fail("size is %d, want %d", m.Size(), len(live))
		}
		if progress != nil {
			progress()
		}
	}

	report.Size = m.Size()
	if report.OK() {
		checkOrder(m, live, fail)
	}
	if report.OK() {
		items, err := ordmap.Items(m)
		if err != nil {
			return report, fmt.Errorf("digest: %w", err)
		}
		report.Digest = Fingerprint(items)
	}
	return report, nil
}

// checkOrder compares iteration against the sorted live keys. Random keys
// are lower-case letters only, so byte order is iteration order.
func checkOrder(m ordmap.Map, live map[string]bool, fail func(string, ...any)) {
	want := make([]string, 0, len(live))
	for k := range live {
		want = append(want, k)
	}
	slices.Sort(want)

	got, err := ordmap.KeySlice(m)
	if err != nil {
		fail("iteration failed: %v", err)
		return
	}
	if len(got) != len(want) {
		fail("iteration returned %d keys, want %d", len(got), len(want))
		return
	}
	for i := range want {
		if got[i] != want[i] {
			fail("iteration key %d is %s, want %s", i, got[i], want[i])
			return
		}
	}
}

func randomKey(rng *rand.Rand, maxLen int) string {
	n := 1 + rng.IntN(maxLen)
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + rng.IntN(26))
	}
	return string(b)
}
