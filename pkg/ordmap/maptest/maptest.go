// Package maptest provides a conformance suite for ordmap.Map
// implementations.
//
// Implementations call Run from their own tests:
//
//	func TestConformance(t *testing.T) {
//		maptest.Run(t, func() ordmap.Map { return trie.New() })
//	}
//
// Randomized tests record every mutating call; when one fails, the
// recorded calls are logged as a Go test body that replays the failure,
// followed by the map's Dump output.
package maptest

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/yndnr/triemap/pkg/ordmap"
)

// Words is the fixed word list used by the systematic tests.
var Words = []string{"aardvark", "anteater", "antelope", "bear",
	"bison", "buffalo", "chinchilla", "cat", "dingo", "elephant", "eel",
	"flying squirrel", "fox", "goat", "gnu", "goose", "hippo", "horse",
	"iguana", "jackalope", "kestrel", "llama", "moose", "mongoose", "nilgai",
	"orangutan", "opossum", "red fox", "snake", "tarantula", "tiger",
	"vicuna", "vulture", "wombat", "yak", "zebra", "zorilla"}

// Factory creates an empty map under test.
type Factory func() ordmap.Map

// Options controls which groups of tests run.
type Options struct {
	// SkipIterator disables every iterator test.
	SkipIterator bool
	// SkipIteratorRemove disables iterator tests that call Remove.
	SkipIteratorRemove bool
	// Seed seeds the randomized tests. Zero picks a random seed.
	Seed uint64
	// RandomOps is the number of operations in the randomized test.
	RandomOps int
}

// Option configures Options.
type Option func(*Options)

// WithSeed fixes the seed of the randomized tests.
func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithoutIteratorRemove skips iterator tests that need Remove support.
func WithoutIteratorRemove() Option {
	return func(o *Options) {
		o.SkipIteratorRemove = true
	}
}

// WithoutIterator skips all iterator tests.
func WithoutIterator() Option {
	return func(o *Options) {
		o.SkipIterator = true
	}
}

// Value derives the value stored for a key in the randomized tests.
func Value(key string) string {
	return strings.ToUpper(key)
}

// Run runs the full suite against maps created by newMap.
func Run(t *testing.T, newMap Factory, opts ...Option) {
	o := Options{RandomOps: 1000}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}

	tests := []struct {
		name     string
		iterator bool
		remove   bool
		fn       func(*harness)
	}{
		{"Simple", false, false, testSimple},
		{"Empty", false, false, testEmpty},
		{"MultipleSet", false, false, testMultipleSet},
		{"MultipleRemove", false, false, testMultipleRemove},
		{"DisplacedValue", false, false, testDisplacedValue},
		{"ContainsOnlyAdd", false, false, testContainsOnlyAdd},
		{"Random", false, false, testRandom},
		{"IteratorCompleteness", true, false, testIteratorCompleteness},
		{"IteratorLazyProjection", true, false, testIteratorProjection},
		{"IteratorRemoveSingleton", true, true, testRemoveSingleton},
		{"IteratorRemoveExceptions", true, true, testExceptionsRemove},
		{"IteratorModificationExceptions", true, true, testExceptionsModification},
		{"IteratorRemoveKeepsOwnIterator", true, true, testRemoveKeepsOwnIterator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.iterator && o.SkipIterator {
				t.Skip("iterator tests disabled")
			}
			if tt.remove && o.SkipIteratorRemove {
				t.Skip("iterator remove tests disabled")
			}
			h := &harness{
				t:    t,
				m:    newMap(),
				rand: rand.New(rand.NewPCG(o.Seed, o.Seed>>1|1)),
				seed: o.Seed,
				ops:  o.RandomOps,
			}
			tt.fn(h)
		})
	}
}

// harness holds per-test state: the map, the random source and the
// script of recorded operations.
type harness struct {
	t      *testing.T
	m      ordmap.Map
	rand   *rand.Rand
	seed   uint64
	ops    int
	script []string
}

// randomKey returns 1 to 10 random lower-case letters.
func (h *harness) randomKey() string {
	n := 1 + h.rand.IntN(10)
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + h.rand.IntN(26)))
	}
	return b.String()
}

func (h *harness) set(key string) {
	h.script = append(h.script, fmt.Sprintf("m.Set(%q, %q)", key, Value(key)))
	h.m.Set(key, Value(key))
}

func (h *harness) remove(key string) {
	h.script = append(h.script, fmt.Sprintf("m.Remove(%q)", key))
	h.m.Remove(key)
}

func (h *harness) log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	h.t.Log(msg)
	h.script = append(h.script, "// "+msg)
}

// fail logs a replayable test body and the map dump, then fails the test.
func (h *harness) fail(msg string) {
	h.t.Helper()

	var b strings.Builder
	fmt.Fprintf(&b, "seed %d; replay with:\n", h.seed)
	fmt.Fprintf(&b, "func TestReplay%d(t *testing.T) {\n", h.rand.IntN(1000))
	b.WriteString("\tm := newMap()\n")
	for _, op := range h.script {
		fmt.Fprintf(&b, "\t%s\n", op)
	}
	b.WriteString("}\n")
	h.t.Log(b.String())

	var dump bytes.Buffer
	if err := h.m.Dump(&dump); err != nil {
		h.t.Logf("dump failed: %v", err)
	} else {
		h.t.Logf("map dump:\n%s", dump.String())
	}
	h.t.Fatal(msg)
}
