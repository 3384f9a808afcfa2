package maptest

import (
	"errors"
	"sort"

	"github.com/yndnr/triemap/pkg/ordmap"
)

func testSimple(h *harness) {
	h.set("hello")
	if !h.m.ContainsKey("hello") {
		h.t.Error("ContainsKey(hello) = false after Set")
	}
	if h.m.ContainsKey("goodbye") {
		h.t.Error("ContainsKey(goodbye) = true, never set")
	}
	if got, err := h.m.Get("hello"); err != nil || got != Value("hello") {
		h.t.Errorf("Get(hello) = (%q, %v), want (%q, nil)", got, err, Value("hello"))
	}
}

func testEmpty(h *harness) {
	if h.m.ContainsKey("empty") {
		h.t.Error("new map should not contain anything")
	}
	if h.m.Size() != 0 {
		h.t.Errorf("Size() = %d, want 0", h.m.Size())
	}
	if _, err := h.m.Get("empty"); !errors.Is(err, ordmap.ErrNotFound) {
		h.t.Errorf("Get(empty) error = %v, want ErrNotFound", err)
	}
}

func testMultipleSet(h *harness) {
	for i, w := range Words {
		h.m.Set(w, w)
		for _, prev := range Words[:i+1] {
			got, err := h.m.Get(prev)
			if err != nil || got != prev {
				h.t.Fatalf("after setting %q: Get(%q) = (%q, %v)", w, prev, got, err)
			}
		}
		if h.m.Size() != i+1 {
			h.t.Fatalf("Size() = %d after %d sets", h.m.Size(), i+1)
		}
	}
}

func testMultipleRemove(h *harness) {
	testMultipleSet(h)

	for i, w := range Words {
		old, removed := h.m.Remove(w)
		if !removed || old != w {
			h.t.Fatalf("Remove(%q) = (%q, %v), want (%q, true)", w, old, removed, w)
		}
		if _, err := h.m.Get(w); !errors.Is(err, ordmap.ErrNotFound) {
			h.t.Fatalf("Get(%q) after Remove: error = %v, want ErrNotFound", w, err)
		}
		if h.m.ContainsKey(w) {
			h.t.Fatalf("ContainsKey(%q) = true after Remove", w)
		}
		for _, rest := range Words[i+1:] {
			if got, err := h.m.Get(rest); err != nil || got != rest {
				h.t.Fatalf("after removing %q: Get(%q) = (%q, %v)", w, rest, got, err)
			}
		}
		if want := len(Words) - i - 1; h.m.Size() != want {
			h.t.Fatalf("Size() = %d, want %d", h.m.Size(), want)
		}
	}

	if old, removed := h.m.Remove("aardvark"); removed {
		h.t.Errorf("Remove of absent key = (%q, true), want no-op", old)
	}
}

func testDisplacedValue(h *harness) {
	if _, replaced := h.m.Set("goat", "v1"); replaced {
		h.t.Error("first Set reported a displaced value")
	}
	old, replaced := h.m.Set("goat", "v2")
	if !replaced || old != "v1" {
		h.t.Errorf("second Set = (%q, %v), want (\"v1\", true)", old, replaced)
	}
	if h.m.Size() != 1 {
		h.t.Errorf("Size() = %d after overwrite, want 1", h.m.Size())
	}
	if got, _ := h.m.Get("goat"); got != "v2" {
		h.t.Errorf("Get(goat) = %q, want \"v2\"", got)
	}
}

// testContainsOnlyAdd checks that every randomly added key stays present.
func testContainsOnlyAdd(h *harness) {
	var keys []string
	for i := 0; i < 100; i++ {
		key := h.randomKey()
		keys = append(keys, key)
		h.set(key)
	}
	for _, key := range keys {
		if !h.m.ContainsKey(key) {
			h.log("ContainsKey(%q) failed", key)
			h.fail(key + " is not in the map")
		}
	}
}

// testRandom interleaves random sets and removes, checking presence of
// every live key and the size after each step.
func testRandom(h *harness) {
	live := make(map[string]bool)
	ok := true
	for i := 0; ok && i < h.ops; i++ {
		key := h.randomKey()
		if h.rand.IntN(2) == 0 {
			if !h.m.ContainsKey(key) {
				h.set(key)
			}
			live[key] = true
			if !h.m.ContainsKey(key) {
				h.log("after adding %s, ContainsKey(%s) fails", key, key)
				ok = false
			}
		} else {
			h.remove(key)
			delete(live, key)
			if h.m.ContainsKey(key) {
				h.log("after removing %s, ContainsKey(%s) succeeds", key, key)
				ok = false
			}
		}

		for k := range live {
			if !h.m.ContainsKey(k) {
				h.log("map no longer contains %s", k)
				ok = false
				break
			}
		}
		if h.m.Size() != len(live) {
			h.log("Size() = %d, want %d", h.m.Size(), len(live))
			ok = false
		}
	}
	if !ok {
		h.fail("operations failed")
	}
}

func testIteratorCompleteness(h *harness) {
	expected := make([]string, 0, len(Words))
	for _, w := range Words {
		h.m.Set(w, w)
		expected = append(expected, w)
	}

	actual, err := ordmap.KeySlice(h.m)
	if err != nil {
		h.t.Fatalf("iteration failed: %v", err)
	}

	sort.Strings(expected)
	sort.Strings(actual)
	if len(actual) != len(expected) {
		h.t.Fatalf("iterated %d keys, want %d", len(actual), len(expected))
	}
	for i := range expected {
		if actual[i] != expected[i] {
			h.t.Errorf("key[%d] = %q, want %q", i, actual[i], expected[i])
		}
	}
}

func testIteratorProjection(h *harness) {
	for _, w := range []string{"goat", "bison", "cat"} {
		h.m.Set(w, Value(w))
	}

	pairs, err := ordmap.Items(h.m)
	if err != nil {
		h.t.Fatalf("Items() failed: %v", err)
	}

	keys := ordmap.Keys(h.m.Iterator())
	values := ordmap.Values(h.m.Iterator())
	for i, p := range pairs {
		k, err := keys.Next()
		if err != nil || k != p.Key {
			h.t.Errorf("keys[%d] = (%q, %v), want %q", i, k, err, p.Key)
		}
		v, err := values.Next()
		if err != nil || v != p.Value {
			h.t.Errorf("values[%d] = (%q, %v), want %q", i, v, err, p.Value)
		}
	}
	if more, _ := keys.HasNext(); more {
		h.t.Error("key projection has extra elements")
	}
	if _, err := values.Next(); !errors.Is(err, ordmap.ErrNoSuchElement) {
		h.t.Errorf("Next() past end error = %v, want ErrNoSuchElement", err)
	}
}
