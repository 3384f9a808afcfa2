package maptest

import (
	"errors"

	"github.com/yndnr/triemap/pkg/ordmap"
)

func (h *harness) mustNext(it ordmap.Iterator) ordmap.Pair {
	h.t.Helper()
	p, err := it.Next()
	if err != nil {
		h.t.Fatalf("Next() failed: %v", err)
	}
	return p
}

func (h *harness) mustRemove(it ordmap.Iterator) {
	h.t.Helper()
	if err := it.Remove(); err != nil {
		h.t.Fatalf("Remove() failed: %v", err)
	}
}

func (h *harness) expectErr(what string, err, want error) {
	h.t.Helper()
	if !errors.Is(err, want) {
		h.t.Errorf("%s: error = %v, want %v", what, err, want)
	}
}

// expectStale checks that every iterator operation reports concurrent
// modification.
func (h *harness) expectStale(name string, it ordmap.Iterator) {
	h.t.Helper()
	h.expectErr(name+".Remove()", it.Remove(), ordmap.ErrConcurrentModification)
	_, err := it.HasNext()
	h.expectErr(name+".HasNext()", err, ordmap.ErrConcurrentModification)
	_, err = it.Next()
	h.expectErr(name+".Next()", err, ordmap.ErrConcurrentModification)
}

func testRemoveSingleton(h *harness) {
	h.m.Set("A", "A")
	if h.m.Size() != 1 {
		h.t.Fatalf("Size() = %d, want 1", h.m.Size())
	}

	it := h.m.Iterator()
	h.mustNext(it)
	h.mustRemove(it)

	if h.m.Size() != 0 {
		h.t.Errorf("Size() = %d after iterator Remove, want 0", h.m.Size())
	}
	if more, err := h.m.Iterator().HasNext(); err != nil || more {
		h.t.Errorf("fresh iterator HasNext() = (%v, %v), want (false, nil)", more, err)
	}
}

func testExceptionsRemove(h *harness) {
	// Removing from an empty map.
	h.expectErr("empty map Remove()", h.m.Iterator().Remove(), ordmap.ErrIllegalState)

	// Removing before iterating.
	h.m.Set("A", "A")
	h.m.Set("B", "B")
	h.expectErr("Remove() before Next()", h.m.Iterator().Remove(), ordmap.ErrIllegalState)

	// Removing twice in a row.
	h.m.Set("A", "A")
	h.m.Set("B", "B")
	it := h.m.Iterator()
	h.mustNext(it)
	h.mustRemove(it)
	h.expectErr("second Remove()", it.Remove(), ordmap.ErrIllegalState)
	h.expectErr("third Remove()", it.Remove(), ordmap.ErrIllegalState)

	// Removing twice in a row later in the sequence.
	h.m.Set("A", "A")
	h.m.Set("B", "B")
	h.m.Set("C", "C")
	h.m.Set("D", "D")
	it2 := h.m.Iterator()
	h.mustNext(it2)
	h.mustNext(it2)
	h.mustRemove(it2)
	h.expectErr("second Remove() later", it2.Remove(), ordmap.ErrIllegalState)
	h.expectErr("third Remove() later", it2.Remove(), ordmap.ErrIllegalState)
}

func testExceptionsModification(h *harness) {
	for _, k := range []string{"A", "B", "C", "D"} {
		h.m.Set(k, k)
	}

	// Modification by addition.
	it1 := h.m.Iterator()
	h.mustNext(it1)
	h.m.Set("E", "E")
	h.expectStale("it1", it1)

	// Modification by removal.
	it2 := h.m.Iterator()
	h.m.Remove("A")
	h.expectStale("it2", it2)

	// Modification by replacement.
	it3 := h.m.Iterator()
	h.m.Set("B", "C")
	h.expectStale("it3", it3)

	// Simultaneous modification through another iterator.
	it4 := h.m.Iterator()
	it5 := h.m.Iterator()
	h.mustNext(it4)
	h.mustNext(it4)
	h.mustNext(it5)
	h.mustRemove(it4)
	h.expectStale("it5", it5)

	// A stale iterator stays stale.
	h.expectStale("it1 again", it1)
}

func testRemoveKeepsOwnIterator(h *harness) {
	for _, k := range []string{"bison", "cat", "goat"} {
		h.m.Set(k, k)
	}

	a := h.m.Iterator()
	b := h.m.Iterator()

	first := h.mustNext(a)
	h.mustRemove(a)
	if h.m.ContainsKey(first.Key) {
		h.t.Errorf("ContainsKey(%q) = true after iterator Remove", first.Key)
	}

	_, err := b.HasNext()
	h.expectErr("b.HasNext()", err, ordmap.ErrConcurrentModification)

	seen := 1
	for {
		more, err := a.HasNext()
		if err != nil {
			h.t.Fatalf("a.HasNext() after own Remove: %v", err)
		}
		if !more {
			break
		}
		h.mustNext(a)
		seen++
	}
	if seen != 3 {
		h.t.Errorf("iterator visited %d entries, want 3", seen)
	}
	if h.m.Size() != 2 {
		h.t.Errorf("Size() = %d, want 2", h.m.Size())
	}
}
