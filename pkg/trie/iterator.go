package trie

import (
	"github.com/yndnr/triemap/pkg/ordmap"
	"github.com/yndnr/triemap/pkg/stack"
)

// iterator walks payload-bearing nodes with an explicit stack. Children
// are pushed in descending class order so pops come out ascending.
type iterator struct {
	t   *Trie
	gen uint64

	pending     *stack.Stack[*node]
	initialized bool

	// last is the entry returned by the latest Next, until removed.
	last *ordmap.Pair

	// err is sticky once the trie is seen to have changed underneath.
	err error
}

func newIterator(t *Trie) *iterator {
	return &iterator{
		t:   t,
		gen: t.gen,
	}
}

// HasNext reports whether Next will return another entry.
func (it *iterator) HasNext() (bool, error) {
	if err := it.check(); err != nil {
		return false, err
	}
	return !it.pending.IsEmpty(), nil
}

// Next returns the next entry in key order.
func (it *iterator) Next() (ordmap.Pair, error) {
	if err := it.check(); err != nil {
		return ordmap.Pair{}, err
	}

	n, ok := it.pending.Pop()
	if !ok {
		return ordmap.Pair{}, ordmap.ErrNoSuchElement
	}
	it.pushChildren(n)

	p := *n.payload
	it.last = &p
	return p, nil
}

// Remove deletes the entry returned by the latest Next through the
// trie's own Remove, then adopts the trie's new generation.
func (it *iterator) Remove() error {
	if err := it.check(); err != nil {
		return err
	}
	if it.last == nil {
		return ordmap.ErrIllegalState.WithDetails("remove requires a preceding next")
	}

	key := it.last.Key
	it.last = nil
	it.t.Remove(key)
	it.gen = it.t.gen
	return nil
}

// check fails fast on a stale generation, then builds the stack on first use.
func (it *iterator) check() error {
	if it.err != nil {
		return it.err
	}
	if it.gen != it.t.gen {
		it.err = ordmap.ErrConcurrentModification
		return it.err
	}
	if !it.initialized {
		it.initialized = true
		it.pending = stack.New[*node]()
		it.push(it.t.root)
	}
	return nil
}

// push stacks n if it holds an entry, otherwise its nearest entry-holding
// descendants.
func (it *iterator) push(n *node) {
	if n == nil {
		return
	}
	if n.hasPayload() {
		it.pending.Push(n)
		return
	}
	it.pushChildren(n)
}

func (it *iterator) pushChildren(n *node) {
	for class := Radix - 1; class >= 0; class-- {
		it.push(n.children[class])
	}
}
