package trie

import (
	"fmt"

	"github.com/yndnr/triemap/pkg/ordmap"
)

var _ ordmap.Map = (*Trie)(nil)

// Trie is a radix trie mapping string keys to string values.
//
// Keys are walked byte by byte. Letters are folded to one of 26 classes
// and every other byte shares a 27th class, so keys that differ only in
// letter case, or only in which non-letter byte sits at some depth, alias
// to the same node. The stored payload keeps the key most recently passed
// to Set for that node.
//
// A Trie is not safe for concurrent use.
type Trie struct {
	root *node
	size int
	gen  uint64
}

// New creates a new, empty trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Set stores value under key. If the key's node already held a payload,
// its value is returned with replaced set to true and the size is
// unchanged. Every call invalidates outstanding iterators.
func (t *Trie) Set(key, value string) (old string, replaced bool) {
	n := t.root
	for i := 0; i < len(key); i++ {
		c := n.child(key[i])
		if c == nil {
			c = &node{}
			n.setChild(key[i], c)
		}
		n = c
	}

	t.gen++
	if n.hasPayload() {
		old = n.payload.Value
		n.setPayload(key, value)
		return old, true
	}
	n.setPayload(key, value)
	t.size++
	return "", false
}

// Get returns the value stored under key.
func (t *Trie) Get(key string) (string, error) {
	n := t.find(key)
	if n == nil || !n.hasPayload() {
		return "", ordmap.ErrNotFound.WithDetails(fmt.Sprintf("%q", key))
	}
	return n.payload.Value, nil
}

// ContainsKey reports whether a value is stored under key.
func (t *Trie) ContainsKey(key string) bool {
	n := t.find(key)
	return n != nil && n.hasPayload()
}

// Remove deletes key and prunes every node the deletion leaves empty,
// up to but not including the root. Removing an absent key changes
// nothing, including the validity of outstanding iterators.
func (t *Trie) Remove(key string) (old string, removed bool) {
	p := t.remove(t.root, key, 0)
	if p == nil {
		return "", false
	}
	t.size--
	t.gen++
	return p.Value, true
}

// remove clears the payload for key below n and detaches emptied children
// on the way back up. It returns the cleared payload, or nil on a miss.
func (t *Trie) remove(n *node, key string, i int) *ordmap.Pair {
	if i == len(key) {
		if !n.hasPayload() {
			return nil
		}
		p := n.payload
		n.clearPayload()
		return p
	}

	c := n.child(key[i])
	if c == nil {
		return nil
	}
	p := t.remove(c, key, i+1)
	if p != nil && c.isEmpty() {
		n.setChild(key[i], nil)
	}
	return p
}

// Size returns the number of stored entries.
func (t *Trie) Size() int {
	return t.size
}

// Generation returns the modification counter. It changes on every Set
// and on every Remove that deletes an entry.
func (t *Trie) Generation() uint64 {
	return t.gen
}

// Iterator returns an iterator over all entries in ascending case-folded
// key order. The tree is not walked until the first call on it.
func (t *Trie) Iterator() ordmap.Iterator {
	return newIterator(t)
}

// Keys returns a lazy iterator over the keys.
func (t *Trie) Keys() *ordmap.KeyIterator {
	return ordmap.Keys(t.Iterator())
}

// Values returns a lazy iterator over the values, in key order.
func (t *Trie) Values() *ordmap.ValueIterator {
	return ordmap.Values(t.Iterator())
}

// find returns the node reached by walking key, or nil.
func (t *Trie) find(key string) *node {
	n := t.root
	for i := 0; i < len(key); i++ {
		n = n.child(key[i])
		if n == nil {
			return nil
		}
	}
	return n
}
