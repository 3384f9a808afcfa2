package trie

import "github.com/yndnr/triemap/pkg/ordmap"

// Radix is the number of character classes per node: 26 case-folded
// letters plus one class shared by every other byte.
const Radix = 27

// otherClass is the slot for every byte that is not an ASCII letter.
const otherClass = Radix - 1

// classOf maps a key byte to its child slot. Letters fold case, so 'a' and
// 'A' share slot 0; everything else shares otherClass.
func classOf(ch byte) int {
	switch {
	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a')
	case ch >= 'A' && ch <= 'Z':
		return int(ch - 'A')
	default:
		return otherClass
	}
}

// classLabel is the character Dump prints for a slot.
func classLabel(class int) byte {
	if class == otherClass {
		return '*'
	}
	return 'A' + byte(class)
}

// Path returns the class path key occupies, in the form Dump prints:
// Path("Cat") is "C-A-T" and Path("a1") is "A-*". The empty key lives at
// the root, whose path is "".
func Path(key string) string {
	if key == "" {
		return ""
	}
	b := make([]byte, 0, 2*len(key)-1)
	for i := 0; i < len(key); i++ {
		if i > 0 {
			b = append(b, '-')
		}
		b = append(b, classLabel(classOf(key[i])))
	}
	return string(b)
}

// node is one position in the key byte sequence. Children are owned
// exclusively by their parent.
type node struct {
	payload  *ordmap.Pair
	children [Radix]*node
}

// hasPayload reports whether a key was stored at exactly this node.
func (n *node) hasPayload() bool {
	return n.payload != nil
}

// child returns the owned child for ch's class, or nil.
func (n *node) child(ch byte) *node {
	return n.children[classOf(ch)]
}

// setChild replaces the child for ch's class; the old subtree is dropped.
func (n *node) setChild(ch byte, c *node) {
	n.children[classOf(ch)] = c
}

func (n *node) setPayload(key, value string) {
	n.payload = &ordmap.Pair{Key: key, Value: value}
}

func (n *node) clearPayload() {
	n.payload = nil
}

// isEmpty reports whether the node holds nothing and may be pruned.
func (n *node) isEmpty() bool {
	if n.hasPayload() {
		return false
	}
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}
