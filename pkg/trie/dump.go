package trie

import (
	"fmt"
	"io"
)

// Dump writes an indented listing of the trie, one line per non-root
// node, children in class order. Lines for nodes that hold an entry end
// with ": <key, value>". Letter classes print upper-case; the shared
// non-letter class prints as '*'.
func (t *Trie) Dump(w io.Writer) error {
	d := &dumper{w: w}
	if t.root.hasPayload() {
		d.printf("(root): %s\n", *t.root.payload)
	}
	d.node(t.root, "")
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) node(n *node, indent string) {
	for class, c := range n.children {
		if c == nil {
			continue
		}
		prefix := indent + string(classLabel(class))
		if c.hasPayload() {
			d.printf("%s: %s\n", prefix, *c.payload)
		} else {
			d.printf("%s\n", prefix)
		}
		d.node(c, prefix+"-")
	}
}
