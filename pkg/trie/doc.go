// Package trie provides a 27-way radix trie implementing ordmap.Map.
//
// Each node has one child slot per character class: the 26 ASCII letters,
// folded case-insensitively, and one slot shared by every other byte.
// This keeps nodes small and iteration ordered, at the cost of aliasing:
// "Cat" and "cat" reach the same node, as do "a-b" and "a_b".
//
// Removal prunes every node it leaves empty, so the tree never holds
// dangling empty paths. The root is never pruned.
//
// Iterators are fail-fast. Every Set, and every Remove that deletes an
// entry, bumps a generation counter; an iterator created before the bump
// reports ordmap.ErrConcurrentModification on any further call. An
// iterator's own Remove keeps that iterator usable and invalidates all
// others.
//
// Usage:
//
//	t := trie.New()
//	t.Set("bison", "bison")
//	t.Set("cat", "cat")
//	it := t.Iterator()
//	for {
//		ok, err := it.HasNext()
//		if err != nil || !ok {
//			break
//		}
//		p, _ := it.Next()
//		fmt.Println(p.Key, p.Value)
//	}
//
// Thread Safety:
//
// None. A Trie has a single owner; use external locking to share one.
package trie
