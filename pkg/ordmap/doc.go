// Package ordmap defines the ordered string map contract shared by triemap
// containers.
//
// The contract consists of:
//
//   - Map: set/get/contains/remove/size, a fresh Iterator per call, and a
//     diagnostic Dump
//   - Iterator: ordered, lazily initialized, fail-fast, with single-element
//     removal after each Next
//   - KeyIterator / ValueIterator: lazy projections of an Iterator
//   - Range, Items, RemoveIf: helpers built on the Iterator
//   - Error: coded errors with sentinels for every failure kind
//
// Usage:
//
//	m := trie.New()
//	m.Set("bison", "BISON")
//	err := ordmap.Range(m, func(k, v string) bool {
//		fmt.Println(k, v)
//		return true
//	})
package ordmap
