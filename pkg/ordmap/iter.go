package ordmap

// Range iterates over all entries of m in order.
//
// The callback returns false to stop iteration. If the callback mutates m,
// the next step fails and Range returns ErrConcurrentModification.
func Range(m Map, fn func(key, value string) bool) error {
	it := m.Iterator()
	for {
		ok, err := it.HasNext()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		p, err := it.Next()
		if err != nil {
			return err
		}
		if !fn(p.Key, p.Value) {
			return nil
		}
	}
}

// Items returns all entries of m as a slice, in iteration order.
func Items(m Map) ([]Pair, error) {
	items := make([]Pair, 0, m.Size())
	err := Range(m, func(key, value string) bool {
		items = append(items, Pair{Key: key, Value: value})
		return true
	})
	return items, err
}

// KeySlice returns all keys of m, in iteration order.
func KeySlice(m Map) ([]string, error) {
	keys := make([]string, 0, m.Size())
	err := Range(m, func(key, _ string) bool {
		keys = append(keys, key)
		return true
	})
	return keys, err
}

// ValueSlice returns all values of m, in iteration order.
func ValueSlice(m Map) ([]string, error) {
	values := make([]string, 0, m.Size())
	err := Range(m, func(_, value string) bool {
		values = append(values, value)
		return true
	})
	return values, err
}

// RemoveIf deletes every entry for which pred returns true, using the
// iterator's own Remove. It returns the number of removed entries.
func RemoveIf(m Map, pred func(key, value string) bool) (int, error) {
	it := m.Iterator()
	removed := 0
	for {
		ok, err := it.HasNext()
		if err != nil {
			return removed, err
		}
		if !ok {
			return removed, nil
		}
		p, err := it.Next()
		if err != nil {
			return removed, err
		}
		if !pred(p.Key, p.Value) {
			continue
		}
		if err := it.Remove(); err != nil {
			return removed, err
		}
		removed++
	}
}
