package ordmap

// KeyIterator projects an Iterator onto its keys. It shares the underlying
// iterator's ordering, laziness and invalidation rules.
type KeyIterator struct {
	it Iterator
}

// Keys wraps it so that Next yields only keys.
func Keys(it Iterator) *KeyIterator {
	return &KeyIterator{it: it}
}

// HasNext reports whether Next will return another key.
func (k *KeyIterator) HasNext() (bool, error) {
	return k.it.HasNext()
}

// Next returns the next key.
func (k *KeyIterator) Next() (string, error) {
	p, err := k.it.Next()
	if err != nil {
		return "", err
	}
	return p.Key, nil
}

// Remove deletes the entry whose key was returned last.
func (k *KeyIterator) Remove() error {
	return k.it.Remove()
}

// ValueIterator projects an Iterator onto its values.
type ValueIterator struct {
	it Iterator
}

// Values wraps it so that Next yields only values.
func Values(it Iterator) *ValueIterator {
	return &ValueIterator{it: it}
}

// HasNext reports whether Next will return another value.
func (v *ValueIterator) HasNext() (bool, error) {
	return v.it.HasNext()
}

// Next returns the next value.
func (v *ValueIterator) Next() (string, error) {
	p, err := v.it.Next()
	if err != nil {
		return "", err
	}
	return p.Value, nil
}

// Remove deletes the entry whose value was returned last.
func (v *ValueIterator) Remove() error {
	return v.it.Remove()
}
