package container

// Map is a keyed container holding one value per key.
//
// All backings share these semantics. Iteration order during TraverseWithKey
// is backing-specific: sorted for the tree backing, unspecified otherwise.
type Map[K comparable, V any] interface {
	// Empty returns a fresh, empty map with the same backing as the receiver.
	Empty() Map[K, V]

	// Insert stores value under key, replacing any existing entry.
	Insert(key K, value V)

	// Lookup returns the value stored under key, if any.
	Lookup(key K) (V, bool)

	// Delete removes the entry for key. Deleting an absent key is a no-op.
	Delete(key K)

	// Union merges other into the receiver. On key collision the entry from
	// other wins (right-biased).
	Union(other Map[K, V])

	// TraverseWithKey applies fn to every entry. A non-nil error aborts the
	// traversal and is returned unchanged.
	TraverseWithKey(fn func(K, V) error) error

	// Len returns the number of entries.
	Len() int
}

// Keys collects the keys of m. Order follows the backing's traversal order.
func Keys[K comparable, V any](m Map[K, V]) []K {
	keys := make([]K, 0, m.Len())
	_ = m.TraverseWithKey(func(k K, _ V) error {
		keys = append(keys, k)
		return nil
	})
	return keys
}

// Copy returns a fresh map with the same backing and entries as m.
func Copy[K comparable, V any](m Map[K, V]) Map[K, V] {
	dst := m.Empty()
	_ = m.TraverseWithKey(func(k K, v V) error {
		dst.Insert(k, v)
		return nil
	})
	return dst
}
