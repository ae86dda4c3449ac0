package container

// hashMap backs Map with a plain Go map.
type hashMap[K comparable, V any] struct {
	entries map[K]V
}

// NewHash creates an empty hash-backed map.
func NewHash[K comparable, V any]() Map[K, V] {
	return &hashMap[K, V]{entries: make(map[K]V)}
}

func (h *hashMap[K, V]) Empty() Map[K, V] {
	return NewHash[K, V]()
}

func (h *hashMap[K, V]) Insert(key K, value V) {
	h.entries[key] = value
}

func (h *hashMap[K, V]) Lookup(key K) (V, bool) {
	v, ok := h.entries[key]
	return v, ok
}

func (h *hashMap[K, V]) Delete(key K) {
	delete(h.entries, key)
}

func (h *hashMap[K, V]) Union(other Map[K, V]) {
	_ = other.TraverseWithKey(func(k K, v V) error {
		h.entries[k] = v
		return nil
	})
}

func (h *hashMap[K, V]) TraverseWithKey(fn func(K, V) error) error {
	for k, v := range h.entries {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (h *hashMap[K, V]) Len() int {
	return len(h.entries)
}
