package container

// Set is a collection of distinct keys backed by a Map.
type Set[K comparable] struct {
	m Map[K, struct{}]
}

// NewSet creates an empty hash-backed set.
func NewSet[K comparable]() Set[K] {
	return Set[K]{m: NewHash[K, struct{}]()}
}

// NewSetOn creates an empty set over the given map backing.
func NewSetOn[K comparable](m Map[K, struct{}]) Set[K] {
	return Set[K]{m: m}
}

// Add inserts key and reports whether it was absent before the call.
func (s Set[K]) Add(key K) bool {
	if _, ok := s.m.Lookup(key); ok {
		return false
	}
	s.m.Insert(key, struct{}{})
	return true
}

// Contains reports whether key is in the set.
func (s Set[K]) Contains(key K) bool {
	_, ok := s.m.Lookup(key)
	return ok
}

// Remove deletes key from the set.
func (s Set[K]) Remove(key K) {
	s.m.Delete(key)
}

// Len returns the number of elements.
func (s Set[K]) Len() int {
	return s.m.Len()
}

// Elems returns the elements in the backing's traversal order.
func (s Set[K]) Elems() []K {
	return Keys(s.m)
}
