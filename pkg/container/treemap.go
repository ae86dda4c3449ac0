package container

import (
	"github.com/google/btree"
)

const btreeDegree = 8

// entry is a key/value pair stored in the tree backing.
type entry[K comparable, V any] struct {
	key K
	val V
}

// treeMap backs Map with a balanced B-tree ordered by the caller's less
// function. TraverseWithKey visits entries in ascending key order.
type treeMap[K comparable, V any] struct {
	less func(a, b K) bool
	tree *btree.BTreeG[entry[K, V]]
}

// NewTree creates an empty tree-backed map ordered by less.
func NewTree[K comparable, V any](less func(a, b K) bool) Map[K, V] {
	return &treeMap[K, V]{
		less: less,
		tree: btree.NewG(btreeDegree, func(a, b entry[K, V]) bool {
			return less(a.key, b.key)
		}),
	}
}

func (t *treeMap[K, V]) Empty() Map[K, V] {
	return NewTree[K, V](t.less)
}

func (t *treeMap[K, V]) Insert(key K, value V) {
	t.tree.ReplaceOrInsert(entry[K, V]{key: key, val: value})
}

func (t *treeMap[K, V]) Lookup(key K) (V, bool) {
	e, ok := t.tree.Get(entry[K, V]{key: key})
	if !ok {
		var zero V
		return zero, false
	}
	return e.val, true
}

func (t *treeMap[K, V]) Delete(key K) {
	t.tree.Delete(entry[K, V]{key: key})
}

func (t *treeMap[K, V]) Union(other Map[K, V]) {
	_ = other.TraverseWithKey(func(k K, v V) error {
		t.Insert(k, v)
		return nil
	})
}

func (t *treeMap[K, V]) TraverseWithKey(fn func(K, V) error) error {
	var err error
	t.tree.Ascend(func(e entry[K, V]) bool {
		err = fn(e.key, e.val)
		return err == nil
	})
	return err
}

func (t *treeMap[K, V]) Len() int {
	return t.tree.Len()
}
