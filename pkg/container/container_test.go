package container

import (
	"errors"
	"sort"
	"testing"

	"github.com/vnykmshr/streamfold/internal/testutil"
)

func intLess(a, b int) bool { return a < b }

// backings returns one instance of every in-memory backing so each test
// runs against all of them.
func backings() map[string]Map[int, string] {
	return map[string]Map[int, string]{
		"hash": NewHash[int, string](),
		"tree": NewTree[int, string](intLess),
	}
}

func TestInsertLookupDelete(t *testing.T) {
	for name, m := range backings() {
		t.Run(name, func(t *testing.T) {
			_, ok := m.Lookup(1)
			testutil.AssertEqual(t, ok, false)

			m.Insert(1, "one")
			m.Insert(2, "two")
			m.Insert(1, "uno") // replace

			v, ok := m.Lookup(1)
			testutil.AssertEqual(t, ok, true)
			testutil.AssertEqual(t, v, "uno")
			testutil.AssertEqual(t, m.Len(), 2)

			m.Delete(1)
			_, ok = m.Lookup(1)
			testutil.AssertEqual(t, ok, false)
			testutil.AssertEqual(t, m.Len(), 1)

			m.Delete(42) // absent key is a no-op
			testutil.AssertEqual(t, m.Len(), 1)
		})
	}
}

func TestUnionRightBias(t *testing.T) {
	for name, m := range backings() {
		t.Run(name, func(t *testing.T) {
			m.Insert(1, "left")
			m.Insert(2, "only-left")

			other := m.Empty()
			other.Insert(1, "right")
			other.Insert(3, "only-right")

			m.Union(other)
			testutil.AssertEqual(t, m.Len(), 3)

			v, _ := m.Lookup(1)
			testutil.AssertEqual(t, v, "right")
			v, _ = m.Lookup(2)
			testutil.AssertEqual(t, v, "only-left")
			v, _ = m.Lookup(3)
			testutil.AssertEqual(t, v, "only-right")
		})
	}
}

func TestEmptyMakesFreshSameBacking(t *testing.T) {
	for name, m := range backings() {
		t.Run(name, func(t *testing.T) {
			m.Insert(1, "x")
			fresh := m.Empty()
			testutil.AssertEqual(t, fresh.Len(), 0)
			fresh.Insert(2, "y")
			_, ok := m.Lookup(2)
			testutil.AssertEqual(t, ok, false)
		})
	}
}

func TestTraverseAborts(t *testing.T) {
	boom := errors.New("boom")
	for name, m := range backings() {
		t.Run(name, func(t *testing.T) {
			m.Insert(1, "a")
			m.Insert(2, "b")
			m.Insert(3, "c")

			visited := 0
			err := m.TraverseWithKey(func(int, string) error {
				visited++
				return boom
			})
			testutil.AssertEqual(t, errors.Is(err, boom), true)
			testutil.AssertEqual(t, visited, 1)
		})
	}
}

func TestTreeSortedTraversal(t *testing.T) {
	m := NewTree[int, string](intLess)
	for _, k := range []int{5, 1, 4, 2, 3} {
		m.Insert(k, "")
	}
	testutil.AssertSliceEqual(t, Keys(m), []int{1, 2, 3, 4, 5})
}

func TestHashTraversalCoversAll(t *testing.T) {
	m := NewHash[int, string]()
	for _, k := range []int{5, 1, 4, 2, 3} {
		m.Insert(k, "")
	}
	keys := Keys(m)
	sort.Ints(keys)
	testutil.AssertSliceEqual(t, keys, []int{1, 2, 3, 4, 5})
}

func TestCopyIsIndependent(t *testing.T) {
	m := NewTree[int, string](intLess)
	m.Insert(1, "a")
	dup := Copy(m)
	dup.Insert(2, "b")
	testutil.AssertEqual(t, m.Len(), 1)
	testutil.AssertEqual(t, dup.Len(), 2)
	testutil.AssertSliceEqual(t, Keys(dup), []int{1, 2})
}

func TestSet(t *testing.T) {
	s := NewSet[string]()
	testutil.AssertEqual(t, s.Add("a"), true)
	testutil.AssertEqual(t, s.Add("a"), false)
	testutil.AssertEqual(t, s.Add("b"), true)
	testutil.AssertEqual(t, s.Contains("a"), true)
	testutil.AssertEqual(t, s.Contains("c"), false)
	testutil.AssertEqual(t, s.Len(), 2)

	s.Remove("a")
	testutil.AssertEqual(t, s.Contains("a"), false)
	testutil.AssertEqual(t, s.Len(), 1)
}

func TestSetOnTreeBackingSortedElems(t *testing.T) {
	s := NewSetOn(NewTree[int, struct{}](intLess))
	for _, k := range []int{3, 1, 2, 1} {
		s.Add(k)
	}
	testutil.AssertSliceEqual(t, s.Elems(), []int{1, 2, 3})
}
