package stream_test

import (
	"testing"

	"github.com/vnykmshr/streamfold/internal/testutil"
	"github.com/vnykmshr/streamfold/pkg/stream"
)

func intCmp(a, b int) int { return a - b }

func TestUnfoldMany(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	double := func(n int) stream.Source[int] { return stream.FromSlice([]int{n, n}) }
	src := stream.UnfoldMany(double, stream.FromSlice([]int{1, 2, 3}))
	out, err := stream.ToSlice(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{1, 1, 2, 2, 3, 3})
}

func TestUnfoldManySkipsEmptyInners(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	evensOnly := func(n int) stream.Source[int] {
		if n%2 != 0 {
			return stream.Empty[int]()
		}
		return stream.Single(n)
	}
	out, err := stream.ToSlice(ctx, stream.UnfoldMany(evensOnly, stream.FromSlice([]int{1, 2, 3, 4})))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{2, 4})
}

func TestUnfoldInterleave(t *testing.T) {
	// Each expansion yields once on arrival; the sweep then ping-pongs
	// through the surviving sources.
	got := collect(t, stream.UnfoldInterleave(chars, stream.FromSlice([]string{"ab", "cd"})))
	testutil.AssertEqual(t, got, "acdb")
}

func TestUnfoldRoundRobinDrainsAll(t *testing.T) {
	got := collect(t, stream.UnfoldRoundRobin(chars, stream.FromSlice([]string{"ab", "cde", ""})))
	testutil.AssertEqual(t, got, "acdbe")
}

func TestInterpose(t *testing.T) {
	words := stream.FromSlice([]string{"ab", "cd"})
	testutil.AssertEqual(t, collect(t, stream.Interpose("-", chars, words)), "ab-cd")
}

func TestInterposeSuffix(t *testing.T) {
	words := stream.FromSlice([]string{"ab", "cd"})
	testutil.AssertEqual(t, collect(t, stream.InterposeSuffix("-", chars, words)), "ab-cd-")
}

func TestInterposeEmptyOuter(t *testing.T) {
	testutil.AssertEqual(t, collect(t, stream.Interpose("-", chars, stream.Empty[string]())), "")
}

func TestGintercalate(t *testing.T) {
	s1 := stream.FromSlice([]string{"ab", "cd"})
	s2 := stream.FromSlice([]string{"--", "--"})
	testutil.AssertEqual(t, collect(t, stream.Gintercalate(chars, s1, chars, s2)), "ab--cd")
}

func TestGintercalateSuffix(t *testing.T) {
	s1 := stream.FromSlice([]string{"ab", "cd"})
	s2 := stream.FromSlice([]string{"--", "--"})
	testutil.AssertEqual(t, collect(t, stream.GintercalateSuffix(chars, s1, chars, s2)), "ab--cd--")
}

func TestGintercalateSecondStopsEarly(t *testing.T) {
	s1 := stream.FromSlice([]string{"ab", "cd", "ef"})
	s2 := stream.FromSlice([]string{"--"})
	testutil.AssertEqual(t, collect(t, stream.Gintercalate(chars, s1, chars, s2)), "ab--cdef")
}

func TestConcatMapWith(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pair := func(n int) stream.Source[int] { return stream.FromSlice([]int{n, n + 1}) }
	src := stream.ConcatMapWith(stream.Append[int], pair, stream.FromSlice([]int{1, 3, 5}))
	out, err := stream.ToSlice(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{1, 2, 3, 4, 5, 6})
}

func TestConcatMapWithIsLazy(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	expanded := 0
	f := func(n int) stream.Source[int] {
		expanded++
		return stream.Single(n)
	}
	src := stream.ConcatMapWith(stream.Append[int], f, stream.FromSlice([]int{1, 2, 3}))
	testutil.AssertEqual(t, expanded, 0)

	x, v, err := src.Poll(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, v, stream.Yield)
	testutil.AssertEqual(t, x, 1)
	testutil.AssertEqual(t, expanded, 1)
	testutil.AssertNoError(t, src.Close())
}

func TestConcatMapWithCloseBeforePollReleasesOuter(t *testing.T) {
	outer := &closeCounter[int]{Source: stream.FromSlice([]int{1, 2})}
	src := stream.ConcatMapWith(stream.Append[int], stream.Single[int], outer)
	testutil.AssertNoError(t, src.Close())
	testutil.AssertEqual(t, outer.closes, 1)
}

func TestConcatPairsWithMergeSorts(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	merge := func(a, b stream.Source[int]) stream.Source[int] { return stream.MergeBy(intCmp, a, b) }
	src := stream.ConcatPairsWith(merge, stream.Single[int], stream.FromSlice([]int{5, 1, 7, 9, 2}))
	out, err := stream.ToSlice(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{1, 2, 5, 7, 9})
}

func TestIterateMapWithDepthFirst(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	children := map[int][]int{1: {2, 3}, 2: {4}}
	f := func(n int) stream.Source[int] { return stream.FromSlice(children[n]) }
	src := stream.IterateMapWith(stream.Append[int], f, stream.Single(1))
	out, err := stream.ToSlice(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{1, 2, 4, 3})
}

func TestIterateSmapMWithVisitedSet(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	// A cyclic graph: without the visited set the expansion never ends.
	edges := map[int][]int{1: {2}, 2: {3}, 3: {1, 4}, 4: nil}
	step := func(visited map[int]bool, n int) (map[int]bool, stream.Source[int], error) {
		visited[n] = true
		var next []int
		for _, m := range edges[n] {
			if !visited[m] {
				next = append(next, m)
			}
		}
		return visited, stream.FromSlice(next), nil
	}
	src := stream.IterateSmapMWith(stream.Append[int], step, map[int]bool{}, stream.Single(1))
	out, err := stream.ToSlice(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{1, 2, 3, 4})
}
