package fold_test

import (
	"testing"

	"github.com/vnykmshr/streamfold/internal/testutil"
	"github.com/vnykmshr/streamfold/pkg/container"
	"github.com/vnykmshr/streamfold/pkg/fold"
)

func even(n int) string {
	if n%2 == 0 {
		return "even"
	}
	return "odd"
}

func TestClassifyCountsPerKey(t *testing.T) {
	input := []string{"a", "b", "a", "c", "a", "b"}
	out := fold.Drive(fold.Classify(func(s string) string { return s }, fold.Count[string]()), input)

	testutil.AssertEqual(t, out.Residual.Len(), 3)
	for k, want := range map[string]int{"a": 3, "b": 2, "c": 1} {
		got, ok := out.Residual.Lookup(k)
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, got, want)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	out := fold.Drive(fold.Classify(even, fold.Count[int]()), nil)
	testutil.AssertEqual(t, out.Residual.Len(), 0)
	testutil.AssertEqual(t, out.Completed == nil, true)
}

func TestClassifyRetiresFinishedKeys(t *testing.T) {
	// Sum the first two values per key; later values for a finished key
	// are dropped and the first run's result is preserved.
	takeTwo := fold.Take(2, fold.Sum[int]())

	out := fold.Drive(fold.ToMap(even, takeTwo), []int{1, 3, 5, 7, 2, 4, 6})
	odd, ok := out.Lookup("odd")
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, odd, 4) // 1+3; 5 and 7 dropped
	evenSum, ok := out.Lookup("even")
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, evenSum, 6) // 2+4; 6 dropped
}

func TestDemuxRestartsFinishedKeys(t *testing.T) {
	takeTwo := func(int) fold.Fold[int, int] { return fold.Take(2, fold.Sum[int]()) }
	demux := fold.Demux(even, takeTwo)

	// odd finishes on 1+3, restarts on 5, still in progress with 5+7=12
	// pending when 9 completes it... 5+7 finishes the second run, and 9
	// starts a third left in progress at end of input.
	out := fold.Drive(demux, []int{1, 3, 5, 7, 9})
	testutil.AssertEqual(t, out.Completed.Key, "odd")
	testutil.AssertEqual(t, out.Completed.Value, 12)
	third, ok := out.Residual.Lookup("odd")
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, third, 9)
}

func TestDemuxCompletedSideOutput(t *testing.T) {
	takeTwo := func(int) fold.Fold[int, int] { return fold.Take(2, fold.Sum[int]()) }
	r := fold.Demux(even, takeTwo).Start()

	r.Step(1)
	testutil.AssertEqual(t, r.Extract().Completed == nil, true)
	r.Step(3)
	c := r.Extract().Completed
	testutil.AssertEqual(t, c != nil, true)
	testutil.AssertEqual(t, c.Key, "odd")
	testutil.AssertEqual(t, c.Value, 4)
}

func TestDemuxPerKeyFoldChoice(t *testing.T) {
	// The fold for a key is chosen from the first element seen for it.
	getFold := func(n int) fold.Fold[int, int] {
		if n%2 == 0 {
			return fold.Sum[int]()
		}
		return fold.Count[int]()
	}
	out := fold.Drive(fold.Demux(even, getFold), []int{2, 1, 4, 3, 6, 5})
	evens, _ := out.Residual.Lookup("even")
	testutil.AssertEqual(t, evens, 12) // summed
	odds, _ := out.Residual.Lookup("odd")
	testutil.AssertEqual(t, odds, 3) // counted
}

func TestDemuxSnapshotIsFresh(t *testing.T) {
	r := fold.Demux(even, func(int) fold.Fold[int, int] { return fold.Sum[int]() }).Start()
	r.Step(1)
	snap := r.Extract().Residual
	r.Step(3)
	v, _ := snap.Lookup("odd")
	testutil.AssertEqual(t, v, 1) // unaffected by the later step
	v, _ = r.Extract().Residual.Lookup("odd")
	testutil.AssertEqual(t, v, 4)
}

func TestClassifyWithTreeBacking(t *testing.T) {
	opts := fold.Options[string, int]{
		NewState:  func() container.Map[string, any] { return container.NewTree[string, any](func(a, b string) bool { return a < b }) },
		NewResult: func() container.Map[string, int] { return container.NewTree[string, int](func(a, b string) bool { return a < b }) },
	}
	out := fold.Drive(
		fold.ClassifyWith(func(s string) string { return s }, fold.Count[string](), opts),
		[]string{"b", "a", "b", "c"},
	)
	testutil.AssertSliceEqual(t, container.Keys(out.Residual), []string{"a", "b", "c"})
}
