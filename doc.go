/*
Package streamfold provides composable, single-pass stream processing for Go:
incremental folds, keyed demultiplexing, and stream-combination combinators
with precise interleaving and termination semantics.

Folds (pkg/fold):
  - fold: Incremental accumulators with a Partial/Done step protocol
  - demux/classify: One fold per distinct key, created and retired dynamically
  - aggregation: ToMap, Frequency, ToSet, CountDistinct and friends

Containers (pkg/container):
  - hash: Go map backing
  - tree: Ordered backing with sorted traversal (google/btree)
  - redis: Redis hash backing for result aggregation

Streams (pkg/stream):
  - sources: Pull-based element producers (slice, channel, generator)
  - combination: Append, interleave, merge, round-robin, intercalate
  - expansion: UnfoldMany, ConcatMapWith, ConcatPairsWith, IterateMapWith

Example usage:

	import (
		"github.com/vnykmshr/streamfold/pkg/fold"
		"github.com/vnykmshr/streamfold/pkg/stream"
	)

	src := stream.FromSlice([]string{"a", "b", "a", "c", "a"})
	freq, _ := stream.Fold(context.Background(), src, fold.Frequency[string]())
	n, _ := freq.Lookup("a") // 3
*/
package streamfold
