/*
Package stream provides pull-based element sources and the combination
engine that merges many sources into one with precise interleaving,
ordering and termination semantics.

A Source is polled by its consumer and answers with a Verdict: Yield (an
element was produced), Skip (no element this turn; poll again) or Stop
(exhausted). The consumer drives the pace; nothing here spawns goroutines
or blocks beyond the producer-poll boundary. Round-robin and interleave
combinators are single-threaded fairness disciplines over polling order,
not concurrency.

Errors from an upstream producer propagate through every combinator
unchanged. Close is idempotent, cascades to child sources, and may be
called at any point to release held state without further polls.

Binary combinators: Append, Interleave, InterleaveFst, InterleaveMin,
InterleaveFstSuffix, InterleaveFstInfix, RoundRobin, MergeBy.

Expansion combinators take an Unfold, which expands one value into a
source: UnfoldMany, UnfoldInterleave, UnfoldRoundRobin, Interpose,
InterposeSuffix, Gintercalate, GintercalateSuffix, ConcatMapWith,
ConcatPairsWith, IterateMapWith, IterateSmapMWith.

ConcatPairsWith buffers the full finite sequence of inner sources and
combines them pairwise in a binary tree, bounding total combination cost
to O(N log N) for size-sensitive combiners like MergeBy; feeding it an
unbounded outer source is a precondition violation.
*/
package stream
