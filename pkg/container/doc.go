/*
Package container provides a minimal keyed-container abstraction used by the
fold demux/classify engine and its aggregation combinators.

The Map interface is deliberately small: insert, lookup, delete, right-biased
union, and a key-aware traversal. Three backings implement it with identical
semantics (only iteration order differs):

  - NewHash: a Go map; no ordering guarantee, best under high key cardinality
  - NewTree: a balanced tree (google/btree); stable ascending traversal
  - NewRedis: a Redis hash; values JSON-encoded, for durable result aggregation

Engine code never hard-codes a backing; callers choose one per key type and
workload.
*/
package container
