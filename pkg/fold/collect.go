package fold

import (
	"github.com/vnykmshr/streamfold/pkg/container"
)

// collectState drives a classifier and accumulates finished results.
type collectState[A any, K comparable, B any] struct {
	c        *classifier[A, K, B]
	finished container.Map[K, B]
	acc      container.Map[K, B] // live output map, in-place variants only
}

// ToContainer runs Classify as a scan over the chosen container backing.
// Every extract is the union of a snapshot of all in-progress results with
// the accumulated finished results, finished winning on collision. The
// retirement invariant makes such a collision impossible; the bias keeps the
// winner deterministic regardless.
func ToContainer[A any, K comparable, B any](
	key func(A) K, f Fold[A, B], newMap func() container.Map[K, B],
) Fold[A, container.Map[K, B]] {
	return toContainer(key, f, Options[K, B]{NewResult: newMap}, false)
}

// ToContainerWith is ToContainer with full engine options.
func ToContainerWith[A any, K comparable, B any](
	key func(A) K, f Fold[A, B], opts Options[K, B],
) Fold[A, container.Map[K, B]] {
	return toContainer(key, f, opts, false)
}

// ToContainerInPlace is ToContainer backed by a single live container that
// is updated in place on every step. It avoids rebuilding a snapshot per
// extract, but a caller holding a previously extracted container will
// observe later mutation. Observably equivalent to ToContainer otherwise.
func ToContainerInPlace[A any, K comparable, B any](
	key func(A) K, f Fold[A, B], newMap func() container.Map[K, B],
) Fold[A, container.Map[K, B]] {
	return toContainer(key, f, Options[K, B]{NewResult: newMap}, true)
}

func toContainer[A any, K comparable, B any](
	key func(A) K, f Fold[A, B], opts Options[K, B], inPlace bool,
) Fold[A, container.Map[K, B]] {
	opts = opts.withDefaults()
	return New(
		func() Step[collectState[A, K, B], container.Map[K, B]] {
			s := collectState[A, K, B]{
				c:        newClassifier(key, func(A) Fold[A, B] { return f }, true, opts),
				finished: opts.NewResult(),
			}
			if inPlace {
				s.acc = opts.NewResult()
			}
			return Partial[collectState[A, K, B], container.Map[K, B]](s)
		},
		func(s collectState[A, K, B], a A) Step[collectState[A, K, B], container.Map[K, B]] {
			done := s.c.feed(a)
			switch {
			case done != nil:
				s.finished.Insert(done.Key, done.Value)
				if s.acc != nil {
					s.acc.Insert(done.Key, done.Value)
				}
			case s.acc != nil:
				if run, ok := s.c.run(s.c.key(a)); ok {
					s.acc.Insert(s.c.key(a), run.Extract())
				}
			}
			return Partial[collectState[A, K, B], container.Map[K, B]](s)
		},
		func(s collectState[A, K, B]) container.Map[K, B] {
			if s.acc != nil {
				return s.acc
			}
			out := s.c.snapshot()
			out.Union(s.finished)
			return out
		},
		func(s collectState[A, K, B]) container.Map[K, B] {
			if s.acc != nil {
				_ = s.c.active.TraverseWithKey(func(k K, boxed any) error {
					s.acc.Insert(k, boxed.(*Run[A, B]).Final())
					return nil
				})
				return s.acc
			}
			out := s.c.settle()
			out.Union(s.finished)
			return out
		},
	)
}

// ToMap is ToContainer over the hash backing.
func ToMap[A any, K comparable, B any](key func(A) K, f Fold[A, B]) Fold[A, container.Map[K, B]] {
	return ToContainer(key, f, container.NewHash[K, B])
}

// DemuxToMap collects every per-key result of Demux into one map. A key
// whose fold finishes and then reappears starts a fresh accumulation; the
// most recent run's result wins.
func DemuxToMap[A any, K comparable, B any](key func(A) K, getFold func(A) Fold[A, B]) Fold[A, container.Map[K, B]] {
	return DemuxToMapWith(key, getFold, Options[K, B]{})
}

// DemuxToMapWith is DemuxToMap with full engine options.
func DemuxToMapWith[A any, K comparable, B any](
	key func(A) K, getFold func(A) Fold[A, B], opts Options[K, B],
) Fold[A, container.Map[K, B]] {
	opts = opts.withDefaults()
	return New(
		func() Step[collectState[A, K, B], container.Map[K, B]] {
			s := collectState[A, K, B]{
				c:        newClassifier(key, getFold, false, opts),
				finished: opts.NewResult(),
			}
			return Partial[collectState[A, K, B], container.Map[K, B]](s)
		},
		func(s collectState[A, K, B], a A) Step[collectState[A, K, B], container.Map[K, B]] {
			if done := s.c.feed(a); done != nil {
				s.finished.Insert(done.Key, done.Value)
			}
			return Partial[collectState[A, K, B], container.Map[K, B]](s)
		},
		func(s collectState[A, K, B]) container.Map[K, B] {
			out := s.finished.Empty()
			out.Union(s.finished)
			out.Union(s.c.snapshot())
			return out
		},
		func(s collectState[A, K, B]) container.Map[K, B] {
			out := s.finished.Empty()
			out.Union(s.finished)
			out.Union(s.c.settle())
			return out
		},
	)
}

// KVToMap classifies KV pairs by key, feeding values into f.
func KVToMap[K comparable, V, B any](f Fold[V, B]) Fold[KV[K, V], container.Map[K, B]] {
	return ToMap(
		func(kv KV[K, V]) K { return kv.Key },
		LMap(func(kv KV[K, V]) V { return kv.Val }, f),
	)
}

// Frequency counts occurrences per distinct element.
func Frequency[K comparable]() Fold[K, container.Map[K, int]] {
	return ToMap(func(k K) K { return k }, Count[K]())
}

// ToSet collects the distinct elements.
func ToSet[K comparable]() Fold[K, container.Set[K]] {
	id := func(s container.Set[K]) container.Set[K] { return s }
	return New(
		func() Step[container.Set[K], container.Set[K]] {
			return Partial[container.Set[K], container.Set[K]](container.NewSet[K]())
		},
		func(s container.Set[K], a K) Step[container.Set[K], container.Set[K]] {
			s.Add(a)
			return Partial[container.Set[K], container.Set[K]](s)
		},
		id, id,
	)
}

// CountDistinct counts distinct elements.
func CountDistinct[K comparable]() Fold[K, int] {
	return Map(ToSet[K](), container.Set[K].Len)
}

// nubState tracks seen elements and the freshness of the latest one.
type nubState[K comparable] struct {
	seen container.Set[K]
	last Opt[K]
}

// Nub marks each element's first occurrence: after a step, extract yields
// Opt{OK: true} for an element not seen before and Opt{OK: false} for a
// duplicate. Scanning with Nub and dropping non-OK outputs deduplicates a
// stream in one pass.
func Nub[K comparable]() Fold[K, Opt[K]] {
	return New(
		func() Step[*nubState[K], Opt[K]] {
			return Partial[*nubState[K], Opt[K]](&nubState[K]{seen: container.NewSet[K]()})
		},
		func(s *nubState[K], a K) Step[*nubState[K], Opt[K]] {
			s.last = Opt[K]{Value: a, OK: s.seen.Add(a)}
			return Partial[*nubState[K], Opt[K]](s)
		},
		func(s *nubState[K]) Opt[K] { return s.last },
		func(s *nubState[K]) Opt[K] { return s.last },
	)
}
