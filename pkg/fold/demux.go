package fold

import (
	"github.com/vnykmshr/streamfold/pkg/container"
	"github.com/vnykmshr/streamfold/pkg/metrics"
)

// KV is a generic key/value pair.
type KV[K comparable, V any] struct {
	Key K
	Val V
}

// Completed reports a per-key fold that finished.
type Completed[K comparable, B any] struct {
	Key   K
	Value B
}

// DemuxOut is the output of the demux and classify folds.
type DemuxOut[K comparable, B any] struct {
	// Completed is the most recent per-key completion, if any. Scan
	// consumers read it as the last completed key/value.
	Completed *Completed[K, B]

	// Residual holds results for keys whose fold is still in progress:
	// extract snapshots during a scan, finalized values at end of input.
	// Each snapshot is a fresh container, safe to retain.
	Residual container.Map[K, B]
}

// Options configures the demux engine's container backings and metrics.
// Zero value means hash-backed containers and no metrics.
type Options[K comparable, B any] struct {
	// NewState supplies the backing for in-progress fold storage. Fold
	// state is not serializable, so the redis backing does not fit here.
	NewState func() container.Map[K, any]

	// NewResult supplies the backing for result containers.
	NewResult func() container.Map[K, B]

	// Metrics enables key-lifecycle instrumentation under Name.
	Metrics *metrics.Registry
	Name    string
}

func (o Options[K, B]) withDefaults() Options[K, B] {
	if o.NewState == nil {
		o.NewState = container.NewHash[K, any]
	}
	if o.NewResult == nil {
		o.NewResult = container.NewHash[K, B]
	}
	if o.Name == "" {
		o.Name = "demux"
	}
	return o
}

// classifier is the shared engine behind Demux, Classify and the aggregation
// folds. It keeps one mutable map of in-progress runs (the interior-mutability
// rendition of the engine; snapshots handed out are copies unless an InPlace
// aggregator is used).
//
// Invariant: a key is in exactly one of absent, in-progress (active) or
// retired at any time.
type classifier[A any, K comparable, B any] struct {
	key     func(A) K
	getFold func(A) Fold[A, B]
	retire  bool
	active  container.Map[K, any] // K -> *Run[A, B]
	retired container.Set[K]
	last    *Completed[K, B]
	newRes  func() container.Map[K, B]
	metrics *metrics.Registry
	name    string
}

func newClassifier[A any, K comparable, B any](
	key func(A) K, getFold func(A) Fold[A, B], retire bool, opts Options[K, B],
) *classifier[A, K, B] {
	opts = opts.withDefaults()
	c := &classifier[A, K, B]{
		key:     key,
		getFold: getFold,
		retire:  retire,
		active:  opts.NewState(),
		newRes:  opts.NewResult,
		metrics: opts.Metrics,
		name:    opts.Name,
	}
	if retire {
		c.retired = container.NewSet[K]()
	}
	return c
}

// feed routes one element to its per-key fold. It returns the completion
// produced by this element, or nil if the key's fold wants more input or the
// element was dropped for a retired key.
func (c *classifier[A, K, B]) feed(a A) *Completed[K, B] {
	k := c.key(a)

	if boxed, ok := c.active.Lookup(k); ok {
		run := boxed.(*Run[A, B])
		if run.Step(a) {
			return c.complete(k, run.Value())
		}
		return nil
	}

	if c.retire && c.retired.Contains(k) {
		if c.metrics != nil {
			c.metrics.DemuxInputsDropped.WithLabelValues(c.name).Inc()
		}
		return nil
	}

	run := c.getFold(a).Start()
	if run.Done() {
		// The fold terminated without consuming; the element is dropped
		// but the key still counts as completed.
		return c.complete(k, run.Value())
	}
	if run.Step(a) {
		return c.complete(k, run.Value())
	}
	c.active.Insert(k, run)
	if c.metrics != nil {
		c.metrics.DemuxKeysActive.WithLabelValues(c.name).Inc()
	}
	return nil
}

func (c *classifier[A, K, B]) complete(k K, b B) *Completed[K, B] {
	if _, ok := c.active.Lookup(k); ok {
		c.active.Delete(k)
		if c.metrics != nil {
			c.metrics.DemuxKeysActive.WithLabelValues(c.name).Dec()
		}
	}
	if c.retire {
		c.retired.Add(k)
		if c.metrics != nil {
			c.metrics.DemuxKeysRetired.WithLabelValues(c.name).Inc()
		}
	}
	if c.metrics != nil {
		c.metrics.DemuxKeysCompleted.WithLabelValues(c.name).Inc()
	}
	c.last = &Completed[K, B]{Key: k, Value: b}
	return c.last
}

// run returns the in-progress instance for k, if any.
func (c *classifier[A, K, B]) run(k K) (*Run[A, B], bool) {
	boxed, ok := c.active.Lookup(k)
	if !ok {
		return nil, false
	}
	return boxed.(*Run[A, B]), true
}

// snapshot extracts every in-progress fold into a fresh result container.
func (c *classifier[A, K, B]) snapshot() container.Map[K, B] {
	out := c.newRes()
	_ = c.active.TraverseWithKey(func(k K, boxed any) error {
		out.Insert(k, boxed.(*Run[A, B]).Extract())
		return nil
	})
	return out
}

// settle finalizes every in-progress fold, releasing its state, and returns
// the results. The active map is left empty.
func (c *classifier[A, K, B]) settle() container.Map[K, B] {
	out := c.newRes()
	_ = c.active.TraverseWithKey(func(k K, boxed any) error {
		out.Insert(k, boxed.(*Run[A, B]).Final())
		return nil
	})
	c.active = c.active.Empty()
	if c.metrics != nil {
		c.metrics.DemuxKeysActive.WithLabelValues(c.name).Set(0)
	}
	return out
}

// Demux routes each element to a per-key fold chosen by getFold on the key's
// first occurrence. When a key's fold finishes, its result is reported once
// via DemuxOut.Completed and the key becomes eligible for a brand-new
// instance on its next occurrence.
func Demux[A any, K comparable, B any](key func(A) K, getFold func(A) Fold[A, B]) Fold[A, DemuxOut[K, B]] {
	return DemuxWith(key, getFold, Options[K, B]{})
}

// DemuxWith is Demux with configurable container backings and metrics.
func DemuxWith[A any, K comparable, B any](
	key func(A) K, getFold func(A) Fold[A, B], opts Options[K, B],
) Fold[A, DemuxOut[K, B]] {
	return demuxFold(key, getFold, false, opts)
}

// Classify is Demux with a single fold for all keys and retirement on
// finish: once a key's fold completes, later inputs for that key are
// dropped and the first result is preserved.
func Classify[A any, K comparable, B any](key func(A) K, f Fold[A, B]) Fold[A, DemuxOut[K, B]] {
	return ClassifyWith(key, f, Options[K, B]{})
}

// ClassifyWith is Classify with configurable container backings and metrics.
func ClassifyWith[A any, K comparable, B any](
	key func(A) K, f Fold[A, B], opts Options[K, B],
) Fold[A, DemuxOut[K, B]] {
	return demuxFold(key, func(A) Fold[A, B] { return f }, true, opts)
}

func demuxFold[A any, K comparable, B any](
	key func(A) K, getFold func(A) Fold[A, B], retire bool, opts Options[K, B],
) Fold[A, DemuxOut[K, B]] {
	return New(
		func() Step[*classifier[A, K, B], DemuxOut[K, B]] {
			return Partial[*classifier[A, K, B], DemuxOut[K, B]](newClassifier(key, getFold, retire, opts))
		},
		func(c *classifier[A, K, B], a A) Step[*classifier[A, K, B], DemuxOut[K, B]] {
			c.feed(a)
			return Partial[*classifier[A, K, B], DemuxOut[K, B]](c)
		},
		func(c *classifier[A, K, B]) DemuxOut[K, B] {
			return DemuxOut[K, B]{Completed: c.last, Residual: c.snapshot()}
		},
		func(c *classifier[A, K, B]) DemuxOut[K, B] {
			return DemuxOut[K, B]{Completed: c.last, Residual: c.settle()}
		},
	)
}
