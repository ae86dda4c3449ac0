package stream

import (
	"context"
)

// unfoldManySource expands each outer element into an inner source and
// drains the inner sources one after another in outer order.
type unfoldManySource[A, T any] struct {
	u      Unfold[A, T]
	outer  Source[A]
	inner  Source[T]
	closed bool
}

// UnfoldMany expands every element of outer with u and concatenates the
// resulting inner sources in outer order.
func UnfoldMany[A, T any](u Unfold[A, T], outer Source[A]) Source[T] {
	return &unfoldManySource[A, T]{u: u, outer: outer}
}

func (s *unfoldManySource[A, T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		if s.inner != nil {
			x, v, err := s.inner.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				return x, Yield, nil
			case Skip:
				return zero, Skip, nil
			default:
				_ = s.inner.Close()
				s.inner = nil
			}
			continue
		}

		a, v, err := s.outer.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			s.inner = s.u(a)
		case Skip:
			return zero, Skip, nil
		default:
			return zero, Stop, nil
		}
	}
}

func (s *unfoldManySource[A, T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.outer.Close()
	if s.inner != nil {
		if ierr := s.inner.Close(); ierr != nil && err == nil {
			err = ierr
		}
	}
	return err
}

// unfoldSweepSource expands outer elements into inner sources and
// interleaves across them. While the outer source lasts, each new inner
// source yields one element and is pushed onto a stack. Once the outer
// source ends, the stack is swept: sources are popped from one stack onto
// the other, one element each, reversing direction at every pass
// (ping-pong through the active set).
//
// turnFair distinguishes the two fairness disciplines: when set, a Skip
// from an inner source spends that source's turn (UnfoldRoundRobin); when
// unset, the source is re-polled until it yields or stops
// (UnfoldInterleave).
type unfoldSweepSource[A, T any] struct {
	u        Unfold[A, T]
	outer    Source[A]
	done     bool // outer exhausted
	pending  Source[T]
	ls, rs   []Source[T]
	turnFair bool
	closed   bool
}

// UnfoldInterleave expands every element of outer with u and interleaves
// elements across the collected inner sources, most recent first, sweeping
// back and forth through the active set once the outer source ends.
func UnfoldInterleave[A, T any](u Unfold[A, T], outer Source[A]) Source[T] {
	return &unfoldSweepSource[A, T]{u: u, outer: outer}
}

// UnfoldRoundRobin is UnfoldInterleave with fairness over scheduling turns:
// a Skip from an inner source counts as that source's turn.
func UnfoldRoundRobin[A, T any](u Unfold[A, T], outer Source[A]) Source[T] {
	return &unfoldSweepSource[A, T]{u: u, outer: outer, turnFair: true}
}

func (s *unfoldSweepSource[A, T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		// A freshly expanded inner source owes its first element.
		if s.pending != nil {
			x, v, err := s.pending.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				s.ls = append(s.ls, s.pending)
				s.pending = nil
				return x, Yield, nil
			case Skip:
				if s.turnFair {
					s.ls = append(s.ls, s.pending)
					s.pending = nil
				}
				return zero, Skip, nil
			default:
				_ = s.pending.Close()
				s.pending = nil
			}
			continue
		}

		if !s.done {
			a, v, err := s.outer.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				s.pending = s.u(a)
			case Skip:
				return zero, Skip, nil
			default:
				_ = s.outer.Close()
				s.done = true
			}
			continue
		}

		// Sweep phase.
		if len(s.ls) == 0 {
			if len(s.rs) == 0 {
				return zero, Stop, nil
			}
			s.ls, s.rs = s.rs, s.ls
		}
		top := s.ls[len(s.ls)-1]
		x, v, err := top.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			s.ls = s.ls[:len(s.ls)-1]
			s.rs = append(s.rs, top)
			return x, Yield, nil
		case Skip:
			if s.turnFair {
				s.ls = s.ls[:len(s.ls)-1]
				s.rs = append(s.rs, top)
			}
			return zero, Skip, nil
		default:
			_ = top.Close()
			s.ls = s.ls[:len(s.ls)-1]
		}
	}
}

func (s *unfoldSweepSource[A, T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var first error
	if !s.done {
		first = s.outer.Close()
	}
	for _, src := range [][]Source[T]{s.ls, s.rs} {
		for _, inner := range src {
			if err := inner.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	if s.pending != nil {
		if err := s.pending.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// interposeSource joins the inner sources expanded from outer with a
// separator element: between consecutive inner sources (infix) or after
// each inner source (suffix).
type interposeSource[A, T any] struct {
	sep     T
	u       Unfold[A, T]
	outer   Source[A]
	inner   Source[T]
	suffix  bool
	started bool
	sepDue  bool
	closed  bool
}

// Interpose expands every element of outer with u and inserts sep between
// consecutive inner sources.
func Interpose[A, T any](sep T, u Unfold[A, T], outer Source[A]) Source[T] {
	return &interposeSource[A, T]{sep: sep, u: u, outer: outer}
}

// InterposeSuffix expands every element of outer with u and inserts sep
// after each inner source.
func InterposeSuffix[A, T any](sep T, u Unfold[A, T], outer Source[A]) Source[T] {
	return &interposeSource[A, T]{sep: sep, u: u, outer: outer, suffix: true}
}

func (s *interposeSource[A, T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		if s.sepDue {
			s.sepDue = false
			return s.sep, Yield, nil
		}

		if s.inner != nil {
			x, v, err := s.inner.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				return x, Yield, nil
			case Skip:
				return zero, Skip, nil
			default:
				_ = s.inner.Close()
				s.inner = nil
				if s.suffix {
					s.sepDue = true
				}
			}
			continue
		}

		a, v, err := s.outer.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			s.inner = s.u(a)
			if !s.suffix && s.started {
				s.sepDue = true
			}
			s.started = true
		case Skip:
			return zero, Skip, nil
		default:
			return zero, Stop, nil
		}
	}
}

func (s *interposeSource[A, T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.outer.Close()
	if s.inner != nil {
		if ierr := s.inner.Close(); ierr != nil && err == nil {
			err = ierr
		}
	}
	return err
}

// gintercalatePhase tracks which sub-stream a gintercalate is draining.
type gintercalatePhase int

const (
	gPollFirst gintercalatePhase = iota
	gInFirst
	gLookahead
	gPollSecond
	gInSecond
	gDone
)

// gintercalateSource alternates the expansions of two independently
// unfolded outer sources: inner(a1) inner(b1) inner(a2) inner(b2) ...
// In infix mode a one-seed lookahead on the first source keeps
// second-source expansions strictly between first-source expansions; in
// suffix mode each first expansion is followed by one second expansion.
// Either way the stream stops when the first source stops, and the first
// source keeps going alone if the second stops early.
type gintercalateSource[A, B, T any] struct {
	u1     Unfold[A, T]
	s1     Source[A]
	u2     Unfold[B, T]
	s2     Source[B]
	suffix bool

	inner   Source[T]
	phase   gintercalatePhase
	pending A
	s2Done  bool
	closed  bool
}

// Gintercalate interleaves the expansions of two unfolded sources, with
// second-source expansions strictly between first-source expansions.
func Gintercalate[A, B, T any](u1 Unfold[A, T], s1 Source[A], u2 Unfold[B, T], s2 Source[B]) Source[T] {
	return &gintercalateSource[A, B, T]{u1: u1, s1: s1, u2: u2, s2: s2}
}

// GintercalateSuffix interleaves the expansions of two unfolded sources,
// following each first-source expansion with one second-source expansion.
func GintercalateSuffix[A, B, T any](u1 Unfold[A, T], s1 Source[A], u2 Unfold[B, T], s2 Source[B]) Source[T] {
	return &gintercalateSource[A, B, T]{u1: u1, s1: s1, u2: u2, s2: s2, suffix: true}
}

func (g *gintercalateSource[A, B, T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if g.closed {
		return zero, Stop, ErrClosed
	}
	for {
		switch g.phase {
		case gPollFirst:
			a, v, err := g.s1.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				g.inner = g.u1(a)
				g.phase = gInFirst
			case Skip:
				return zero, Skip, nil
			default:
				g.phase = gDone
				return zero, Stop, g.shutdown()
			}

		case gInFirst:
			x, v, err := g.inner.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				return x, Yield, nil
			case Skip:
				return zero, Skip, nil
			default:
				_ = g.inner.Close()
				g.inner = nil
				if g.suffix {
					g.phase = gPollSecond
				} else {
					g.phase = gLookahead
				}
			}

		case gLookahead:
			// Infix: the next first-source seed must exist before a
			// second-source expansion may be emitted.
			a, v, err := g.s1.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				g.pending = a
				g.phase = gPollSecond
			case Skip:
				return zero, Skip, nil
			default:
				g.phase = gDone
				return zero, Stop, g.shutdown()
			}

		case gPollSecond:
			if g.s2Done {
				if g.suffix {
					g.phase = gPollFirst
				} else {
					g.inner = g.u1(g.pending)
					g.phase = gInFirst
				}
				continue
			}
			b, v, err := g.s2.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				g.inner = g.u2(b)
				g.phase = gInSecond
			case Skip:
				return zero, Skip, nil
			default:
				_ = g.s2.Close()
				g.s2Done = true
			}

		case gInSecond:
			x, v, err := g.inner.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				return x, Yield, nil
			case Skip:
				return zero, Skip, nil
			default:
				_ = g.inner.Close()
				g.inner = nil
				if g.suffix {
					g.phase = gPollFirst
				} else {
					g.inner = g.u1(g.pending)
					g.phase = gInFirst
				}
			}

		default: // gDone
			return zero, Stop, nil
		}
	}
}

// shutdown closes everything still open.
func (g *gintercalateSource[A, B, T]) shutdown() error {
	first := g.s1.Close()
	if !g.s2Done {
		if err := g.s2.Close(); err != nil && first == nil {
			first = err
		}
	}
	if g.inner != nil {
		if err := g.inner.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (g *gintercalateSource[A, B, T]) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	return g.shutdown()
}

// ConcatMapWith maps f over every element of outer and folds the resulting
// inner sources together with combine, right-associatively and lazily: the
// next outer element is only consumed when combine's right operand is first
// polled. With Append as the combiner the flattening in appendSource keeps
// total cost O(N); size-sensitive combiners degrade and are better served
// by ConcatPairsWith.
func ConcatMapWith[A, T any](
	combine func(Source[T], Source[T]) Source[T],
	f func(A) Source[T],
	outer Source[A],
) Source[T] {
	var next func(ctx context.Context) (Source[T], error)
	next = func(ctx context.Context) (Source[T], error) {
		for {
			a, v, err := outer.Poll(ctx)
			if err != nil {
				_ = outer.Close()
				return nil, err
			}
			switch v {
			case Yield:
				rest := &lazySource[T]{make: next, onClose: outer.Close}
				return combine(f(a), rest), nil
			case Skip:
				continue
			default:
				_ = outer.Close()
				return Empty[T](), nil
			}
		}
	}
	return &lazySource[T]{make: next, onClose: outer.Close}
}

// ConcatPairsWith maps f over every element of outer and combines the
// resulting inner sources pairwise in a binary tree: adjacent pairs first,
// then pairs of pairs, bounding total combination cost to O(N log N) for
// combiners whose per-element cost grows with operand size (MergeBy and
// friends). The full finite sequence of inner sources is buffered before
// reduction; feeding an unbounded outer source is a precondition violation.
func ConcatPairsWith[A, T any](
	combine func(Source[T], Source[T]) Source[T],
	f func(A) Source[T],
	outer Source[A],
) Source[T] {
	build := func(ctx context.Context) (Source[T], error) {
		var parts []Source[T]
		for {
			a, v, err := outer.Poll(ctx)
			if err != nil {
				for _, p := range parts {
					_ = p.Close()
				}
				_ = outer.Close()
				return nil, err
			}
			if v == Yield {
				parts = append(parts, f(a))
				continue
			}
			if v == Skip {
				continue
			}
			break
		}
		_ = outer.Close()

		if len(parts) == 0 {
			return Empty[T](), nil
		}
		for len(parts) > 1 {
			paired := make([]Source[T], 0, (len(parts)+1)/2)
			for i := 0; i+1 < len(parts); i += 2 {
				paired = append(paired, combine(parts[i], parts[i+1]))
			}
			if len(parts)%2 == 1 {
				paired = append(paired, parts[len(parts)-1])
			}
			parts = paired
		}
		return parts[0], nil
	}
	return &lazySource[T]{make: build, onClose: outer.Close}
}

// IterateMapWith expands seed depth-first: every element is emitted, then f
// maps it to a child source which is recursively expanded the same way,
// all combined with combine. There is no cycle detection; use
// IterateSmapMWith to thread visited-state through the traversal.
func IterateMapWith[T any](
	combine func(Source[T], Source[T]) Source[T],
	f func(T) Source[T],
	seed Source[T],
) Source[T] {
	var expand func(T) Source[T]
	expand = func(x T) Source[T] {
		return Cons(x, ConcatMapWith(combine, expand, f(x)))
	}
	return ConcatMapWith(combine, expand, seed)
}

// IterateSmapMWith is IterateMapWith with caller-supplied traversal state:
// step receives the state and the element being expanded and returns the
// next state and the element's child source. The state cell is shared
// across the whole traversal and visited in depth-first emission order, so
// a visited-set carried in it prevents infinite expansion of cyclic
// structures.
func IterateSmapMWith[S, T any](
	combine func(Source[T], Source[T]) Source[T],
	step func(state S, x T) (S, Source[T], error),
	initial S,
	seed Source[T],
) Source[T] {
	state := initial
	var expand func(T) Source[T]
	expand = func(x T) Source[T] {
		children := &lazySource[T]{
			make: func(ctx context.Context) (Source[T], error) {
				next, kids, err := step(state, x)
				if err != nil {
					return nil, err
				}
				state = next
				return ConcatMapWith(combine, expand, kids), nil
			},
		}
		return Cons(x, children)
	}
	return ConcatMapWith(combine, expand, seed)
}
