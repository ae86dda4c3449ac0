package stream

import (
	"context"
)

// appendSource drains its sources one after another. Nested appends are
// spliced into one flat list, so advancing between sources is O(1)
// amortized regardless of how the appends were associated.
type appendSource[T any] struct {
	srcs   []Source[T]
	idx    int
	closed bool
}

// Append fully drains first, then fully drains second.
func Append[T any](first, second Source[T]) Source[T] {
	s := &appendSource[T]{srcs: make([]Source[T], 0, 2)}
	s.push(first)
	s.push(second)
	return s
}

func (s *appendSource[T]) push(src Source[T]) {
	if a, ok := src.(*appendSource[T]); ok && !a.closed {
		s.srcs = append(s.srcs, a.srcs[a.idx:]...)
		return
	}
	s.srcs = append(s.srcs, src)
}

func (s *appendSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		if s.idx >= len(s.srcs) {
			return zero, Stop, nil
		}
		cur := s.srcs[s.idx]

		// Force deferred tails so freshly built appends splice flat
		// instead of stacking.
		if l, ok := cur.(*lazySource[T]); ok && !l.closed {
			if l.src == nil {
				forced, err := l.make(ctx)
				if err != nil {
					return zero, Stop, err
				}
				l.src = forced
			}
			if a, ok := l.src.(*appendSource[T]); ok && !a.closed {
				rest := make([]Source[T], 0, len(a.srcs)-a.idx)
				rest = append(rest, a.srcs[a.idx:]...)
				s.srcs = append(s.srcs[:s.idx], append(rest, s.srcs[s.idx+1:]...)...)
				continue
			}
			cur = l
		}

		x, v, err := cur.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			return x, Yield, nil
		case Skip:
			return zero, Skip, nil
		default:
			_ = cur.Close()
			s.idx++
		}
	}
}

func (s *appendSource[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var first error
	for _, src := range s.srcs[s.idx:] {
		if err := src.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// interleavePolicy selects what happens when one side of an interleave
// stops.
type interleavePolicy int

const (
	// drainSurvivor keeps draining whichever stream is left.
	drainSurvivor interleavePolicy = iota

	// stopOnEither ends the stream as soon as one side stops.
	stopOnEither

	// firstDecides ends the stream when the first side stops and drains
	// the first side alone if the second stops early.
	firstDecides
)

// interleaveSource alternates one element from each side, starting with the
// first, applying its policy when a side stops.
type interleaveSource[T any] struct {
	a, b   Source[T]
	policy interleavePolicy
	turn   int // 0 = a, 1 = b
	aDone  bool
	bDone  bool
	closed bool
}

// Interleave alternates elements of a and b; once one stops, the remainder
// of the other is drained exclusively.
func Interleave[T any](a, b Source[T]) Source[T] {
	return &interleaveSource[T]{a: a, b: b, policy: drainSurvivor}
}

// InterleaveMin alternates elements of a and b, stopping entirely as soon
// as either stops.
func InterleaveMin[T any](a, b Source[T]) Source[T] {
	return &interleaveSource[T]{a: a, b: b, policy: stopOnEither}
}

// InterleaveFst alternates elements of a and b, stopping entirely (and
// discarding the rest of b) once a stops; if b stops first, the remainder
// of a is drained alone.
func InterleaveFst[T any](a, b Source[T]) Source[T] {
	return &interleaveSource[T]{a: a, b: b, policy: firstDecides}
}

// InterleaveFstSuffix alternates starting with a, suffixing each element of
// a with one of b. If b runs out first, a is drained alone; if a runs out
// first, the stream stops and the rest of b is dropped.
func InterleaveFstSuffix[T any](a, b Source[T]) Source[T] {
	return &interleaveSource[T]{a: a, b: b, policy: firstDecides}
}

func (s *interleaveSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		if s.aDone && s.bDone {
			return zero, Stop, nil
		}

		pollA := s.turn == 0
		if s.aDone {
			pollA = false
		} else if s.bDone {
			pollA = true
		}

		side := s.a
		if !pollA {
			side = s.b
		}

		x, v, err := side.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			if pollA {
				s.turn = 1
			} else {
				s.turn = 0
			}
			return x, Yield, nil
		case Skip:
			return zero, Skip, nil
		default:
			_ = side.Close()
			if pollA {
				s.aDone = true
				s.turn = 1
			} else {
				s.bDone = true
				s.turn = 0
			}
			switch s.policy {
			case stopOnEither:
				return zero, Stop, s.stopAll()
			case firstDecides:
				if pollA {
					return zero, Stop, s.stopAll()
				}
			}
		}
	}
}

// stopAll closes whatever is still open and marks both sides done.
func (s *interleaveSource[T]) stopAll() error {
	var first error
	if !s.aDone {
		first = s.a.Close()
	}
	if !s.bDone {
		if err := s.b.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.aDone, s.bDone = true, true
	return first
}

func (s *interleaveSource[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.stopAll()
}

// interleaveInfixSource interleaves elements of b strictly between elements
// of a: the stream starts and ends with an element of a, b never trails,
// and a may outlast b. A one-element lookahead on a decides whether another
// separator is due.
type interleaveInfixSource[T any] struct {
	a, b    Source[T]
	pending T
	havePnd bool
	sepDue  bool
	started bool
	bDone   bool
	closed  bool
}

// InterleaveFstInfix alternates starting with a, placing one element of b
// between consecutive elements of a. The stream stops when a stops; no
// element of b trails the last element of a.
func InterleaveFstInfix[T any](a, b Source[T]) Source[T] {
	return &interleaveInfixSource[T]{a: a, b: b}
}

func (s *interleaveInfixSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		// Emit the separator owed from the previous lookahead.
		if s.sepDue {
			x, v, err := s.b.Poll(ctx)
			if err != nil {
				return zero, Stop, err
			}
			switch v {
			case Yield:
				s.sepDue = false
				return x, Yield, nil
			case Skip:
				return zero, Skip, nil
			default:
				_ = s.b.Close()
				s.bDone = true
				s.sepDue = false
			}
			continue
		}

		// Emit the buffered a element, then look ahead again.
		if s.havePnd {
			x := s.pending
			s.havePnd = false
			return x, Yield, nil
		}

		x, v, err := s.a.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			if !s.started {
				s.started = true
				return x, Yield, nil
			}
			s.pending = x
			s.havePnd = true
			if !s.bDone {
				s.sepDue = true
			}
		case Skip:
			return zero, Skip, nil
		default:
			_ = s.a.Close()
			if !s.bDone {
				_ = s.b.Close()
				s.bDone = true
			}
			return zero, Stop, nil
		}
	}
}

func (s *interleaveInfixSource[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.a.Close()
	if !s.bDone {
		if berr := s.b.Close(); berr != nil && err == nil {
			err = berr
		}
	}
	return err
}

// roundRobinSource gives each side one poll per turn. A Skip result spends
// the side's turn just like a Yield, so scheduling is fair over execution,
// not output.
type roundRobinSource[T any] struct {
	a, b   Source[T]
	turn   int
	aDone  bool
	bDone  bool
	closed bool
}

// RoundRobin polls a and b alternately, one poll per turn each; once one
// stops, the other is drained exclusively.
func RoundRobin[T any](a, b Source[T]) Source[T] {
	return &roundRobinSource[T]{a: a, b: b}
}

func (s *roundRobinSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	for {
		if s.aDone && s.bDone {
			return zero, Stop, nil
		}

		pollA := s.turn == 0
		if s.aDone {
			pollA = false
		} else if s.bDone {
			pollA = true
		}

		side := s.a
		if !pollA {
			side = s.b
		}

		x, v, err := side.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}

		// The poll consumed the side's turn regardless of its verdict.
		if pollA {
			s.turn = 1
		} else {
			s.turn = 0
		}

		switch v {
		case Yield:
			return x, Yield, nil
		case Skip:
			return zero, Skip, nil
		default:
			_ = side.Close()
			if pollA {
				s.aDone = true
			} else {
				s.bDone = true
			}
		}
	}
}

func (s *roundRobinSource[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.a.Close()
	if berr := s.b.Close(); berr != nil && err == nil {
		err = berr
	}
	return err
}

// mergeSource merges two streams by comparing their buffered heads.
type mergeSource[T any] struct {
	cmp    func(a, b T) int
	a, b   Source[T]
	aHead  T
	bHead  T
	aOK    bool
	bOK    bool
	aDone  bool
	bDone  bool
	closed bool
}

// MergeBy merges a and b, repeatedly emitting the lesser of their current
// heads according to cmp. Ties go to a. Both streams are drained.
func MergeBy[T any](cmp func(a, b T) int, a, b Source[T]) Source[T] {
	return &mergeSource[T]{cmp: cmp, a: a, b: b}
}

func (s *mergeSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}

	if !s.aOK && !s.aDone {
		x, v, err := s.a.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			s.aHead, s.aOK = x, true
		case Skip:
			return zero, Skip, nil
		default:
			_ = s.a.Close()
			s.aDone = true
		}
	}
	if !s.bOK && !s.bDone {
		x, v, err := s.b.Poll(ctx)
		if err != nil {
			return zero, Stop, err
		}
		switch v {
		case Yield:
			s.bHead, s.bOK = x, true
		case Skip:
			return zero, Skip, nil
		default:
			_ = s.b.Close()
			s.bDone = true
		}
	}

	switch {
	case s.aOK && s.bOK:
		if s.cmp(s.aHead, s.bHead) <= 0 {
			s.aOK = false
			return s.aHead, Yield, nil
		}
		s.bOK = false
		return s.bHead, Yield, nil
	case s.aOK:
		s.aOK = false
		return s.aHead, Yield, nil
	case s.bOK:
		s.bOK = false
		return s.bHead, Yield, nil
	default:
		return zero, Stop, nil
	}
}

func (s *mergeSource[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var first error
	if !s.aDone {
		first = s.a.Close()
	}
	if !s.bDone {
		if err := s.b.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
