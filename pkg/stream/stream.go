package stream

import (
	"context"
	"errors"

	"github.com/vnykmshr/streamfold/pkg/fold"
)

// ErrClosed is returned when polling a source after Close.
var ErrClosed = errors.New("stream source is closed")

// Verdict is the outcome of polling a Source.
type Verdict int

const (
	// Yield means an element was produced.
	Yield Verdict = iota

	// Skip means no element was produced this turn; poll again.
	Skip

	// Stop means the source is exhausted.
	Stop
)

func (v Verdict) String() string {
	switch v {
	case Yield:
		return "yield"
	case Skip:
		return "skip"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Source is a pollable element producer.
type Source[T any] interface {
	// Poll produces the next element, if any. On Yield the element is
	// valid; on Skip and Stop it is the zero value. A non-nil error is a
	// producer failure and terminates the stream.
	Poll(ctx context.Context) (T, Verdict, error)

	// Close releases the source's state, cascading to child sources.
	// It is idempotent and callable at any point.
	Close() error
}

// Unfold expands one seed value into a source of elements.
type Unfold[A, T any] func(seed A) Source[T]

// ToSlice drains src into a slice and closes it.
func ToSlice[T any](ctx context.Context, src Source[T]) ([]T, error) {
	defer func() { _ = src.Close() }()

	var out []T
	for {
		x, v, err := src.Poll(ctx)
		if err != nil {
			return nil, err
		}
		switch v {
		case Yield:
			out = append(out, x)
		case Skip:
		case Stop:
			return out, nil
		}
	}
}

// Drain polls src to exhaustion, discarding elements, and closes it.
func Drain[T any](ctx context.Context, src Source[T]) error {
	return Each(ctx, src, func(T) error { return nil })
}

// Each applies fn to every element of src and closes it. A non-nil error
// from fn stops the drain and is returned.
func Each[T any](ctx context.Context, src Source[T], fn func(T) error) error {
	defer func() { _ = src.Close() }()

	for {
		x, v, err := src.Poll(ctx)
		if err != nil {
			return err
		}
		switch v {
		case Yield:
			if err := fn(x); err != nil {
				return err
			}
		case Skip:
		case Stop:
			return nil
		}
	}
}

// Fold drives f over src until the fold terminates or src stops, then
// closes src. A fold finishing early stops consumption; leftover fold state
// at end of input is finalized.
func Fold[A, B any](ctx context.Context, src Source[A], f fold.Fold[A, B]) (B, error) {
	defer func() { _ = src.Close() }()

	run := f.Start()
	if run.Done() {
		return run.Value(), nil
	}
	for {
		a, v, err := src.Poll(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		switch v {
		case Yield:
			if run.Step(a) {
				return run.Value(), nil
			}
		case Skip:
		case Stop:
			return run.Final(), nil
		}
	}
}

// postscanSource runs a fold over src, yielding the fold's extract snapshot
// after every input. The stream ends after the fold terminates or the input
// stops; no trailing snapshot is emitted at end of input.
type postscanSource[A, B any] struct {
	src    Source[A]
	run    *fold.Run[A, B]
	ended  bool
	closed bool
}

// Postscan scans src with f, emitting one snapshot per input element.
func Postscan[A, B any](f fold.Fold[A, B], src Source[A]) Source[B] {
	return &postscanSource[A, B]{src: src, run: f.Start()}
}

func (p *postscanSource[A, B]) Poll(ctx context.Context) (B, Verdict, error) {
	var zero B
	if p.closed {
		return zero, Stop, ErrClosed
	}
	if p.ended || p.run.Done() {
		return zero, Stop, nil
	}
	a, v, err := p.src.Poll(ctx)
	if err != nil {
		return zero, Stop, err
	}
	switch v {
	case Yield:
		if p.run.Step(a) {
			p.ended = true
			return p.run.Value(), Yield, nil
		}
		return p.run.Extract(), Yield, nil
	case Skip:
		return zero, Skip, nil
	default:
		p.ended = true
		return zero, Stop, nil
	}
}

func (p *postscanSource[A, B]) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.src.Close()
}
