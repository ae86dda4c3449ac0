package stream

import (
	"context"
)

// sliceSource yields the elements of a slice in order.
type sliceSource[T any] struct {
	slice  []T
	index  int
	closed bool
}

// FromSlice creates a source over the elements of slice.
func FromSlice[T any](slice []T) Source[T] {
	return &sliceSource[T]{slice: slice}
}

func (s *sliceSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if s.closed {
		return zero, Stop, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return zero, Stop, err
	}
	if s.index >= len(s.slice) {
		return zero, Stop, nil
	}
	x := s.slice[s.index]
	s.index++
	return x, Yield, nil
}

func (s *sliceSource[T]) Close() error {
	s.closed = true
	return nil
}

// Empty creates a source with no elements.
func Empty[T any]() Source[T] {
	return &sliceSource[T]{}
}

// Single creates a source yielding exactly one element.
func Single[T any](x T) Source[T] {
	return &sliceSource[T]{slice: []T{x}}
}

// repeatSource yields the same element forever.
type repeatSource[T any] struct {
	x      T
	closed bool
}

// Repeat creates an infinite source of x.
func Repeat[T any](x T) Source[T] {
	return &repeatSource[T]{x: x}
}

func (r *repeatSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if r.closed {
		return zero, Stop, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return zero, Stop, err
	}
	return r.x, Yield, nil
}

func (r *repeatSource[T]) Close() error {
	r.closed = true
	return nil
}

// channelSource bridges a Go channel into the poll contract. A closed
// channel stops the stream; an unready channel blocks in Poll until the
// channel is ready or ctx is done.
type channelSource[T any] struct {
	ch     <-chan T
	closed bool
}

// FromChannel creates a source reading from ch until it is closed.
func FromChannel[T any](ch <-chan T) Source[T] {
	return &channelSource[T]{ch: ch}
}

func (c *channelSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if c.closed {
		return zero, Stop, ErrClosed
	}
	select {
	case x, ok := <-c.ch:
		if !ok {
			return zero, Stop, nil
		}
		return x, Yield, nil
	case <-ctx.Done():
		return zero, Stop, ctx.Err()
	}
}

func (c *channelSource[T]) Close() error {
	c.closed = true
	return nil
}

// consSource yields one element, then delegates to the rest.
type consSource[T any] struct {
	head    T
	emitted bool
	rest    Source[T]
}

// Cons prepends x to rest.
func Cons[T any](x T, rest Source[T]) Source[T] {
	return &consSource[T]{head: x, rest: rest}
}

func (c *consSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	if !c.emitted {
		c.emitted = true
		return c.head, Yield, nil
	}
	return c.rest.Poll(ctx)
}

func (c *consSource[T]) Close() error {
	return c.rest.Close()
}

// mapSource applies fn to each element of the underlying source.
type mapSource[A, T any] struct {
	src Source[A]
	fn  func(A) T
}

// Map transforms each element of src with fn.
func Map[A, T any](src Source[A], fn func(A) T) Source[T] {
	return &mapSource[A, T]{src: src, fn: fn}
}

func (m *mapSource[A, T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	a, v, err := m.src.Poll(ctx)
	if err != nil || v != Yield {
		return zero, v, err
	}
	return m.fn(a), Yield, nil
}

func (m *mapSource[A, T]) Close() error {
	return m.src.Close()
}

// lazySource defers construction of its underlying source until the first
// poll. Closing before the first poll runs onClose instead, releasing
// whatever the deferred constructor captured.
type lazySource[T any] struct {
	make    func(ctx context.Context) (Source[T], error)
	onClose func() error
	src     Source[T]
	closed  bool
}

func (l *lazySource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	var zero T
	if l.closed {
		return zero, Stop, ErrClosed
	}
	if l.src == nil {
		src, err := l.make(ctx)
		if err != nil {
			return zero, Stop, err
		}
		l.src = src
	}
	return l.src.Poll(ctx)
}

func (l *lazySource[T]) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.src != nil {
		return l.src.Close()
	}
	if l.onClose != nil {
		return l.onClose()
	}
	return nil
}
