package fold

// Number constrains the numeric element types accepted by Sum.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Opt is an optional value produced by folds that may not see any input.
type Opt[A any] struct {
	Value A
	OK    bool
}

// Drain consumes every element and produces nothing.
func Drain[A any]() Fold[A, struct{}] {
	unit := func(struct{}) struct{} { return struct{}{} }
	return New(
		func() Step[struct{}, struct{}] { return Partial[struct{}, struct{}](struct{}{}) },
		func(s struct{}, _ A) Step[struct{}, struct{}] { return Partial[struct{}, struct{}](s) },
		unit, unit,
	)
}

// Count counts elements.
func Count[A any]() Fold[A, int] {
	id := func(n int) int { return n }
	return New(
		func() Step[int, int] { return Partial[int, int](0) },
		func(n int, _ A) Step[int, int] { return Partial[int, int](n + 1) },
		id, id,
	)
}

// Sum adds elements. The sum of no elements is zero.
func Sum[N Number]() Fold[N, N] {
	id := func(n N) N { return n }
	return New(
		func() Step[N, N] { return Partial[N, N](0) },
		func(acc N, a N) Step[N, N] { return Partial[N, N](acc + a) },
		id, id,
	)
}

// First terminates on the first element. An empty input yields Opt{OK: false}.
func First[A any]() Fold[A, Opt[A]] {
	id := func(o Opt[A]) Opt[A] { return o }
	return New(
		func() Step[Opt[A], Opt[A]] { return Partial[Opt[A], Opt[A]](Opt[A]{}) },
		func(_ Opt[A], a A) Step[Opt[A], Opt[A]] {
			return Done[Opt[A], Opt[A]](Opt[A]{Value: a, OK: true})
		},
		id, id,
	)
}

// Last keeps the most recent element.
func Last[A any]() Fold[A, Opt[A]] {
	id := func(o Opt[A]) Opt[A] { return o }
	return New(
		func() Step[Opt[A], Opt[A]] { return Partial[Opt[A], Opt[A]](Opt[A]{}) },
		func(_ Opt[A], a A) Step[Opt[A], Opt[A]] {
			return Partial[Opt[A], Opt[A]](Opt[A]{Value: a, OK: true})
		},
		id, id,
	)
}

// ToSlice collects all elements in order.
func ToSlice[A any]() Fold[A, []A] {
	id := func(xs []A) []A { return xs }
	return New(
		func() Step[[]A, []A] { return Partial[[]A, []A](nil) },
		func(xs []A, a A) Step[[]A, []A] { return Partial[[]A, []A](append(xs, a)) },
		id, id,
	)
}

// takeState pairs an inner run with the number of elements consumed so far.
type takeState[A, B any] struct {
	run *Run[A, B]
	n   int
}

// Take feeds at most n elements into inner, then finalizes it. Take(0, f)
// terminates immediately with f's finalized initial state.
func Take[A, B any](n int, inner Fold[A, B]) Fold[A, B] {
	return New(
		func() Step[takeState[A, B], B] {
			r := inner.Start()
			if n <= 0 || r.Done() {
				return Done[takeState[A, B], B](r.Final())
			}
			return Partial[takeState[A, B], B](takeState[A, B]{run: r})
		},
		func(s takeState[A, B], a A) Step[takeState[A, B], B] {
			if s.run.Step(a) {
				return Done[takeState[A, B], B](s.run.Value())
			}
			s.n++
			if s.n >= n {
				return Done[takeState[A, B], B](s.run.Final())
			}
			return Partial[takeState[A, B], B](s)
		},
		func(s takeState[A, B]) B { return s.run.Extract() },
		func(s takeState[A, B]) B { return s.run.Final() },
	)
}
