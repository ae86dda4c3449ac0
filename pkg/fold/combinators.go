package fold

// Map transforms the output of f with fn.
func Map[A, B, C any](f Fold[A, B], fn func(B) C) Fold[A, C] {
	return Fold[A, C]{
		initial: func() Step[any, C] {
			st := f.initial()
			if st.done {
				return Done[any, C](fn(st.out))
			}
			return Partial[any, C](st.state)
		},
		step: func(state any, a A) Step[any, C] {
			st := f.step(state, a)
			if st.done {
				return Done[any, C](fn(st.out))
			}
			return Partial[any, C](st.state)
		},
		extract: func(state any) C { return fn(f.extract(state)) },
		final:   func(state any) C { return fn(f.final(state)) },
	}
}

// LMap transforms each input with fn before feeding it to f.
func LMap[A0, A, B any](fn func(A0) A, f Fold[A, B]) Fold[A0, B] {
	return Fold[A0, B]{
		initial: f.initial,
		step: func(state any, a0 A0) Step[any, B] {
			return f.step(state, fn(a0))
		},
		extract: f.extract,
		final:   f.final,
	}
}

// teeState holds the two child runs of TeeWith.
type teeState[A, B, C any] struct {
	left  *Run[A, B]
	right *Run[A, C]
}

// TeeWith feeds every input to both folds and combines their outputs once
// both have terminated. If the input ends first, stragglers are finalized.
func TeeWith[A, B, C, D any](combine func(B, C) D, left Fold[A, B], right Fold[A, C]) Fold[A, D] {
	return New(
		func() Step[teeState[A, B, C], D] {
			s := teeState[A, B, C]{left: left.Start(), right: right.Start()}
			if s.left.Done() && s.right.Done() {
				return Done[teeState[A, B, C], D](combine(s.left.Value(), s.right.Value()))
			}
			return Partial[teeState[A, B, C], D](s)
		},
		func(s teeState[A, B, C], a A) Step[teeState[A, B, C], D] {
			if !s.left.Done() {
				s.left.Step(a)
			}
			if !s.right.Done() {
				s.right.Step(a)
			}
			if s.left.Done() && s.right.Done() {
				return Done[teeState[A, B, C], D](combine(s.left.Value(), s.right.Value()))
			}
			return Partial[teeState[A, B, C], D](s)
		},
		func(s teeState[A, B, C]) D {
			return combine(s.left.Extract(), s.right.Extract())
		},
		func(s teeState[A, B, C]) D {
			return combine(s.left.Final(), s.right.Final())
		},
	)
}
