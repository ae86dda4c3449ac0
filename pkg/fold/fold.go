package fold

// Step is the outcome of advancing a fold: either a Partial continuation
// state or a Done result.
type Step[S, B any] struct {
	state S
	out   B
	done  bool
}

// Partial returns a step that continues with state.
func Partial[S, B any](state S) Step[S, B] {
	return Step[S, B]{state: state}
}

// Done returns a terminal step carrying the fold's result.
func Done[S, B any](out B) Step[S, B] {
	return Step[S, B]{out: out, done: true}
}

// IsDone reports whether the step is terminal.
func (s Step[S, B]) IsDone() bool {
	return s.done
}

// State returns the continuation state of a Partial step.
func (s Step[S, B]) State() S {
	return s.state
}

// Value returns the result carried by a Done step.
func (s Step[S, B]) Value() B {
	return s.out
}

// Fold is an incremental accumulator over elements of type A producing a B.
//
// The internal state type is hidden from callers; New boxes it behind an
// opaque handle so folds with different state types compose freely.
type Fold[A, B any] struct {
	initial func() Step[any, B]
	step    func(state any, a A) Step[any, B]
	extract func(state any) B
	final   func(state any) B
}

// New creates a Fold from its four component functions.
//
// extract must be repeatable and must not finalize resources; final is
// called at most once per state instance and may release resources.
func New[A, S, B any](
	initial func() Step[S, B],
	step func(state S, a A) Step[S, B],
	extract func(state S) B,
	final func(state S) B,
) Fold[A, B] {
	box := func(st Step[S, B]) Step[any, B] {
		if st.done {
			return Done[any, B](st.out)
		}
		return Partial[any, B](st.state)
	}
	return Fold[A, B]{
		initial: func() Step[any, B] { return box(initial()) },
		step:    func(state any, a A) Step[any, B] { return box(step(state.(S), a)) },
		extract: func(state any) B { return extract(state.(S)) },
		final:   func(state any) B { return final(state.(S)) },
	}
}

// Run is a live instance of a Fold. It owns the fold's state exclusively and
// enforces the step protocol: Step after done panics, Final runs at most once.
type Run[A, B any] struct {
	f       Fold[A, B]
	state   any
	done    bool
	settled bool
	out     B
}

// Start creates a fresh running instance. The instance may be done
// immediately if the fold's initial step is terminal.
func (f Fold[A, B]) Start() *Run[A, B] {
	r := &Run[A, B]{f: f}
	st := f.initial()
	if st.done {
		r.done = true
		r.out = st.out
	} else {
		r.state = st.state
	}
	return r
}

// Step feeds one element and reports whether the fold finished on it.
func (r *Run[A, B]) Step(a A) bool {
	if r.done {
		panic("fold: Step called after fold reported done")
	}
	st := r.f.step(r.state, a)
	if st.done {
		r.done = true
		r.state = nil
		r.out = st.out
	} else {
		r.state = st.state
	}
	return r.done
}

// Done reports whether the fold has terminated.
func (r *Run[A, B]) Done() bool {
	return r.done
}

// Value returns the result of a terminated fold.
func (r *Run[A, B]) Value() B {
	if !r.done {
		panic("fold: Value called before fold reported done")
	}
	return r.out
}

// Extract returns a best-effort snapshot of the current result without
// consuming input or finalizing state. Safe to call repeatedly.
func (r *Run[A, B]) Extract() B {
	if r.done {
		return r.out
	}
	return r.f.extract(r.state)
}

// Final produces the result and releases the state. Calling it on an
// already-terminated fold returns the terminal value.
func (r *Run[A, B]) Final() B {
	if r.done {
		return r.out
	}
	if r.settled {
		panic("fold: Final called twice")
	}
	r.settled = true
	out := r.f.final(r.state)
	r.state = nil
	r.out = out
	r.done = true
	return out
}

// Drive feeds every element of xs through f and returns its result,
// finalizing leftover state if the fold never terminates on its own.
func Drive[A, B any](f Fold[A, B], xs []A) B {
	r := f.Start()
	if r.Done() {
		return r.Value()
	}
	for _, a := range xs {
		if r.Step(a) {
			return r.Value()
		}
	}
	return r.Final()
}
