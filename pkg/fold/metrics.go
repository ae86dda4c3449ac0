package fold

import (
	"github.com/vnykmshr/streamfold/pkg/metrics"
)

// Instrument wraps f with Prometheus counters for steps and completion,
// labeled with name. A nil registry uses metrics.DefaultRegistry.
func Instrument[A, B any](f Fold[A, B], name string, reg *metrics.Registry) Fold[A, B] {
	if reg == nil {
		reg = metrics.DefaultRegistry
	}
	steps := reg.FoldSteps.WithLabelValues(name)
	completed := reg.FoldsCompleted.WithLabelValues(name)

	return Fold[A, B]{
		initial: func() Step[any, B] {
			st := f.initial()
			if st.done {
				completed.Inc()
			}
			return st
		},
		step: func(state any, a A) Step[any, B] {
			steps.Inc()
			st := f.step(state, a)
			if st.done {
				completed.Inc()
			}
			return st
		},
		extract: f.extract,
		final:   f.final,
	}
}
