package stream

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/streamfold/pkg/metrics"
)

// instrumentedSource counts polls and verdicts on an underlying source.
type instrumentedSource[T any] struct {
	src    Source[T]
	polls  prometheus.Counter
	yields prometheus.Counter
	skips  prometheus.Counter
	stops  prometheus.Counter
}

// Instrument wraps src with Prometheus counters for polls and verdicts,
// labeled with name. A nil registry uses metrics.DefaultRegistry.
func Instrument[T any](src Source[T], name string, reg *metrics.Registry) Source[T] {
	if reg == nil {
		reg = metrics.DefaultRegistry
	}
	return &instrumentedSource[T]{
		src:    src,
		polls:  reg.StreamPolls.WithLabelValues(name),
		yields: reg.StreamYields.WithLabelValues(name),
		skips:  reg.StreamSkips.WithLabelValues(name),
		stops:  reg.StreamStops.WithLabelValues(name),
	}
}

func (s *instrumentedSource[T]) Poll(ctx context.Context) (T, Verdict, error) {
	s.polls.Inc()
	x, v, err := s.src.Poll(ctx)
	if err == nil {
		switch v {
		case Yield:
			s.yields.Inc()
		case Skip:
			s.skips.Inc()
		case Stop:
			s.stops.Inc()
		}
	}
	return x, v, err
}

func (s *instrumentedSource[T]) Close() error {
	return s.src.Close()
}
