package stream_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/streamfold/internal/testutil"
	"github.com/vnykmshr/streamfold/pkg/metrics"
	"github.com/vnykmshr/streamfold/pkg/stream"
)

func TestInstrumentCountsVerdicts(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	reg := metrics.NewRegistry(prometheus.NewRegistry())
	src := stream.Instrument(stream.FromSlice([]int{1, 2}), "test", reg)

	out, err := stream.ToSlice(ctx, src)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, out, []int{1, 2})

	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamPolls.WithLabelValues("test")), 3.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamYields.WithLabelValues("test")), 2.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamStops.WithLabelValues("test")), 1.0)
	testutil.AssertEqual(t, promtest.ToFloat64(reg.StreamSkips.WithLabelValues("test")), 0.0)
}
