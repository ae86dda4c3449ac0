package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistryRegistersAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	r.FoldSteps.WithLabelValues("f").Add(3)
	r.DemuxKeysActive.WithLabelValues("d").Set(2)
	r.StreamPolls.WithLabelValues("s").Inc()

	if got := promtest.ToFloat64(r.FoldSteps.WithLabelValues("f")); got != 3 {
		t.Fatalf("fold steps: got %v, want 3", got)
	}
	if got := promtest.ToFloat64(r.DemuxKeysActive.WithLabelValues("d")); got != 2 {
		t.Fatalf("keys active: got %v, want 2", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("expected 3 metric families, got %d", len(families))
	}
}

func TestFromConfigDisabled(t *testing.T) {
	if r := FromConfig(Config{Enabled: false}); r != nil {
		t.Fatal("disabled config should yield a nil registry")
	}
}

func TestFromConfigNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := FromConfig(Config{Enabled: true, Registry: reg, Namespace: "custom"})
	r.StreamYields.WithLabelValues("s").Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected 1 metric family, got %d", len(families))
	}
	if got := families[0].GetName(); got != "custom_stream_yields_total" {
		t.Fatalf("metric name: got %q", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Enabled {
		t.Fatal("default config should enable metrics")
	}
	if cfg.Namespace != "streamfold" {
		t.Fatalf("namespace: got %q", cfg.Namespace)
	}
}
