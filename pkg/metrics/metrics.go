// Package metrics provides Prometheus instrumentation for streamfold components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for streamfold components.
type Registry struct {
	// Fold Metrics
	FoldSteps      *prometheus.CounterVec
	FoldsCompleted *prometheus.CounterVec

	// Demux/Classify Metrics
	DemuxKeysActive    *prometheus.GaugeVec
	DemuxKeysCompleted *prometheus.CounterVec
	DemuxKeysRetired   *prometheus.CounterVec
	DemuxInputsDropped *prometheus.CounterVec

	// Stream Metrics
	StreamPolls  *prometheus.CounterVec
	StreamYields *prometheus.CounterVec
	StreamSkips  *prometheus.CounterVec
	StreamStops  *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by streamfold components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, "streamfold")
}

// FromConfig creates a metrics registry from cfg. A disabled config yields a
// nil registry, which components taking an optional registry (fold.Options,
// for one) treat as metrics off.
func FromConfig(cfg Config) *Registry {
	if !cfg.Enabled {
		return nil
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "streamfold"
	}
	return newRegistry(reg, namespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		FoldSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fold",
				Name:      "steps_total",
				Help:      "Total number of elements fed into folds",
			},
			[]string{"fold_name"},
		),

		FoldsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fold",
				Name:      "completed_total",
				Help:      "Total number of folds that reported done",
			},
			[]string{"fold_name"},
		),

		DemuxKeysActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "demux",
				Name:      "keys_active",
				Help:      "Number of keys with an in-progress fold instance",
			},
			[]string{"demux_name"},
		),

		DemuxKeysCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "demux",
				Name:      "keys_completed_total",
				Help:      "Total number of per-key folds that finished",
			},
			[]string{"demux_name"},
		),

		DemuxKeysRetired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "demux",
				Name:      "keys_retired_total",
				Help:      "Total number of keys retired by classify",
			},
			[]string{"demux_name"},
		),

		DemuxInputsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "demux",
				Name:      "inputs_dropped_total",
				Help:      "Total number of inputs dropped for retired keys",
			},
			[]string{"demux_name"},
		),

		StreamPolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stream",
				Name:      "polls_total",
				Help:      "Total number of polls issued to instrumented sources",
			},
			[]string{"stream_name"},
		),

		StreamYields: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stream",
				Name:      "yields_total",
				Help:      "Total number of elements yielded by instrumented sources",
			},
			[]string{"stream_name"},
		),

		StreamSkips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stream",
				Name:      "skips_total",
				Help:      "Total number of skip verdicts from instrumented sources",
			},
			[]string{"stream_name"},
		),

		StreamStops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stream",
				Name:      "stops_total",
				Help:      "Total number of stop verdicts from instrumented sources",
			},
			[]string{"stream_name"},
		),
	}
}
