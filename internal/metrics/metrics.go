package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine-level Prometheus collectors, registered on the default registry and
// exposed by the HTTP adapter at /metrics.
var (
	// MessagesApplied counts protocol messages applied, by kind.
	MessagesApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_messages_applied_total",
			Help: "Total number of protocol messages applied, by message kind.",
		},
		[]string{"kind"},
	)

	// MessagesIgnored counts malformed envelopes dropped by the processor.
	MessagesIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "canopy_messages_ignored_total",
			Help: "Total number of malformed messages ignored by the processor.",
		},
	)

	// RendersTotal counts surface renders, by backend.
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_renders_total",
			Help: "Total number of surface renders, by renderer backend.",
		},
		[]string{"backend"},
	)

	// RenderDuration observes render latency, by backend.
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "canopy_render_duration_seconds",
			Help: "Duration of surface renders, by renderer backend.",
		},
		[]string{"backend"},
	)

	// StoreOps counts surface store operations, by operation and outcome.
	StoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canopy_store_operations_total",
			Help: "Total number of surface store operations, by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)

	// StoreOpDuration observes surface store latency, by operation.
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "canopy_store_operation_duration_seconds",
			Help: "Duration of surface store operations, by operation.",
		},
		[]string{"op"},
	)
)
