package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for self-monitoring.
// It uses a custom registry to avoid polluting the global default.
type Metrics struct {
	Registry *prometheus.Registry

	// Tool metrics
	ToolInvocationsTotal *prometheus.CounterVec
	ToolDuration         *prometheus.HistogramVec

	// Collaborator metrics
	CollaboratorFailuresTotal *prometheus.CounterVec

	// Fan-out metrics
	FanOutClustersTotal  *prometheus.CounterVec
	FanOutDuration       *prometheus.HistogramVec
	PartialDataResponses prometheus.Counter
}

// NewMetrics creates a Metrics instance with everything registered on a
// custom registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		ToolInvocationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetscope_tool_invocations_total",
			Help: "Total number of tool invocations.",
		}, []string{"tool", "status"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetscope_tool_duration_seconds",
			Help:    "Duration of tool invocations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),

		CollaboratorFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetscope_collaborator_failures_total",
			Help: "Total number of collaborator call failures demoted to partial-data diagnostics.",
		}, []string{"source"}),

		FanOutClustersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetscope_fanout_clusters_total",
			Help: "Total number of per-cluster fan-out invocations.",
		}, []string{"status"}),
		FanOutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetscope_fanout_duration_seconds",
			Help:    "Duration of fleet fan-out operations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		PartialDataResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleetscope_partial_data_responses_total",
			Help: "Total number of responses carrying partial-data diagnostics.",
		}),
	}

	reg.MustRegister(
		m.ToolInvocationsTotal,
		m.ToolDuration,
		m.CollaboratorFailuresTotal,
		m.FanOutClustersTotal,
		m.FanOutDuration,
		m.PartialDataResponses,
	)

	return m
}
