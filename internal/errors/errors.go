package errors

import (
	"fmt"
	"log/slog"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// Source identifies the subsystem a diagnostic originated from.
type Source string

// Diagnostic sources reported in tool responses.
const (
	SourceClusterInfo    Source = "cluster_info"
	SourceNodePoolState  Source = "node_pool_state"
	SourceUpgradeProfile Source = "upgrade_profile"
	SourceActivityLog    Source = "activity_log"
	SourceNodes          Source = "nodes"
	SourcePods           Source = "pods"
	SourceEvents         Source = "events"
	SourceMetrics        Source = "metrics"
	SourcePDBs           Source = "pdbs"
)

// Collector accumulates non-fatal diagnostics for a single tool
// request. It is request-scoped and used by one goroutine, so it
// carries no locking.
type Collector struct {
	cluster string
	errs    []model.ToolError
}

// NewCollector creates a Collector scoped to one cluster's request.
func NewCollector(cluster string) *Collector {
	return &Collector{cluster: cluster}
}

// Add records a collaborator failure as a partial-data diagnostic and
// logs it. Nil errors are ignored so call sites can pass errors through
// unconditionally.
func (c *Collector) Add(source Source, err error) {
	if err == nil {
		return
	}
	slog.Warn("collaborator call failed",
		"source", string(source),
		"cluster", c.cluster,
		"error", err,
	)
	c.errs = append(c.errs, model.ToolError{
		Message:     fmt.Sprintf("%s: %v", source, err),
		Source:      string(source),
		Cluster:     c.cluster,
		PartialData: true,
	})
}

// Errors returns the recorded diagnostics in report order.
func (c *Collector) Errors() []model.ToolError {
	return c.errs
}

// HasErrors reports whether any diagnostic has been recorded.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}
