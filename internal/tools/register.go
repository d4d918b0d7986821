package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fleetscope/fleetscope/internal/scrub"
)

type clusterInput struct {
	ClusterID string `json:"cluster_id" jsonschema:"Cluster ID (environment-region-name) or \"all\" for every configured cluster"`
}

type podHealthInput struct {
	ClusterID       string `json:"cluster_id" jsonschema:"Cluster ID (environment-region-name) or \"all\""`
	Namespace       string `json:"namespace,omitempty" jsonschema:"Namespace to inspect (empty for all namespaces)"`
	StatusFilter    string `json:"status_filter,omitempty" jsonschema:"Filter: pending, failed, or all (default all)"`
	LookbackMinutes int    `json:"lookback_minutes,omitempty" jsonschema:"Event lookback window in minutes, 1-1440 (default 60)"`
}

type upgradeProgressInput struct {
	ClusterID string `json:"cluster_id" jsonschema:"Cluster ID (environment-region-name) or \"all\""`
	NodePool  string `json:"node_pool,omitempty" jsonschema:"Node pool name (empty for all pools)"`
}

type durationMetricsInput struct {
	ClusterID    string `json:"cluster_id" jsonschema:"Cluster ID (environment-region-name) or \"all\""`
	NodePool     string `json:"node_pool" jsonschema:"Node pool name (required)"`
	HistoryCount int    `json:"history_count,omitempty" jsonschema:"Historical upgrade records to fetch, 1-50 (default 10)"`
}

type pdbRiskInput struct {
	ClusterID string `json:"cluster_id" jsonschema:"Cluster ID (environment-region-name) or \"all\""`
	NodePool  string `json:"node_pool,omitempty" jsonschema:"Node pool to scope the risk check to (empty for all)"`
	Mode      string `json:"mode,omitempty" jsonschema:"preflight evaluates budgets alone; live also maps blockers to affected nodes (default preflight)"`
}

type listClustersInput struct{}

// Register wires every diagnostic tool onto the MCP server.
func Register(server *mcp.Server, s *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_node_pool_pressure",
		Description: "Check CPU, memory, and pending-pod pressure per node pool. Returns per-pool utilization percentages, node counts, and an ok/warning/critical severity.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input clusterInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "check_node_pool_pressure", func(ctx context.Context) (any, error) {
			return s.NodePoolPressure(ctx, input.ClusterID)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_pod_health",
		Description: "List unhealthy pods with failure categories (scheduling, runtime, registry, config, unknown), grouped counts, and recent-event context.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input podHealthInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "get_pod_health", func(ctx context.Context) (any, error) {
			return s.PodHealth(ctx, input.ClusterID, input.Namespace, input.StatusFilter, input.LookbackMinutes)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_kubernetes_upgrade_status",
		Description: "Report control plane and per-pool Kubernetes versions, available upgrades, and whether an upgrade is currently active.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input clusterInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "get_kubernetes_upgrade_status", func(ctx context.Context) (any, error) {
			return s.UpgradeStatus(ctx, input.ClusterID)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_upgrade_progress",
		Description: "Track an in-flight upgrade node by node: lifecycle phase per node (pending, cordoned, upgrading, pdb_blocked, stalled, upgraded), elapsed and estimated remaining time, anomaly detection, and pod disruption during the wave.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input upgradeProgressInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "get_upgrade_progress", func(ctx context.Context) (any, error) {
			return s.UpgradeProgress(ctx, input.ClusterID, input.NodePool)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_upgrade_duration_metrics",
		Description: "Summarize upgrade durations for a node pool: the in-flight run (if any) plus historical runs from the provider's activity log with mean, p90, and baseline compliance.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input durationMetricsInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "get_upgrade_duration_metrics", func(ctx context.Context) (any, error) {
			return s.DurationMetrics(ctx, input.ClusterID, input.NodePool, input.HistoryCount)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_pdb_upgrade_risk",
		Description: "Find PodDisruptionBudgets that would block an eviction-based node drain, with the reason each one blocks and (in live mode) the nodes it affects.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input pdbRiskInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "check_pdb_upgrade_risk", func(ctx context.Context) (any, error) {
			return s.PDBRisk(ctx, input.ClusterID, input.NodePool, input.Mode)
		})
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_clusters",
		Description: "List the configured clusters with their IDs, environments, and regions. Use the returned IDs as cluster_id in the other tools.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input listClustersInput) (*mcp.CallToolResult, any, error) {
		return s.respond(ctx, "list_clusters", func(ctx context.Context) (any, error) {
			return s.ListClusters(), nil
		})
	})
}

// respond runs one tool invocation: correlation logging, metrics,
// JSON serialization, and output scrubbing. Validation and
// unknown-cluster failures become tool errors, not protocol errors.
func (s *Service) respond(ctx context.Context, tool string, run func(ctx context.Context) (any, error)) (*mcp.CallToolResult, any, error) {
	start := s.now()
	logger := slog.With("tool", tool, "correlation_id", uuid.NewString())
	logger.Info("tool invoked")

	value, err := run(ctx)

	status := "ok"
	if err != nil {
		status = "error"
	}
	if s.metrics != nil {
		s.metrics.ToolInvocationsTotal.WithLabelValues(tool, status).Inc()
		s.metrics.ToolDuration.WithLabelValues(tool).Observe(s.now().Sub(start).Seconds())
	}

	if err != nil {
		logger.Warn("tool rejected", "error", err)
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		}, nil, nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, nil, fmt.Errorf("serializing %s response: %w", tool, err)
	}
	logger.Info("tool completed", "duration", s.now().Sub(start))
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: scrub.Scrub(string(payload))}},
	}, nil, nil
}
