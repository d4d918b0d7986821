package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/fleetscope/fleetscope/internal/classify"
	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// NodePoolPressure answers check_node_pool_pressure for the addressed
// clusters.
func (s *Service) NodePoolPressure(ctx context.Context, clusterID string) ([]model.NodePoolPressureResult, error) {
	targets, err := s.resolve(clusterID)
	if err != nil {
		return nil, err
	}
	return forEachCluster(ctx, s, "check_node_pool_pressure", targets, s.poolPressureForCluster), nil
}

// poolPressureForCluster computes per-pool pressure for one cluster.
// The node list is foundational: without it nothing downstream can be
// computed. Metrics, pending pods, and the provider pool state are
// independent failure domains caught separately.
func (s *Service) poolPressureForCluster(ctx context.Context, t config.ClusterTarget) model.NodePoolPressureResult {
	collector := errors.NewCollector(t.ID())
	result := model.NodePoolPressureResult{Cluster: t.ID()}
	kube := s.kubeFor(t)

	nodes, err := kube.ListNodes(ctx)
	if err != nil {
		s.recordFailure(collector, errors.SourceNodes, err)
		result.Summary = "node list unavailable"
		result.Errors = collector.Errors()
		return result
	}

	metrics, err := kube.ListNodeMetrics(ctx)
	if err != nil {
		// Pressure degrades to null percentages without metrics.
		s.recordFailure(collector, errors.SourceMetrics, err)
		metrics = nil
	}

	pending, err := kube.ListPods(ctx, "", "status.phase=Pending")
	if err != nil {
		s.recordFailure(collector, errors.SourcePods, err)
		pending = nil
	}

	result.Pools = classify.AggregatePools(nodes, metrics, pending, s.thresholds)

	// Pool capacity limits come from the provider, an independent
	// failure domain from the cluster API.
	if info, err := s.cloudFor(t).GetClusterInfo(ctx); err != nil {
		s.recordFailure(collector, errors.SourceClusterInfo, err)
	} else {
		maxByPool := make(map[string]int, len(info.NodePools))
		for _, p := range info.NodePools {
			maxByPool[p.Name] = p.MaxCount
		}
		for i := range result.Pools {
			result.Pools[i].MaxNodes = maxByPool[result.Pools[i].Pool]
		}
	}

	result.Summary = pressureSummary(result.Pools)
	result.Errors = collector.Errors()
	return result
}

// pressureSummary renders a one-line fleet-operator view of the pools.
func pressureSummary(pools []model.PoolPressure) string {
	if len(pools) == 0 {
		return "no node pools found"
	}

	worst := model.PressureOK
	var worstPools []string
	for _, p := range pools {
		if p.PressureLevel.Exceeds(worst) {
			worst = p.PressureLevel
			worstPools = []string{p.Pool}
		} else if p.PressureLevel == worst && worst != model.PressureOK {
			worstPools = append(worstPools, p.Pool)
		}
	}

	if worst == model.PressureOK {
		return fmt.Sprintf("%d pools, all within thresholds", len(pools))
	}
	return fmt.Sprintf("%d pools, %s pressure on %s", len(pools), worst, strings.Join(worstPools, ", "))
}
