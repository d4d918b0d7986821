package tools

import (
	"context"
	"fmt"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/internal/upgrade"
	"github.com/fleetscope/fleetscope/pkg/model"
)

const defaultHistoryCount = 10

// DurationMetrics answers get_upgrade_duration_metrics for the
// addressed clusters. node_pool is required here: duration history is
// only meaningful against a concrete pool.
func (s *Service) DurationMetrics(ctx context.Context, clusterID, nodePool string, historyCount int) ([]model.DurationMetricsResult, error) {
	if nodePool == "" {
		return nil, fmt.Errorf("node_pool is required")
	}
	if err := validateNodePool(nodePool); err != nil {
		return nil, err
	}
	count, err := validateRange("history_count", historyCount, 1, 50, defaultHistoryCount)
	if err != nil {
		return nil, err
	}
	targets, err := s.resolve(clusterID)
	if err != nil {
		return nil, err
	}
	return forEachCluster(ctx, s, "get_upgrade_duration_metrics", targets, func(ctx context.Context, t config.ClusterTarget) model.DurationMetricsResult {
		return s.durationMetricsForCluster(ctx, t, nodePool, count)
	}), nil
}

// durationMetricsForCluster joins two independent sources: the
// provider's activity log (historical runs) and live node/event state
// (the in-flight run, if any). Either may fail without suppressing the
// other.
func (s *Service) durationMetricsForCluster(ctx context.Context, t config.ClusterTarget, nodePool string, count int) model.DurationMetricsResult {
	collector := errors.NewCollector(t.ID())
	result := model.DurationMetricsResult{Cluster: t.ID(), Pool: nodePool}
	cloud := s.cloudFor(t)

	history, err := cloud.GetActivityLogUpgrades(ctx, count)
	if err != nil {
		s.recordFailure(collector, errors.SourceActivityLog, err)
	} else {
		result.History = history
		result.Stats = upgrade.ComputeStats(history, s.thresholds.UpgradeAnomaly)
	}

	result.CurrentRun = s.currentRun(ctx, collector, t, nodePool, &result.AnomalyFlag)

	result.Errors = collector.Errors()
	return result
}

// currentRun reconstructs the in-flight wave for one pool from live
// node and event state. Returns nil when no wave is underway or the
// node list is unavailable.
func (s *Service) currentRun(ctx context.Context, collector *errors.Collector, t config.ClusterTarget, nodePool string, anomaly *bool) *model.CurrentRunMetrics {
	kube := s.kubeFor(t)

	nodes, err := kube.ListNodes(ctx)
	if err != nil {
		s.recordFailure(collector, errors.SourceNodes, err)
		return nil
	}
	filtered := nodes[:0]
	for _, n := range nodes {
		if n.Pool == nodePool {
			filtered = append(filtered, n)
		}
	}
	nodes = filtered

	events, err := kube.ListNodeEvents(ctx, upgrade.Reasons()...)
	if err != nil {
		s.recordFailure(collector, errors.SourceEvents, err)
		events = nil
	}

	var targetVersion string
	if state, err := s.cloudFor(t).GetNodePoolState(ctx, nodePool); err != nil {
		s.recordFailure(collector, errors.SourceNodePoolState, err)
	} else {
		targetVersion = strings.TrimPrefix(state.TargetVersion, "v")
	}

	report := upgrade.BuildReport(nodes, events, nil, targetVersion, s.thresholds.UpgradeAnomaly, s.now())
	if report.ElapsedSeconds == 0 {
		return nil
	}
	*anomaly = report.AnomalyFlag

	run := &model.CurrentRunMetrics{
		ElapsedSeconds: report.ElapsedSeconds,
		Completed:      report.Completed,
		Remaining:      report.Remaining,
	}
	if report.Completed > 0 {
		run.MeanPerNodeSeconds = ptr.To(report.ElapsedSeconds / float64(report.Completed))
	}
	return run
}
