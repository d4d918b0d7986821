package tools

import (
	"context"
	"strings"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/internal/pdb"
	"github.com/fleetscope/fleetscope/internal/upgrade"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// UpgradeProgress answers get_upgrade_progress for the addressed
// clusters.
func (s *Service) UpgradeProgress(ctx context.Context, clusterID, nodePool string) ([]model.UpgradeProgressResult, error) {
	if err := validateNodePool(nodePool); err != nil {
		return nil, err
	}
	targets, err := s.resolve(clusterID)
	if err != nil {
		return nil, err
	}
	return forEachCluster(ctx, s, "get_upgrade_progress", targets, func(ctx context.Context, t config.ClusterTarget) model.UpgradeProgressResult {
		return s.upgradeProgressForCluster(ctx, t, nodePool)
	}), nil
}

// upgradeProgressForCluster reconstructs the upgrade wave for one
// cluster. The node list is foundational; events, PDBs, and provider
// state are independent failure domains caught separately (a missing
// event stream still leaves version and cordon evidence to report).
func (s *Service) upgradeProgressForCluster(ctx context.Context, t config.ClusterTarget, nodePool string) model.UpgradeProgressResult {
	collector := errors.NewCollector(t.ID())
	result := model.UpgradeProgressResult{Cluster: t.ID(), Pool: nodePool}
	kube := s.kubeFor(t)

	nodes, err := kube.ListNodes(ctx)
	if err != nil {
		s.recordFailure(collector, errors.SourceNodes, err)
		result.Errors = collector.Errors()
		return result
	}
	if nodePool != "" {
		filtered := nodes[:0]
		for _, n := range nodes {
			if n.Pool == nodePool {
				filtered = append(filtered, n)
			}
		}
		nodes = filtered
	}

	events, err := kube.ListNodeEvents(ctx, upgrade.Reasons()...)
	if err != nil {
		s.recordFailure(collector, errors.SourceEvents, err)
		events = nil
	}

	var blockerNames []string
	if pdbs, err := kube.ListPDBs(ctx, ""); err != nil {
		s.recordFailure(collector, errors.SourcePDBs, err)
	} else {
		blockerNames = pdb.BlockerNames(pdb.Evaluate(pdbs))
	}

	result.TargetVersion = s.targetVersion(ctx, collector, t, nodePool)

	report := upgrade.BuildReport(nodes, events, blockerNames, result.TargetVersion, s.thresholds.UpgradeAnomaly, s.now())
	result.Nodes = report.Nodes
	result.Completed = report.Completed
	result.Remaining = report.Remaining
	result.ElapsedSeconds = report.ElapsedSeconds
	result.EstimatedRemainingSeconds = report.EstimatedRemainingSeconds
	result.AnomalyFlag = report.AnomalyFlag
	result.AnomalyMessage = report.AnomalyMessage

	// The pod fetch is skipped entirely when no node is mid-upgrade:
	// the summary cannot matter and the list call is expensive.
	if report.AnyActive {
		if pods, err := kube.ListPods(ctx, "", ""); err != nil {
			s.recordFailure(collector, errors.SourcePods, err)
		} else {
			active := make(map[string]bool, len(report.Nodes))
			for _, n := range report.Nodes {
				if n.Phase.Active() {
					active[n.Node] = true
				}
			}
			summary := upgrade.SummarizeTransitions(pods, active)
			result.PodTransitions = &summary
		}
	}

	result.Errors = collector.Errors()
	return result
}

// targetVersion asks the provider what version the addressed pool (or
// the control plane, when no pool is named) is converging to. Provider
// unavailability degrades to an empty target: nodes then classify from
// event evidence alone.
func (s *Service) targetVersion(ctx context.Context, collector *errors.Collector, t config.ClusterTarget, nodePool string) string {
	cloud := s.cloudFor(t)
	if nodePool != "" {
		state, err := cloud.GetNodePoolState(ctx, nodePool)
		if err != nil {
			s.recordFailure(collector, errors.SourceNodePoolState, err)
			return ""
		}
		return strings.TrimPrefix(state.TargetVersion, "v")
	}
	info, err := cloud.GetClusterInfo(ctx)
	if err != nil {
		s.recordFailure(collector, errors.SourceClusterInfo, err)
		return ""
	}
	return strings.TrimPrefix(info.KubernetesVersion, "v")
}
