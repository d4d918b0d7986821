package tools

import (
	"context"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/internal/upgrade"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// UpgradeStatus answers get_kubernetes_upgrade_status for the
// addressed clusters.
func (s *Service) UpgradeStatus(ctx context.Context, clusterID string) ([]model.UpgradeStatusResult, error) {
	targets, err := s.resolve(clusterID)
	if err != nil {
		return nil, err
	}
	return forEachCluster(ctx, s, "get_kubernetes_upgrade_status", targets, s.upgradeStatusForCluster), nil
}

// upgradeStatusForCluster reads the provider's view of one cluster.
// Cluster info is foundational: without it nothing downstream can be
// computed, so its absence short-circuits to an "unknown" placeholder.
// The upgrade profile is an independent failure domain caught
// separately so a broken profile endpoint cannot suppress version data
// from a healthy cluster endpoint.
func (s *Service) upgradeStatusForCluster(ctx context.Context, t config.ClusterTarget) model.UpgradeStatusResult {
	collector := errors.NewCollector(t.ID())
	result := model.UpgradeStatusResult{Cluster: t.ID()}
	cloud := s.cloudFor(t)

	info, err := cloud.GetClusterInfo(ctx)
	if err != nil {
		s.recordFailure(collector, errors.SourceClusterInfo, err)
		result.ControlPlaneVersion = "unknown"
		result.Errors = collector.Errors()
		return result
	}

	result.ControlPlaneVersion = info.KubernetesVersion
	result.UpgradeActive = upgrade.ClusterUpgradeActive(info)
	for _, pool := range info.NodePools {
		result.Pools = append(result.Pools, model.PoolVersionInfo{
			Name:              pool.Name,
			CurrentVersion:    pool.CurrentVersion,
			TargetVersion:     pool.TargetVersion,
			ProvisioningState: pool.ProvisioningState,
			Upgrading:         upgrade.PoolUpgrading(pool),
		})
	}

	if profile, err := cloud.GetUpgradeProfile(ctx); err != nil {
		s.recordFailure(collector, errors.SourceUpgradeProfile, err)
	} else {
		result.AvailableUpgrades = profile.ControlPlaneUpgrades
	}

	result.Errors = collector.Errors()
	return result
}
