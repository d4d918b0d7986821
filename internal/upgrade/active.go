package upgrade

import (
	"strings"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// PoolUpgrading reports whether a pool is mid-upgrade from the
// provider's view. Both signals are checked because either one alone
// can miss a detection window: the provisioning state lags
// target-version propagation in some cases, and vice versa.
func PoolUpgrading(pool model.NodePoolState) bool {
	if pool.ProvisioningState == "Upgrading" {
		return true
	}
	if pool.CurrentVersion != "" && pool.TargetVersion != "" &&
		!versionsEqual(pool.CurrentVersion, pool.TargetVersion) {
		return true
	}
	return false
}

// ClusterUpgradeActive reports whether any pool, or the control plane
// itself, is mid-upgrade.
func ClusterUpgradeActive(info model.ClusterInfo) bool {
	if strings.EqualFold(info.ProvisioningState, "Upgrading") {
		return true
	}
	for _, pool := range info.NodePools {
		if PoolUpgrading(pool) {
			return true
		}
	}
	return false
}
