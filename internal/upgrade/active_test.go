package upgrade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleetscope/fleetscope/pkg/model"
)

func TestPoolUpgrading(t *testing.T) {
	tests := []struct {
		name string
		pool model.NodePoolState
		want bool
	}{
		{
			name: "provisioning state alone",
			pool: model.NodePoolState{ProvisioningState: "Upgrading", CurrentVersion: "1.29.4", TargetVersion: "1.29.4"},
			want: true,
		},
		{
			name: "version drift alone",
			pool: model.NodePoolState{ProvisioningState: "Succeeded", CurrentVersion: "1.29.4", TargetVersion: "1.30.1"},
			want: true,
		},
		{
			name: "version drift with v prefix",
			pool: model.NodePoolState{ProvisioningState: "Succeeded", CurrentVersion: "v1.30.1", TargetVersion: "1.30.1"},
			want: false,
		},
		{
			name: "missing current version is not drift",
			pool: model.NodePoolState{ProvisioningState: "Succeeded", TargetVersion: "1.30.1"},
			want: false,
		},
		{
			name: "steady state",
			pool: model.NodePoolState{ProvisioningState: "Succeeded", CurrentVersion: "1.30.1", TargetVersion: "1.30.1"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PoolUpgrading(tt.pool))
		})
	}
}

func TestClusterUpgradeActive(t *testing.T) {
	assert.True(t, ClusterUpgradeActive(model.ClusterInfo{ProvisioningState: "Upgrading"}))
	assert.True(t, ClusterUpgradeActive(model.ClusterInfo{
		ProvisioningState: "Succeeded",
		NodePools:         []model.NodePoolState{{ProvisioningState: "Upgrading"}},
	}))
	assert.False(t, ClusterUpgradeActive(model.ClusterInfo{ProvisioningState: "Succeeded"}))
}
