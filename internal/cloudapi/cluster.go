package cloudapi

import (
	"context"
	"fmt"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// Wire shapes for the managed cluster API. Parsing converts to typed
// model structs immediately at this boundary.
type managedCluster struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Properties struct {
		KubernetesVersion string `json:"kubernetesVersion"`
		ProvisioningState string `json:"provisioningState"`
		PowerState        struct {
			Code string `json:"code"`
		} `json:"powerState"`
		AgentPoolProfiles []agentPoolProperties `json:"agentPoolProfiles"`
	} `json:"properties"`
}

type agentPoolProperties struct {
	Name                       string `json:"name"`
	ProvisioningState          string `json:"provisioningState"`
	OrchestratorVersion        string `json:"orchestratorVersion"`
	CurrentOrchestratorVersion string `json:"currentOrchestratorVersion"`
	Count                      int    `json:"count"`
	MaxCount                   int    `json:"maxCount"`
}

type agentPool struct {
	Name       string              `json:"name"`
	Properties agentPoolProperties `json:"properties"`
}

// GetClusterInfo fetches the managed cluster resource.
func (c *Client) GetClusterInfo(ctx context.Context) (model.ClusterInfo, error) {
	var mc managedCluster
	if err := c.getJSON(ctx, c.clusterPath(), apiVersionClusters, nil, &mc); err != nil {
		return model.ClusterInfo{}, err
	}

	info := model.ClusterInfo{
		Name:              mc.Name,
		Location:          mc.Location,
		KubernetesVersion: mc.Properties.KubernetesVersion,
		ProvisioningState: mc.Properties.ProvisioningState,
		PowerState:        mc.Properties.PowerState.Code,
	}
	for _, p := range mc.Properties.AgentPoolProfiles {
		info.NodePools = append(info.NodePools, poolToModel(p.Name, p))
	}
	return info, nil
}

// GetNodePoolState fetches one agent pool by name.
func (c *Client) GetNodePoolState(ctx context.Context, name string) (model.NodePoolState, error) {
	var ap agentPool
	path := fmt.Sprintf("%s/agentPools/%s", c.clusterPath(), name)
	if err := c.getJSON(ctx, path, apiVersionClusters, nil, &ap); err != nil {
		return model.NodePoolState{}, err
	}
	poolName := ap.Name
	if poolName == "" {
		poolName = name
	}
	return poolToModel(poolName, ap.Properties), nil
}

// poolToModel maps agent pool wire properties to the model. The target
// version is the orchestrator version the pool is converging to; the
// current version is what its nodes actually run.
func poolToModel(name string, p agentPoolProperties) model.NodePoolState {
	current := p.CurrentOrchestratorVersion
	if current == "" {
		current = p.OrchestratorVersion
	}
	return model.NodePoolState{
		Name:              name,
		ProvisioningState: p.ProvisioningState,
		CurrentVersion:    current,
		TargetVersion:     p.OrchestratorVersion,
		Count:             p.Count,
		MaxCount:          p.MaxCount,
	}
}
