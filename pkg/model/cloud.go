package model

import "time"

// ClusterInfo is the managed control plane's view of a cluster.
type ClusterInfo struct {
	Name              string          `json:"name"`
	Location          string          `json:"location"`
	KubernetesVersion string          `json:"kubernetes_version"`
	ProvisioningState string          `json:"provisioning_state"`
	PowerState        string          `json:"power_state,omitempty"`
	NodePools         []NodePoolState `json:"node_pools,omitempty"`
}

// NodePoolState is the provider-side state of one node pool.
type NodePoolState struct {
	Name              string `json:"name"`
	ProvisioningState string `json:"provisioning_state"`
	CurrentVersion    string `json:"current_version"`
	TargetVersion     string `json:"target_version,omitempty"`
	Count             int    `json:"count"`
	MaxCount          int    `json:"max_count,omitempty"`
}

// PoolUpgradeInfo lists versions a single pool can upgrade to.
type PoolUpgradeInfo struct {
	Name           string   `json:"name"`
	CurrentVersion string   `json:"current_version"`
	Upgrades       []string `json:"upgrades,omitempty"`
}

// UpgradeProfile is the provider's catalog of available upgrades.
type UpgradeProfile struct {
	ControlPlaneVersion  string            `json:"control_plane_version"`
	ControlPlaneUpgrades []string          `json:"control_plane_upgrades,omitempty"`
	Pools                []PoolUpgradeInfo `json:"pools,omitempty"`
}

// UpgradeRecord is one completed upgrade operation from the provider's
// activity log. DurationSeconds is event time minus submission time.
type UpgradeRecord struct {
	OperationName   string    `json:"operation_name"`
	Status          string    `json:"status"`
	SubmittedAt     time.Time `json:"submitted_at"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationSeconds float64   `json:"duration_seconds"`
	TargetVersion   string    `json:"target_version,omitempty"`
}
