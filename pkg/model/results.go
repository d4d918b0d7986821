package model

// PressureLevel is a severity classification. Ordering:
// critical > warning > ok.
type PressureLevel string

// Pressure levels.
const (
	PressureOK       PressureLevel = "ok"
	PressureWarning  PressureLevel = "warning"
	PressureCritical PressureLevel = "critical"
)

// Exceeds reports whether l is strictly more severe than other.
func (l PressureLevel) Exceeds(other PressureLevel) bool {
	return l.rank() > other.rank()
}

func (l PressureLevel) rank() int {
	switch l {
	case PressureCritical:
		return 2
	case PressureWarning:
		return 1
	}
	return 0
}

// PoolPressure is the per-pool output of the node pool pressure tool.
// CPU/memory percentages are nil when metrics are unavailable or the
// pool has zero allocatable.
type PoolPressure struct {
	Pool          string        `json:"pool"`
	CPUPercent    *float64      `json:"cpu_percent,omitempty"`
	MemoryPercent *float64      `json:"memory_percent,omitempty"`
	PendingPods   int           `json:"pending_pods"`
	ReadyNodes    int           `json:"ready_nodes"`
	TotalNodes    int           `json:"total_nodes"`
	MaxNodes      int           `json:"max_nodes,omitempty"`
	PressureLevel PressureLevel `json:"pressure_level"`
}

// NodePoolPressureResult is the response of check_node_pool_pressure
// for one cluster.
type NodePoolPressureResult struct {
	Cluster string         `json:"cluster"`
	Pools   []PoolPressure `json:"pools"`
	Summary string         `json:"summary"`
	Errors  []ToolError    `json:"errors,omitempty"`
}

// UnhealthyPod is one entry in the pod health detail list.
type UnhealthyPod struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Phase     string `json:"phase"`
	Node      string `json:"node,omitempty"`
	Category  string `json:"category"`
	Reason    string `json:"reason,omitempty"`
	Restarts  int32  `json:"restarts"`
}

// PodHealthResult is the response of get_pod_health for one cluster.
// Pods is capped; TotalMatching is the true count.
type PodHealthResult struct {
	Cluster       string         `json:"cluster"`
	Pods          []UnhealthyPod `json:"pods"`
	ByCategory    map[string]int `json:"by_category"`
	ByPhase       map[string]int `json:"by_phase"`
	TotalMatching int            `json:"total_matching"`
	Truncated     bool           `json:"truncated"`
	Errors        []ToolError    `json:"errors,omitempty"`
}

// PoolVersionInfo is the per-pool block of the upgrade status tool.
type PoolVersionInfo struct {
	Name              string `json:"name"`
	CurrentVersion    string `json:"current_version"`
	TargetVersion     string `json:"target_version,omitempty"`
	ProvisioningState string `json:"provisioning_state"`
	Upgrading         bool   `json:"upgrading"`
}

// UpgradeStatusResult is the response of get_kubernetes_upgrade_status
// for one cluster.
type UpgradeStatusResult struct {
	Cluster             string            `json:"cluster"`
	ControlPlaneVersion string            `json:"control_plane_version"`
	Pools               []PoolVersionInfo `json:"pools"`
	AvailableUpgrades   []string          `json:"available_upgrades,omitempty"`
	UpgradeActive       bool              `json:"upgrade_active"`
	Errors              []ToolError       `json:"errors,omitempty"`
}

// UpgradeProgressResult is the response of get_upgrade_progress for
// one cluster.
type UpgradeProgressResult struct {
	Cluster                   string                `json:"cluster"`
	Pool                      string                `json:"pool,omitempty"`
	TargetVersion             string                `json:"target_version,omitempty"`
	Nodes                     []NodeUpgradeState    `json:"nodes"`
	Completed                 int                   `json:"completed"`
	Remaining                 int                   `json:"remaining"`
	ElapsedSeconds            float64               `json:"elapsed_seconds"`
	EstimatedRemainingSeconds *float64              `json:"estimated_remaining_seconds,omitempty"`
	AnomalyFlag               bool                  `json:"anomaly_flag"`
	AnomalyMessage            string                `json:"anomaly_message,omitempty"`
	PodTransitions            *PodTransitionSummary `json:"pod_transitions,omitempty"`
	Errors                    []ToolError           `json:"errors,omitempty"`
}

// CurrentRunMetrics describes the in-flight upgrade wave, if any.
type CurrentRunMetrics struct {
	ElapsedSeconds     float64  `json:"elapsed_seconds"`
	Completed          int      `json:"completed"`
	Remaining          int      `json:"remaining"`
	MeanPerNodeSeconds *float64 `json:"mean_per_node_seconds,omitempty"`
}

// DurationStats summarizes historical upgrade durations against the
// anomaly baseline.
type DurationStats struct {
	Count               int     `json:"count"`
	MeanSeconds         float64 `json:"mean_seconds"`
	P90Seconds          float64 `json:"p90_seconds"`
	BaselineSeconds     float64 `json:"baseline_seconds"`
	WithinBaselineCount int     `json:"within_baseline_count"`
}

// DurationMetricsResult is the response of get_upgrade_duration_metrics
// for one cluster.
type DurationMetricsResult struct {
	Cluster     string             `json:"cluster"`
	Pool        string             `json:"pool"`
	CurrentRun  *CurrentRunMetrics `json:"current_run,omitempty"`
	History     []UpgradeRecord    `json:"history"`
	Stats       *DurationStats     `json:"stats,omitempty"`
	AnomalyFlag bool               `json:"anomaly_flag"`
	Errors      []ToolError        `json:"errors,omitempty"`
}

// PDBRiskResult is the response of check_pdb_upgrade_risk for one
// cluster.
type PDBRiskResult struct {
	Cluster  string       `json:"cluster"`
	Mode     string       `json:"mode"`
	Pool     string       `json:"pool,omitempty"`
	Blockers []PDBBlocker `json:"blockers"`
	Errors   []ToolError  `json:"errors,omitempty"`
}

// ClusterSummary is one registry entry listed by the list_clusters tool.
type ClusterSummary struct {
	ID          string `json:"id"`
	Environment string `json:"environment"`
	Region      string `json:"region"`
	Name        string `json:"name"`
}
