package model

// NodeInfo is the normalized view of a worker node used by the
// classifiers. Read fresh on every query, never cached across calls.
type NodeInfo struct {
	Name           string `json:"name"`
	Pool           string `json:"pool"`
	Ready          bool   `json:"ready"`
	Unschedulable  bool   `json:"unschedulable"`
	KubeletVersion string `json:"kubelet_version"`

	// Allocatable resources, normalized: CPU in millicores, memory in bytes.
	CPUAllocatableMillicores float64 `json:"cpu_allocatable_millicores"`
	MemoryAllocatableBytes   float64 `json:"memory_allocatable_bytes"`
}

// NodeMetrics holds live usage readings for one node. Absence of
// metrics for a node is expected and must degrade gracefully.
type NodeMetrics struct {
	Name               string  `json:"name"`
	CPUUsageMillicores float64 `json:"cpu_usage_millicores"`
	MemoryUsageBytes   float64 `json:"memory_usage_bytes"`
}
