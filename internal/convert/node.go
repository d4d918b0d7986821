package convert

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// Node pool labels, checked in order. AKS-managed nodes carry the
// first; self-managed agent nodes sometimes only carry the second.
const (
	labelAgentPool         = "kubernetes.azure.com/agentpool"
	labelAgentPoolFallback = "agentpool"
)

// PoolUnknown is the pool name assigned to nodes with no pool label.
const PoolUnknown = "unknown"

// NodeToModel converts a Kubernetes Node object to a model.NodeInfo.
// Pure function — no side effects, no time.Now(), no external calls.
func NodeToModel(node *corev1.Node) model.NodeInfo {
	return model.NodeInfo{
		Name:           node.Name,
		Pool:           poolFromLabels(node.Labels),
		Ready:          nodeReady(node.Status.Conditions),
		Unschedulable:  node.Spec.Unschedulable,
		KubeletVersion: node.Status.NodeInfo.KubeletVersion,

		CPUAllocatableMillicores: ParseCPUMillicores(quantityString(node.Status.Allocatable, corev1.ResourceCPU)),
		MemoryAllocatableBytes:   ParseMemoryBytes(quantityString(node.Status.Allocatable, corev1.ResourceMemory)),
	}
}

// poolFromLabels derives the pool assignment: primary label, fallback
// label, else unknown.
func poolFromLabels(labels map[string]string) string {
	if v, ok := labels[labelAgentPool]; ok && v != "" {
		return v
	}
	if v, ok := labels[labelAgentPoolFallback]; ok && v != "" {
		return v
	}
	return PoolUnknown
}

// nodeReady returns true if the node has a Ready condition with status True.
func nodeReady(conditions []corev1.NodeCondition) bool {
	for _, c := range conditions {
		if c.Type == corev1.NodeReady {
			return c.Status == corev1.ConditionTrue
		}
	}
	return false
}

// quantityString extracts the raw quantity string for a resource from a
// ResourceList, or "" if absent.
func quantityString(rl corev1.ResourceList, name corev1.ResourceName) string {
	q, ok := rl[name]
	if !ok {
		return ""
	}
	return q.String()
}
