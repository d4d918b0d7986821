package classify

import "github.com/fleetscope/fleetscope/pkg/model"

// FailureCategory groups pod failure reasons into a fixed taxonomy.
type FailureCategory string

// Failure categories.
const (
	CategoryScheduling FailureCategory = "scheduling"
	CategoryRuntime    FailureCategory = "runtime"
	CategoryRegistry   FailureCategory = "registry"
	CategoryConfig     FailureCategory = "config"
	CategoryUnknown    FailureCategory = "unknown"
)

// reasonOOMKilled gets special handling: a container that recovered
// after an OOM kill is still reporting a meaningful signal.
const reasonOOMKilled = "OOMKilled"

// Reason tokens per category. Matching is exact and case-sensitive.
var (
	schedulingReasons = map[string]struct{}{
		"Unschedulable":      {},
		"FailedScheduling":   {},
		"InsufficientCPU":    {},
		"InsufficientMemory": {},
	}
	runtimeReasons = map[string]struct{}{
		"CrashLoopBackOff":       {},
		reasonOOMKilled:          {},
		"Error":                  {},
		"ContainerStatusUnknown": {},
	}
	registryReasons = map[string]struct{}{
		"ImagePullBackOff":  {},
		"ErrImagePull":      {},
		"ErrImageNeverPull": {},
	}
	configReasons = map[string]struct{}{
		"CreateContainerConfigError": {},
		"InvalidImageName":           {},
		"RunContainerError":          {},
	}
)

// orderedCategories is the resolution order for container-level reasons.
var orderedCategories = []struct {
	category FailureCategory
	reasons  map[string]struct{}
}{
	{CategoryScheduling, schedulingReasons},
	{CategoryRuntime, runtimeReasons},
	{CategoryRegistry, registryReasons},
	{CategoryConfig, configReasons},
}

// CategorizeFailure maps a pod's reason and container statuses into a
// failure category. Resolution order, first match wins:
//
//  1. pod-level reason against the scheduling set only (a pod that
//     never got a container has no container state to inspect)
//  2. each container's current waiting reason, category order
//     scheduling → runtime → registry → config
//  3. each container's last-terminated reason, OOMKilled only
//  4. pod-level reason against runtime/registry/config
//  5. unknown
func CategorizeFailure(podReason string, containers []model.ContainerInfo) FailureCategory {
	if _, ok := schedulingReasons[podReason]; ok {
		return CategoryScheduling
	}

	for _, c := range containers {
		if c.State != "waiting" || c.StateReason == "" {
			continue
		}
		for _, oc := range orderedCategories {
			if _, ok := oc.reasons[c.StateReason]; ok {
				return oc.category
			}
		}
	}

	for _, c := range containers {
		if c.LastTerminatedReason == reasonOOMKilled {
			return CategoryRuntime
		}
	}

	if podReason != "" {
		if _, ok := runtimeReasons[podReason]; ok {
			return CategoryRuntime
		}
		if _, ok := registryReasons[podReason]; ok {
			return CategoryRegistry
		}
		if _, ok := configReasons[podReason]; ok {
			return CategoryConfig
		}
	}

	return CategoryUnknown
}

// IsUnhealthy reports whether a pod should be flagged: a non-Running,
// non-Succeeded phase, a container waiting on a runtime/registry/config
// reason, or a recent OOM kill. A currently-Running pod that was
// OOM-killed is still flagged because restart churn is the signal of
// interest.
func IsUnhealthy(pod model.PodInfo) bool {
	switch pod.Phase {
	case "Pending", "Failed", "Unknown":
		return true
	}

	for _, c := range pod.Containers {
		if c.State == "waiting" && c.StateReason != "" {
			if _, ok := runtimeReasons[c.StateReason]; ok {
				return true
			}
			if _, ok := registryReasons[c.StateReason]; ok {
				return true
			}
			if _, ok := configReasons[c.StateReason]; ok {
				return true
			}
		}
		if c.LastTerminatedReason == reasonOOMKilled {
			return true
		}
	}

	return false
}
