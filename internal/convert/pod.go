package convert

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// PodToModel converts a Kubernetes Pod object to a model.PodInfo.
// Pure function — no side effects, no time.Now(), no external calls.
func PodToModel(pod *corev1.Pod) model.PodInfo {
	info := model.PodInfo{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		Phase:     string(pod.Status.Phase),
		NodeName:  pod.Spec.NodeName,
		Reason:    pod.Status.Reason,
		Message:   pod.Status.Message,
		Labels:    pod.Labels,
	}

	if len(pod.Status.ContainerStatuses) > 0 {
		info.Containers = make([]model.ContainerInfo, len(pod.Status.ContainerStatuses))
		for i, cs := range pod.Status.ContainerStatuses {
			info.Containers[i] = containerToModel(cs)
		}
	}

	return info
}

// containerToModel converts a single container status, keeping the
// current state and the last-terminated state separate.
func containerToModel(cs corev1.ContainerStatus) model.ContainerInfo {
	c := model.ContainerInfo{
		Name:         cs.Name,
		Ready:        cs.Ready,
		RestartCount: cs.RestartCount,
	}

	switch {
	case cs.State.Running != nil:
		c.State = "running"
	case cs.State.Waiting != nil:
		c.State = "waiting"
		c.StateReason = cs.State.Waiting.Reason
	case cs.State.Terminated != nil:
		c.State = "terminated"
		c.StateReason = cs.State.Terminated.Reason
		c.ExitCode = &cs.State.Terminated.ExitCode
	}

	if cs.LastTerminationState.Terminated != nil {
		c.LastTerminatedReason = cs.LastTerminationState.Terminated.Reason
	}

	return c
}
