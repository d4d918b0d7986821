package tools

import (
	"context"
	"sort"
	"time"

	"github.com/fleetscope/fleetscope/internal/classify"
	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// podDetailCap bounds the emitted unhealthy-pod detail list. Grouped
// counts always reflect the full set.
const podDetailCap = 50

// podHealthQuery is a validated get_pod_health request.
type podHealthQuery struct {
	namespace    string
	statusFilter string
	lookback     time.Duration
}

// PodHealth answers get_pod_health for the addressed clusters.
func (s *Service) PodHealth(ctx context.Context, clusterID, namespace, statusFilter string, lookbackMinutes int) ([]model.PodHealthResult, error) {
	if err := validateNamespace(namespace); err != nil {
		return nil, err
	}
	filter, err := validateStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	lookback, err := validateRange("lookback_minutes", lookbackMinutes, 1, 1440, 60)
	if err != nil {
		return nil, err
	}
	targets, err := s.resolve(clusterID)
	if err != nil {
		return nil, err
	}

	q := podHealthQuery{
		namespace:    namespace,
		statusFilter: filter,
		lookback:     time.Duration(lookback) * time.Minute,
	}
	return forEachCluster(ctx, s, "get_pod_health", targets, func(ctx context.Context, t config.ClusterTarget) model.PodHealthResult {
		return s.podHealthForCluster(ctx, t, q)
	}), nil
}

// podHealthForCluster classifies unhealthy pods in one cluster. Pod
// events supplement pods that carry no container-level evidence, such
// as unscheduled Pending pods whose FailedScheduling reason only exists
// as an event.
func (s *Service) podHealthForCluster(ctx context.Context, t config.ClusterTarget, q podHealthQuery) model.PodHealthResult {
	collector := errors.NewCollector(t.ID())
	result := model.PodHealthResult{
		Cluster:    t.ID(),
		ByCategory: make(map[string]int),
		ByPhase:    make(map[string]int),
	}
	kube := s.kubeFor(t)

	pods, err := kube.ListPods(ctx, q.namespace, fieldSelectorFor(q.statusFilter))
	if err != nil {
		s.recordFailure(collector, errors.SourcePods, err)
		result.Errors = collector.Errors()
		return result
	}

	eventReason := make(map[string]string)
	if events, err := kube.ListPodEvents(ctx, q.namespace); err != nil {
		s.recordFailure(collector, errors.SourceEvents, err)
	} else {
		cutoff := s.now().Add(-q.lookback)
		for _, ev := range events {
			if ev.Timestamp.Before(cutoff) {
				continue
			}
			eventReason[ev.Namespace+"/"+ev.Name] = ev.Reason
		}
	}

	var details []model.UnhealthyPod
	for _, pod := range pods {
		if !matchesStatusFilter(pod.Phase, q.statusFilter) || !classify.IsUnhealthy(pod) {
			continue
		}

		reason := pod.Reason
		if reason == "" && len(pod.Containers) == 0 {
			reason = eventReason[pod.Namespace+"/"+pod.Name]
		}
		category := classify.CategorizeFailure(reason, pod.Containers)

		result.TotalMatching++
		result.ByCategory[string(category)]++
		result.ByPhase[pod.Phase]++
		details = append(details, model.UnhealthyPod{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			Phase:     pod.Phase,
			Node:      pod.NodeName,
			Category:  string(category),
			Reason:    detailReason(pod, reason),
			Restarts:  totalRestarts(pod),
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return phaseRank(details[i].Phase) < phaseRank(details[j].Phase)
	})
	if len(details) > podDetailCap {
		details = details[:podDetailCap]
		result.Truncated = true
	}
	result.Pods = details
	result.Errors = collector.Errors()
	return result
}

// fieldSelectorFor narrows the pod list server-side where the filter
// maps to a single phase.
func fieldSelectorFor(statusFilter string) string {
	switch statusFilter {
	case "pending":
		return "status.phase=Pending"
	case "failed":
		return "status.phase=Failed"
	}
	return ""
}

// matchesStatusFilter applies the caller's phase filter.
func matchesStatusFilter(phase, statusFilter string) bool {
	switch statusFilter {
	case "pending":
		return phase == "Pending"
	case "failed":
		return phase == "Failed" || phase == "Unknown"
	}
	return true
}

// phaseRank orders Failed/Unknown ahead of Pending, ahead of the rest.
func phaseRank(phase string) int {
	switch phase {
	case "Failed", "Unknown":
		return 0
	case "Pending":
		return 1
	}
	return 2
}

// detailReason picks the most specific reason string for the detail
// list: container evidence first, then the supplied pod/event reason.
func detailReason(pod model.PodInfo, fallback string) string {
	for _, c := range pod.Containers {
		if c.State == "waiting" && c.StateReason != "" {
			return c.StateReason
		}
	}
	for _, c := range pod.Containers {
		if c.LastTerminatedReason != "" {
			return c.LastTerminatedReason
		}
	}
	return fallback
}

func totalRestarts(pod model.PodInfo) int32 {
	var n int32
	for _, c := range pod.Containers {
		n += c.RestartCount
	}
	return n
}
