package upgrade

import (
	"sort"

	"github.com/fleetscope/fleetscope/internal/classify"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// TransitionDetailCap bounds the emitted pod detail list. The true
// total is always retained.
const TransitionDetailCap = 20

// SummarizeTransitions collects currently-unhealthy pods whose node is
// mid-upgrade, classifies each, and tallies pending vs failed counts.
// Pods in a phase other than Pending with bad container state count as
// failed. Detail ordering puts Failed/Unknown ahead of Pending, ties
// broken by original order.
func SummarizeTransitions(pods []model.PodInfo, activeNodes map[string]bool) model.PodTransitionSummary {
	summary := model.PodTransitionSummary{ByCategory: make(map[string]int)}

	var details []model.TransitionPod
	for _, pod := range pods {
		if !activeNodes[pod.NodeName] || !classify.IsUnhealthy(pod) {
			continue
		}
		category := classify.CategorizeFailure(pod.Reason, pod.Containers)
		summary.Total++
		summary.ByCategory[string(category)]++
		if pod.Phase == "Pending" {
			summary.Pending++
		} else {
			summary.Failed++
		}
		details = append(details, model.TransitionPod{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			Node:      pod.NodeName,
			Phase:     pod.Phase,
			Category:  string(category),
			Reason:    waitingReason(pod),
		})
	}

	sort.SliceStable(details, func(i, j int) bool {
		return transitionRank(details[i].Phase) < transitionRank(details[j].Phase)
	})

	if len(details) > TransitionDetailCap {
		details = details[:TransitionDetailCap]
		summary.Truncated = true
	}
	summary.Pods = details

	if summary.Total == 0 {
		summary.ByCategory = nil
	}
	return summary
}

// transitionRank orders Failed/Unknown ahead of Pending.
func transitionRank(phase string) int {
	if phase == "Pending" {
		return 1
	}
	return 0
}

// waitingReason surfaces the most specific reason available for a pod:
// first waiting container reason, else last-terminated reason, else the
// pod-level reason.
func waitingReason(pod model.PodInfo) string {
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
	return pod.Reason
}
