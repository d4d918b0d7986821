package convert

import (
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// EventToModel converts a Kubernetes Event to a model.EventInfo with a
// single resolved timestamp.
func EventToModel(ev *corev1.Event) model.EventInfo {
	return model.EventInfo{
		Reason:    ev.Reason,
		Kind:      ev.InvolvedObject.Kind,
		Name:      ev.InvolvedObject.Name,
		Namespace: ev.InvolvedObject.Namespace,
		Message:   ev.Message,
		Count:     ev.Count,
		Timestamp: ResolveEventTimestamp(ev),
	}
}

// ResolveEventTimestamp picks one timestamp for an event by priority:
// last-recurrence, then series start, then first observation. The
// recurrence-aware timestamp wins because it reflects the freshest
// state of a repeating event.
func ResolveEventTimestamp(ev *corev1.Event) time.Time {
	if ev.Series != nil && !ev.Series.LastObservedTime.IsZero() {
		return ev.Series.LastObservedTime.Time
	}
	if !ev.LastTimestamp.IsZero() {
		return ev.LastTimestamp.Time
	}
	if !ev.EventTime.IsZero() {
		return ev.EventTime.Time
	}
	return ev.FirstTimestamp.Time
}
