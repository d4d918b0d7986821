package kube

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/fleetscope/fleetscope/internal/convert"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// ListNodes lists all nodes, normalized.
func (c *Client) ListNodes(ctx context.Context) ([]model.NodeInfo, error) {
	kube, _, err := c.clients()
	if err != nil {
		return nil, err
	}
	list, err := kube.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("kube: listing nodes: %w", err)
	}
	out := make([]model.NodeInfo, len(list.Items))
	for i := range list.Items {
		out[i] = convert.NodeToModel(&list.Items[i])
	}
	return out, nil
}

// ListPods lists pods in a namespace ("" for all), passing the field
// selector through for server-side filtering.
func (c *Client) ListPods(ctx context.Context, namespace, fieldSelector string) ([]model.PodInfo, error) {
	kube, _, err := c.clients()
	if err != nil {
		return nil, err
	}
	list, err := kube.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{FieldSelector: fieldSelector})
	if err != nil {
		return nil, fmt.Errorf("kube: listing pods: %w", err)
	}
	out := make([]model.PodInfo, len(list.Items))
	for i := range list.Items {
		out[i] = convert.PodToModel(&list.Items[i])
	}
	return out, nil
}

// ListNodeEvents lists events for Node objects, optionally filtered to
// the given reasons. Reason filtering happens client-side since the
// events API cannot OR multiple reasons in one field selector.
func (c *Client) ListNodeEvents(ctx context.Context, reasons ...string) ([]model.EventInfo, error) {
	kube, _, err := c.clients()
	if err != nil {
		return nil, err
	}
	list, err := kube.CoreV1().Events(metav1.NamespaceAll).List(ctx, metav1.ListOptions{
		FieldSelector: "involvedObject.kind=Node",
	})
	if err != nil {
		return nil, fmt.Errorf("kube: listing node events: %w", err)
	}

	wanted := make(map[string]struct{}, len(reasons))
	for _, r := range reasons {
		wanted[r] = struct{}{}
	}

	var out []model.EventInfo
	for i := range list.Items {
		ev := &list.Items[i]
		if len(wanted) > 0 {
			if _, ok := wanted[ev.Reason]; !ok {
				continue
			}
		}
		out = append(out, convert.EventToModel(ev))
	}
	return out, nil
}

// ListPodEvents lists events for Pod objects in a namespace ("" for all).
func (c *Client) ListPodEvents(ctx context.Context, namespace string) ([]model.EventInfo, error) {
	kube, _, err := c.clients()
	if err != nil {
		return nil, err
	}
	if namespace == "" {
		namespace = metav1.NamespaceAll
	}
	list, err := kube.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: "involvedObject.kind=Pod",
	})
	if err != nil {
		return nil, fmt.Errorf("kube: listing pod events: %w", err)
	}
	out := make([]model.EventInfo, len(list.Items))
	for i := range list.Items {
		out[i] = convert.EventToModel(&list.Items[i])
	}
	return out, nil
}

// ListNodeMetrics reads live node usage from the metrics API. Callers
// must tolerate failure here: pressure computation degrades to null
// percentages when the metrics server is unavailable.
func (c *Client) ListNodeMetrics(ctx context.Context) ([]model.NodeMetrics, error) {
	_, metrics, err := c.clients()
	if err != nil {
		return nil, err
	}
	list, err := metrics.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("kube: listing node metrics: %w", err)
	}
	out := make([]model.NodeMetrics, len(list.Items))
	for i := range list.Items {
		out[i] = convert.NodeMetricsToModel(&list.Items[i])
	}
	return out, nil
}

// ListPDBs lists disruption budgets in a namespace ("" for all).
func (c *Client) ListPDBs(ctx context.Context, namespace string) ([]model.PDBInfo, error) {
	kube, _, err := c.clients()
	if err != nil {
		return nil, err
	}
	if namespace == "" {
		namespace = metav1.NamespaceAll
	}
	list, err := kube.PolicyV1().PodDisruptionBudgets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("kube: listing pdbs: %w", err)
	}
	out := make([]model.PDBInfo, len(list.Items))
	for i := range list.Items {
		out[i] = convert.PDBToModel(&list.Items[i])
	}
	return out, nil
}
