package kube

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	kubefake "k8s.io/client-go/kubernetes/fake"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"
)

func TestListNodes(t *testing.T) {
	kube := kubefake.NewSimpleClientset(&corev1.Node{
		ObjectMeta: metav1.ObjectMeta{
			Name:   "aks-system-0",
			Labels: map[string]string{"kubernetes.azure.com/agentpool": "system"},
		},
		Status: corev1.NodeStatus{
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("4"),
				corev1.ResourceMemory: resource.MustParse("8Gi"),
			},
			Conditions: []corev1.NodeCondition{{Type: corev1.NodeReady, Status: corev1.ConditionTrue}},
		},
	})
	client := NewWithClients(kube, metricsfake.NewSimpleClientset())

	nodes, err := client.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "aks-system-0", nodes[0].Name)
	assert.Equal(t, "system", nodes[0].Pool)
	assert.True(t, nodes[0].Ready)
	assert.InDelta(t, 4000, nodes[0].CPUAllocatableMillicores, 0.001)
}

func TestListPods(t *testing.T) {
	kube := kubefake.NewSimpleClientset(
		&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "api-1", Namespace: "payments"},
			Status:     corev1.PodStatus{Phase: corev1.PodPending},
		},
		&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "frontend"},
			Status:     corev1.PodStatus{Phase: corev1.PodRunning},
		},
	)
	client := NewWithClients(kube, metricsfake.NewSimpleClientset())

	all, err := client.ListPods(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := client.ListPods(context.Background(), "payments", "")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "api-1", scoped[0].Name)
	assert.Equal(t, "Pending", scoped[0].Phase)
}

func TestListNodeEventsFiltersReasons(t *testing.T) {
	ts := metav1.NewTime(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	kube := kubefake.NewSimpleClientset(
		&corev1.Event{
			ObjectMeta:     metav1.ObjectMeta{Name: "ev-1", Namespace: "default"},
			Reason:         "NodeUpgrade",
			InvolvedObject: corev1.ObjectReference{Kind: "Node", Name: "n0"},
			LastTimestamp:  ts,
		},
		&corev1.Event{
			ObjectMeta:     metav1.ObjectMeta{Name: "ev-2", Namespace: "default"},
			Reason:         "Starting",
			InvolvedObject: corev1.ObjectReference{Kind: "Node", Name: "n0"},
			LastTimestamp:  ts,
		},
	)
	client := NewWithClients(kube, metricsfake.NewSimpleClientset())

	events, err := client.ListNodeEvents(context.Background(), "NodeUpgrade", "NodeReady")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "NodeUpgrade", events[0].Reason)
	assert.Equal(t, "n0", events[0].Name)

	// No reason filter returns everything.
	events, err = client.ListNodeEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestListNodeMetrics(t *testing.T) {
	metrics := metricsfake.NewSimpleClientset()
	// The metrics fake lists resource "nodes", but NewSimpleClientset's
	// tracker files seeded objects under the guessed resource
	// "nodemetricses", so seed the tracker under "nodes" directly.
	require.NoError(t, metrics.Tracker().Create(
		metricsv1beta1.SchemeGroupVersion.WithResource("nodes"),
		&metricsv1beta1.NodeMetrics{
			ObjectMeta: metav1.ObjectMeta{Name: "n0"},
			Usage: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("1500m"),
				corev1.ResourceMemory: resource.MustParse("6Gi"),
			},
		}, ""))
	client := NewWithClients(kubefake.NewSimpleClientset(), metrics)

	readings, err := client.ListNodeMetrics(context.Background())
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.InDelta(t, 1500, readings[0].CPUUsageMillicores, 0.001)
	assert.InDelta(t, 6*1024*1024*1024, readings[0].MemoryUsageBytes, 0.001)
}

func TestListPDBs(t *testing.T) {
	max := intstr.FromInt32(0)
	kube := kubefake.NewSimpleClientset(&policyv1.PodDisruptionBudget{
		ObjectMeta: metav1.ObjectMeta{Name: "frozen", Namespace: "infra"},
		Spec:       policyv1.PodDisruptionBudgetSpec{MaxUnavailable: &max},
	})
	client := NewWithClients(kube, metricsfake.NewSimpleClientset())

	pdbs, err := client.ListPDBs(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, pdbs, 1)
	assert.Equal(t, "frozen", pdbs[0].Name)
	require.NotNil(t, pdbs[0].MaxUnavailable)
	assert.True(t, pdbs[0].MaxUnavailable.IsInt)
	assert.Equal(t, 0, pdbs[0].MaxUnavailable.IntValue)
}
