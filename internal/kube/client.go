// Package kube wraps client-go with the narrow read-only provider
// surface the diagnostic handlers consume. Everything is read fresh on
// every call; nothing is cached across queries.
package kube

import (
	"context"
	"fmt"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// Providers is the cluster-side collaborator surface. Each method may
// fail independently; callers catch failures per call.
type Providers interface {
	ListNodes(ctx context.Context) ([]model.NodeInfo, error)
	ListPods(ctx context.Context, namespace, fieldSelector string) ([]model.PodInfo, error)
	ListNodeEvents(ctx context.Context, reasons ...string) ([]model.EventInfo, error)
	ListPodEvents(ctx context.Context, namespace string) ([]model.EventInfo, error)
	ListNodeMetrics(ctx context.Context) ([]model.NodeMetrics, error)
	ListPDBs(ctx context.Context, namespace string) ([]model.PDBInfo, error)
}

// Client implements Providers against one cluster target. The
// clientsets are created on first use and reused afterwards; the
// lazy-init path is guarded by a mutex acquired exactly once at the top
// of the accessor, with all helpers below it lock-free, so no
// re-entrant acquisition can occur.
type Client struct {
	target config.ClusterTarget

	mu      sync.Mutex
	kube    kubernetes.Interface
	metrics metricsclientset.Interface
}

// New creates a Client for the given target. No connection is made
// until the first call.
func New(target config.ClusterTarget) *Client {
	return &Client{target: target}
}

// NewWithClients creates a Client with pre-built clientsets, used by
// tests with fake clientsets.
func NewWithClients(kube kubernetes.Interface, metrics metricsclientset.Interface) *Client {
	return &Client{kube: kube, metrics: metrics}
}

// clients returns the clientsets, creating both at most once.
func (c *Client) clients() (kubernetes.Interface, metricsclientset.Interface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kube != nil && c.metrics != nil {
		return c.kube, c.metrics, nil
	}

	restCfg, err := buildRESTConfig(c.target.KubeContext)
	if err != nil {
		return nil, nil, fmt.Errorf("kube: building rest config for %s: %w", c.target.ID(), err)
	}

	kube, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("kube: creating clientset for %s: %w", c.target.ID(), err)
	}
	metrics, err := metricsclientset.NewForConfig(restCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("kube: creating metrics clientset for %s: %w", c.target.ID(), err)
	}

	c.kube = kube
	c.metrics = metrics
	return c.kube, c.metrics, nil
}

// buildRESTConfig resolves a kubeconfig context, falling back to
// in-cluster config when no context is named.
func buildRESTConfig(kubeContext string) (*rest.Config, error) {
	if kubeContext == "" {
		if cfg, err := rest.InClusterConfig(); err == nil {
			return cfg, nil
		}
	}
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	overrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
}
