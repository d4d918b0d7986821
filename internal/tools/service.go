// Package tools composes the providers, classifiers, and the upgrade
// state machine into the externally exposed diagnostic operations.
package tools

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fleetscope/fleetscope/internal/cloudapi"
	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/internal/fleet"
	"github.com/fleetscope/fleetscope/internal/kube"
	"github.com/fleetscope/fleetscope/internal/observability"
)

// clusterAll fans a request out across every configured cluster.
const clusterAll = "all"

// Service owns the per-cluster collaborator clients and the shared
// read-only configuration. Client handles are created at most once per
// target and reused; the registry and thresholds are immutable after
// startup so reads need no locking.
type Service struct {
	registry   *config.Registry
	thresholds config.Thresholds
	metrics    *observability.Metrics
	now        func() time.Time

	newKube  func(config.ClusterTarget) kube.Providers
	newCloud func(config.ClusterTarget) cloudapi.Provider

	mu     sync.Mutex
	kubes  map[string]kube.Providers
	clouds map[string]cloudapi.Provider
}

// Option overrides a Service collaborator, used by tests.
type Option func(*Service)

// WithKubeFactory replaces the kube client factory.
func WithKubeFactory(f func(config.ClusterTarget) kube.Providers) Option {
	return func(s *Service) { s.newKube = f }
}

// WithCloudFactory replaces the cloud client factory.
func WithCloudFactory(f func(config.ClusterTarget) cloudapi.Provider) Option {
	return func(s *Service) { s.newCloud = f }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the tool service. tokens and timeout configure the
// default cloud client factory.
func NewService(cfg config.Config, metrics *observability.Metrics, tokens cloudapi.TokenSource, opts ...Option) *Service {
	s := &Service{
		registry:   cfg.Registry,
		thresholds: cfg.Thresholds,
		metrics:    metrics,
		now:        time.Now,
		kubes:      make(map[string]kube.Providers),
		clouds:     make(map[string]cloudapi.Provider),
	}
	s.newKube = func(t config.ClusterTarget) kube.Providers {
		return kube.New(t)
	}
	s.newCloud = func(t config.ClusterTarget) cloudapi.Provider {
		return cloudapi.NewClient(t, tokens, cfg.RequestTimeout)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// kubeFor returns the (lazily created) kube client for a target.
func (s *Service) kubeFor(t config.ClusterTarget) kube.Providers {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.ToLower(t.ID())
	if c, ok := s.kubes[id]; ok {
		return c
	}
	c := s.newKube(t)
	s.kubes[id] = c
	return c
}

// cloudFor returns the (lazily created) cloud client for a target.
func (s *Service) cloudFor(t config.ClusterTarget) cloudapi.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.ToLower(t.ID())
	if c, ok := s.clouds[id]; ok {
		return c
	}
	c := s.newCloud(t)
	s.clouds[id] = c
	return c
}

// recordFailure demotes a collaborator failure to a partial-data
// diagnostic and counts it.
func (s *Service) recordFailure(c *errors.Collector, source errors.Source, err error) {
	first := !c.HasErrors()
	c.Add(source, err)
	if s.metrics != nil && err != nil {
		s.metrics.CollaboratorFailuresTotal.WithLabelValues(string(source)).Inc()
		if first {
			s.metrics.PartialDataResponses.Inc()
		}
	}
}

// resolve maps a request's cluster_id to the targets it addresses.
// "all" expands to every configured cluster.
func (s *Service) resolve(clusterID string) ([]config.ClusterTarget, error) {
	if strings.EqualFold(clusterID, clusterAll) {
		return s.registry.Targets(), nil
	}
	t, ok := s.registry.Lookup(clusterID)
	if !ok {
		return nil, unknownClusterError(clusterID, s.registry.IDs())
	}
	return []config.ClusterTarget{t}, nil
}

// forEachCluster runs a single-cluster handler across the resolved
// targets, fanning out concurrently when more than one is addressed.
// Single-cluster handlers embed their diagnostics in the result and do
// not fail; the fan-out layer still isolates panics per cluster.
func forEachCluster[T any](ctx context.Context, s *Service, operation string, targets []config.ClusterTarget, single func(ctx context.Context, t config.ClusterTarget) T) []T {
	start := s.now()

	byID := make(map[string]config.ClusterTarget, len(targets))
	ids := make([]string, len(targets))
	for i, t := range targets {
		id := strings.ToLower(t.ID())
		byID[id] = t
		ids[i] = id
	}

	results := fleet.FanOut(ctx, operation, ids, func(ctx context.Context, clusterID string) (T, error) {
		return single(ctx, byID[clusterID]), nil
	})

	out := make([]T, 0, len(results))
	for _, r := range results {
		out = append(out, r.Value)
	}

	if s.metrics != nil {
		s.metrics.FanOutDuration.WithLabelValues(operation).Observe(s.now().Sub(start).Seconds())
		s.metrics.FanOutClustersTotal.WithLabelValues("ok").Add(float64(len(results)))
		s.metrics.FanOutClustersTotal.WithLabelValues("failed").Add(float64(len(targets) - len(results)))
	}
	return out
}
