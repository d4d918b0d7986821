package tools

import "github.com/fleetscope/fleetscope/pkg/model"

// ListClusters enumerates the configured registry so a caller can
// discover valid cluster IDs. Pure registry read, no cluster I/O.
func (s *Service) ListClusters() []model.ClusterSummary {
	targets := s.registry.Targets()
	out := make([]model.ClusterSummary, len(targets))
	for i, t := range targets {
		out[i] = model.ClusterSummary{
			ID:          t.ID(),
			Environment: t.Environment,
			Region:      t.Region,
			Name:        t.Name,
		}
	}
	return out
}
