package tools

import (
	"context"
	"sort"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/internal/errors"
	"github.com/fleetscope/fleetscope/internal/pdb"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// PDBRisk answers check_pdb_upgrade_risk for the addressed clusters.
// Preflight mode evaluates budgets alone; live mode additionally maps
// each blocker to the nodes hosting its covered pods.
func (s *Service) PDBRisk(ctx context.Context, clusterID, nodePool, mode string) ([]model.PDBRiskResult, error) {
	if mode == "" {
		mode = "preflight"
	}
	if err := validateMode(mode); err != nil {
		return nil, err
	}
	if err := validateNodePool(nodePool); err != nil {
		return nil, err
	}
	targets, err := s.resolve(clusterID)
	if err != nil {
		return nil, err
	}
	return forEachCluster(ctx, s, "check_pdb_upgrade_risk", targets, func(ctx context.Context, t config.ClusterTarget) model.PDBRiskResult {
		return s.pdbRiskForCluster(ctx, t, nodePool, mode)
	}), nil
}

// pdbRiskForCluster evaluates one cluster's budgets. The PDB list is
// foundational; in live mode the node and pod lists are recoverable
// (affected-node attribution degrades, the blocker list survives).
func (s *Service) pdbRiskForCluster(ctx context.Context, t config.ClusterTarget, nodePool, mode string) model.PDBRiskResult {
	collector := errors.NewCollector(t.ID())
	result := model.PDBRiskResult{Cluster: t.ID(), Mode: mode, Pool: nodePool}
	kube := s.kubeFor(t)

	pdbs, err := kube.ListPDBs(ctx, "")
	if err != nil {
		s.recordFailure(collector, errors.SourcePDBs, err)
		result.Errors = collector.Errors()
		return result
	}
	blockers := pdb.Evaluate(pdbs)

	if mode == "live" && len(blockers) > 0 {
		blockers = s.attributeNodes(ctx, collector, t, blockers, pdbs, nodePool)
	}

	result.Blockers = blockers
	result.Errors = collector.Errors()
	return result
}

// attributeNodes fills each blocker's AffectedNodes with the nodes
// hosting pods its selector covers, optionally restricted to one pool.
// With a pool restriction, blockers that touch no node in the pool are
// dropped: they are not a risk to that pool's drain.
func (s *Service) attributeNodes(ctx context.Context, collector *errors.Collector, t config.ClusterTarget, blockers []model.PDBBlocker, pdbs []model.PDBInfo, nodePool string) []model.PDBBlocker {
	kube := s.kubeFor(t)

	nodes, err := kube.ListNodes(ctx)
	if err != nil {
		s.recordFailure(collector, errors.SourceNodes, err)
		return blockers
	}
	pods, err := kube.ListPods(ctx, "", "")
	if err != nil {
		s.recordFailure(collector, errors.SourcePods, err)
		return blockers
	}

	poolOf := make(map[string]string, len(nodes))
	for _, n := range nodes {
		poolOf[n.Name] = n.Pool
	}
	selectors := make(map[string]map[string]string, len(pdbs))
	for _, p := range pdbs {
		selectors[p.Namespace+"/"+p.Name] = p.Selector
	}

	out := blockers[:0]
	for _, b := range blockers {
		selector := selectors[b.Namespace+"/"+b.Name]
		seen := make(map[string]bool)
		for _, pod := range pods {
			if pod.Namespace != b.Namespace || pod.NodeName == "" || seen[pod.NodeName] {
				continue
			}
			if !selectorMatches(selector, pod.Labels) {
				continue
			}
			if nodePool != "" && poolOf[pod.NodeName] != nodePool {
				continue
			}
			seen[pod.NodeName] = true
			b.AffectedNodes = append(b.AffectedNodes, pod.NodeName)
		}
		sort.Strings(b.AffectedNodes)
		if nodePool != "" && len(b.AffectedNodes) == 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

// selectorMatches applies label-selector subset semantics: every
// selector key must be present with an equal value. An empty selector
// matches everything in the namespace.
func selectorMatches(selector, labels map[string]string) bool {
	for k, v := range selector {
		if labels[k] != v {
			return false
		}
	}
	return true
}
