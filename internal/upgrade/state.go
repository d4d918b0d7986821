// Package upgrade reconstructs the per-node upgrade lifecycle from
// sparse, eventually-consistent signals: node events, version fields,
// and PDB drain blockers. Classification is recomputed on every query,
// never persisted.
package upgrade

import (
	"strings"
	"time"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// Node event reasons the state machine consumes.
const (
	ReasonNodeUpgrade  = "NodeUpgrade"
	ReasonNodeReady    = "NodeReady"
	ReasonNodeNotReady = "NodeNotReady"
)

// Reasons returns the event reason filter for the node event provider.
func Reasons() []string {
	return []string{ReasonNodeUpgrade, ReasonNodeReady, ReasonNodeNotReady}
}

// Evidence is the per-node input to classification.
type Evidence struct {
	Node        model.NodeInfo
	HasUpgrade  bool
	HasReady    bool
	PDBBlockers []string
}

// ClassifyNode assigns a node its upgrade lifecycle phase. Rules are
// evaluated in fixed priority order:
//
//  1. upgrade event + ready event + version matches target → upgraded
//  2. upgrade event, no ready event: over the anomaly budget it is
//     pdb_blocked (unschedulable with a blocker) or stalled; within
//     budget it is pdb_blocked or upgrading
//  3. unschedulable with no upgrade event → cordoned
//  4. pending
//
// PDB-blocked is checked before stalled/upgrading because an expected,
// policy-driven delay must be distinguishable from a stuck upgrade.
//
// Blocker attribution is fleet-wide: any blocker in the cluster counts
// against every cordoned node, without verifying the blocking PDB
// covers a pod on that specific node.
func ClassifyNode(ev Evidence, targetVersion string, waveStart, now time.Time, anomalyThreshold time.Duration) model.NodePhase {
	blocked := ev.Node.Unschedulable && len(ev.PDBBlockers) > 0

	if ev.HasUpgrade && ev.HasReady && versionsEqual(ev.Node.KubeletVersion, targetVersion) {
		return model.PhaseUpgraded
	}

	if ev.HasUpgrade && !ev.HasReady {
		if blocked {
			return model.PhasePDBBlocked
		}
		if now.Sub(waveStart) > anomalyThreshold {
			return model.PhaseStalled
		}
		return model.PhaseUpgrading
	}

	if ev.Node.Unschedulable {
		return model.PhaseCordoned
	}
	return model.PhasePending
}

// versionsEqual compares Kubernetes versions ignoring a leading "v" on
// either side.
func versionsEqual(a, b string) bool {
	return strings.TrimPrefix(a, "v") == strings.TrimPrefix(b, "v")
}

// GatherEvidence joins nodes with their filtered events and the
// cluster's drain blockers. Events are attributed by involved-object
// name; only Node-kind events with upgrade-relevant reasons count.
// It also returns the earliest NodeUpgrade timestamp (the upgrade-wave
// start) and whether any upgrade event was seen at all.
func GatherEvidence(nodes []model.NodeInfo, events []model.EventInfo, blockerNames []string) ([]Evidence, time.Time, bool) {
	type nodeEvents struct {
		upgrade bool
		ready   bool
	}
	byNode := make(map[string]*nodeEvents, len(nodes))
	for i := range nodes {
		byNode[nodes[i].Name] = &nodeEvents{}
	}

	var waveStart time.Time
	waveSeen := false
	for _, ev := range events {
		if ev.Kind != "Node" {
			continue
		}
		ne, ok := byNode[ev.Name]
		if !ok {
			continue
		}
		switch ev.Reason {
		case ReasonNodeUpgrade:
			ne.upgrade = true
			if !waveSeen || ev.Timestamp.Before(waveStart) {
				waveStart = ev.Timestamp
				waveSeen = true
			}
		case ReasonNodeReady:
			ne.ready = true
		}
	}

	out := make([]Evidence, len(nodes))
	for i, n := range nodes {
		ne := byNode[n.Name]
		out[i] = Evidence{
			Node:       n,
			HasUpgrade: ne.upgrade,
			HasReady:   ne.ready,
		}
		if n.Unschedulable {
			out[i].PDBBlockers = blockerNames
		}
	}
	return out, waveStart, waveSeen
}
