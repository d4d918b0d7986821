// Package pdb decides which disruption budgets would block an
// eviction-based drain given current cluster state.
package pdb

import (
	"fmt"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// Evaluate returns the budgets that block drain. A PDB blocks iff
// maxUnavailable is 0, or disruptionsAllowed is 0; the first condition
// is checked ahead of the second because it is an explicit,
// unconditional author declaration. Exactly one reason is reported per
// blocking PDB. Non-blocking PDBs are excluded entirely.
func Evaluate(pdbs []model.PDBInfo) []model.PDBBlocker {
	var blockers []model.PDBBlocker
	for _, p := range pdbs {
		reason, blocks := blockReason(p)
		if !blocks {
			continue
		}
		blockers = append(blockers, model.PDBBlocker{
			Name:      p.Name,
			Namespace: p.Namespace,
			Reason:    reason,
		})
	}
	return blockers
}

// blockReason returns the single reason a PDB blocks drain, if it does.
func blockReason(p model.PDBInfo) (string, bool) {
	if p.MaxUnavailable != nil && p.MaxUnavailable.IsInt && p.MaxUnavailable.IntValue == 0 {
		return "maxUnavailable=0", true
	}
	if p.DisruptionsAllowed == 0 {
		if p.MinAvailable != nil {
			return fmt.Sprintf("minAvailable=%s equals current healthy count (%d)",
				p.MinAvailable.String(), p.CurrentHealthy), true
		}
		return fmt.Sprintf("disruptionsAllowed=0 with %d healthy pods", p.CurrentHealthy), true
	}
	return "", false
}

// BlockerNames returns just the names of blocking PDBs, used by the
// upgrade state machine.
func BlockerNames(blockers []model.PDBBlocker) []string {
	if len(blockers) == 0 {
		return nil
	}
	names := make([]string, len(blockers))
	for i, b := range blockers {
		names[i] = b.Name
	}
	return names
}
