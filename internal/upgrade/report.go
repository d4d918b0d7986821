package upgrade

import (
	"fmt"
	"time"

	"k8s.io/utils/ptr"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// Report is the pool-wide view of an in-flight upgrade wave.
type Report struct {
	Nodes                     []model.NodeUpgradeState
	Completed                 int
	Remaining                 int
	ElapsedSeconds            float64
	EstimatedRemainingSeconds *float64
	AnomalyFlag               bool
	AnomalyMessage            string

	// AnyActive is true when at least one node is mid-upgrade, which
	// gates the pod-transition fetch.
	AnyActive bool
}

// BuildReport classifies every node and derives pool-wide duration
// estimates. Pure function: the caller supplies now.
func BuildReport(nodes []model.NodeInfo, events []model.EventInfo, blockerNames []string, targetVersion string, anomalyThreshold time.Duration, now time.Time) Report {
	evidence, waveStart, waveSeen := GatherEvidence(nodes, events, blockerNames)

	var r Report
	r.Nodes = make([]model.NodeUpgradeState, len(evidence))
	pdbBlockSeen := false
	for i, ev := range evidence {
		phase := model.PhasePending
		if waveSeen {
			phase = ClassifyNode(ev, targetVersion, waveStart, now, anomalyThreshold)
		} else if ev.Node.Unschedulable {
			phase = model.PhaseCordoned
		}
		r.Nodes[i] = model.NodeUpgradeState{
			Node:           ev.Node.Name,
			Pool:           ev.Node.Pool,
			Phase:          phase,
			KubeletVersion: ev.Node.KubeletVersion,
			Unschedulable:  ev.Node.Unschedulable,
			PDBBlockers:    ev.PDBBlockers,
		}
		switch phase {
		case model.PhaseUpgraded:
			r.Completed++
		default:
			r.Remaining++
		}
		if phase.Active() {
			r.AnyActive = true
		}
		if phase == model.PhasePDBBlocked {
			pdbBlockSeen = true
		}
	}

	if !waveSeen {
		return r
	}

	elapsed := now.Sub(waveStart)
	r.ElapsedSeconds = elapsed.Seconds()

	// Linear extrapolation assuming uniform per-node duration. An
	// approximation, not a guarantee.
	if r.Completed > 0 && r.Remaining > 0 {
		meanPerNode := elapsed.Seconds() / float64(r.Completed)
		r.EstimatedRemainingSeconds = ptr.To(meanPerNode * float64(r.Remaining))
	}

	if elapsed > anomalyThreshold {
		r.AnomalyFlag = true
		if pdbBlockSeen {
			r.AnomalyMessage = fmt.Sprintf(
				"upgrade wave running %.0f minutes exceeds the %.0f minute baseline, but a PDB block was detected; the delay is policy-driven",
				elapsed.Minutes(), anomalyThreshold.Minutes())
		} else {
			r.AnomalyMessage = fmt.Sprintf(
				"upgrade wave running %.0f minutes exceeds the %.0f minute baseline",
				elapsed.Minutes(), anomalyThreshold.Minutes())
		}
	}

	return r
}
