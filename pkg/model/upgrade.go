package model

// NodePhase is a node's position in an in-flight version upgrade,
// recomputed on every query from event evidence — never persisted.
type NodePhase string

// Upgrade lifecycle states. Upgraded is terminal.
const (
	PhasePending    NodePhase = "pending"
	PhaseCordoned   NodePhase = "cordoned"
	PhaseUpgrading  NodePhase = "upgrading"
	PhasePDBBlocked NodePhase = "pdb_blocked"
	PhaseStalled    NodePhase = "stalled"
	PhaseUpgraded   NodePhase = "upgraded"
)

// Active reports whether the node is mid-upgrade: cordoned, upgrading,
// blocked, or stalled. Pending and upgraded nodes are not active.
func (p NodePhase) Active() bool {
	switch p {
	case PhaseCordoned, PhaseUpgrading, PhasePDBBlocked, PhaseStalled:
		return true
	}
	return false
}

// NodeUpgradeState is the per-node classification emitted by the
// upgrade progress tool.
type NodeUpgradeState struct {
	Node           string    `json:"node"`
	Pool           string    `json:"pool"`
	Phase          NodePhase `json:"phase"`
	KubeletVersion string    `json:"kubelet_version"`
	Unschedulable  bool      `json:"unschedulable"`
	PDBBlockers    []string  `json:"pdb_blockers,omitempty"`
}

// TransitionPod is one unhealthy pod on a node that is actively
// upgrading, classified by failure category.
type TransitionPod struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Node      string `json:"node"`
	Phase     string `json:"phase"`
	Category  string `json:"category"`
	Reason    string `json:"reason,omitempty"`
}

// PodTransitionSummary tallies pod churn on actively-upgrading nodes.
// Pods holds at most the emitted cap; Total is the true count.
type PodTransitionSummary struct {
	Pending    int             `json:"pending"`
	Failed     int             `json:"failed"`
	ByCategory map[string]int  `json:"by_category,omitempty"`
	Pods       []TransitionPod `json:"pods,omitempty"`
	Total      int             `json:"total"`
	Truncated  bool            `json:"truncated"`
}
