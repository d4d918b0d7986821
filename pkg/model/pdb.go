package model

import "strconv"

// PDBInfo is the normalized view of a PodDisruptionBudget. Exactly one
// of MinAvailable/MaxUnavailable is set (enforced by the API server,
// not by this code). Budget values keep their original representation:
// integer counts parse to the int form, percentage strings stay strings.
type PDBInfo struct {
	Name      string            `json:"name"`
	Namespace string            `json:"namespace"`
	Selector  map[string]string `json:"selector,omitempty"`

	MinAvailable   *BudgetValue `json:"min_available,omitempty"`
	MaxUnavailable *BudgetValue `json:"max_unavailable,omitempty"`

	CurrentHealthy     int32 `json:"current_healthy"`
	DesiredHealthy     int32 `json:"desired_healthy"`
	DisruptionsAllowed int32 `json:"disruptions_allowed"`
	ExpectedPods       int32 `json:"expected_pods"`
}

// BudgetValue is a PDB budget that is either an integer count or a
// percentage string like "25%".
type BudgetValue struct {
	IntValue int    `json:"int_value,omitempty"`
	StrValue string `json:"str_value,omitempty"`
	IsInt    bool   `json:"is_int"`
}

// String renders the budget the way the PDB author wrote it.
func (b BudgetValue) String() string {
	if b.IsInt {
		return strconv.Itoa(b.IntValue)
	}
	return b.StrValue
}

// PDBBlocker describes a disruption budget that would block an
// eviction-based drain.
type PDBBlocker struct {
	Name          string   `json:"name"`
	Namespace     string   `json:"namespace"`
	Reason        string   `json:"reason"`
	AffectedNodes []string `json:"affected_nodes,omitempty"`
}
