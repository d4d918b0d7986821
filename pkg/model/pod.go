package model

// ContainerInfo captures the state of one container inside a pod.
// Current state and last-terminated state are kept separately: OOMKill
// detection inspects the previous run's termination, not the current
// transient state.
type ContainerInfo struct {
	Name         string `json:"name"`
	Ready        bool   `json:"ready"`
	RestartCount int32  `json:"restart_count"`

	// State is "running", "waiting", or "terminated".
	State       string `json:"state"`
	StateReason string `json:"state_reason,omitempty"`
	ExitCode    *int32 `json:"exit_code,omitempty"`

	LastTerminatedReason string `json:"last_terminated_reason,omitempty"`
}

// PodInfo is the normalized view of a pod used by the failure
// classifier and the upgrade pod-transition summary.
type PodInfo struct {
	Name       string          `json:"name"`
	Namespace  string          `json:"namespace"`
	Phase      string          `json:"phase"`
	NodeName   string          `json:"node_name,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Message    string          `json:"message,omitempty"`
	Containers []ContainerInfo `json:"containers,omitempty"`

	// Labels are kept for PDB selector matching, not emitted.
	Labels map[string]string `json:"-"`
}
