package model

import "time"

// EventInfo is a cluster event with a single resolved timestamp.
// The timestamp is chosen by priority: most-recent-recurrence, else
// series start, else first observation — recurrence wins because it
// reflects the freshest state.
type EventInfo struct {
	Reason    string    `json:"reason"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Namespace string    `json:"namespace,omitempty"`
	Message   string    `json:"message,omitempty"`
	Count     int32     `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}
