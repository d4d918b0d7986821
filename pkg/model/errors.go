package model

// ToolError is a structured, non-fatal diagnostic attached to a tool
// response. PartialData signals that the response is incomplete but
// still meaningful.
type ToolError struct {
	Message     string `json:"message"`
	Source      string `json:"source"`
	Cluster     string `json:"cluster,omitempty"`
	PartialData bool   `json:"partial_data"`
}
