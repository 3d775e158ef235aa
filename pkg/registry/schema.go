// pkg/registry/schema.go
package registry

import "encoding/json"

// ActivityRegistry documents the BPMN service tasks this repository serves.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity is one service task: its task type, the variables it reads, and
// the BPMN error codes a process may catch from it.
type Activity struct {
	TaskType     string          `json:"taskType"`
	DisplayName  string          `json:"displayName"`
	Description  string          `json:"description"`
	Version      string          `json:"version"`
	Status       string          `json:"status"`
	InputSchema  json.RawMessage `json:"inputSchema,omitempty"`
	OutputFields []string        `json:"outputFields"`
	ErrorCodes   []string        `json:"errorCodes"`
	Timeout      string          `json:"timeout"`
	Retries      int             `json:"retries"`
}

// Statuses
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)
