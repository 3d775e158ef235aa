// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry with a fresh LastUpdated stamp.
func (r *ActivityRegistry) Save(path string) error {
	r.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Find returns the activity for taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks that every served task type is documented exactly once,
// that no activity names an unknown task type, and that every listed
// error code is one a process can catch.
func (r *ActivityRegistry) Validate(taskTypes, errorCodes []string) error {
	served := make(map[string]bool, len(taskTypes))
	for _, t := range taskTypes {
		served[t] = true
	}
	catchable := make(map[string]bool, len(errorCodes))
	for _, c := range errorCodes {
		catchable[c] = true
	}

	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.TaskType == "" {
			return fmt.Errorf("activity missing required field: taskType")
		}
		if seen[a.TaskType] {
			return fmt.Errorf("duplicate activity: %s", a.TaskType)
		}
		seen[a.TaskType] = true

		if !served[a.TaskType] {
			return fmt.Errorf("activity %s has no worker", a.TaskType)
		}
		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: displayName", a.TaskType)
		}
		if a.Timeout != "" {
			if _, err := time.ParseDuration(a.Timeout); err != nil {
				return fmt.Errorf("activity %s: invalid timeout %q", a.TaskType, a.Timeout)
			}
		}
		for _, code := range a.ErrorCodes {
			if !catchable[code] {
				return fmt.Errorf("activity %s: unknown error code %s", a.TaskType, code)
			}
		}
	}

	for _, t := range taskTypes {
		if !seen[t] {
			return fmt.Errorf("worker %s is not documented in the registry", t)
		}
	}
	return nil
}
