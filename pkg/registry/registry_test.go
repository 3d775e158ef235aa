// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	taskTypes  = []string{"score-assessment", "match-careers"}
	errorCodes = []string{"INVALID_INPUT", "UNSUPPORTED_INSTRUMENT", "INVALID_PROFILE"}
)

func validRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{TaskType: "score-assessment", DisplayName: "Score Assessment", Timeout: "10s", ErrorCodes: []string{"INVALID_INPUT", "UNSUPPORTED_INSTRUMENT"}},
			{TaskType: "match-careers", DisplayName: "Match Careers", Timeout: "30s", ErrorCodes: []string{"INVALID_PROFILE"}},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "activity-registry.json")
	reg := validRegistry()
	require.NoError(t, reg.Save(path))
	assert.NotEmpty(t, reg.LastUpdated)

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 2)

	a, ok := loaded.Find("match-careers")
	require.True(t, ok)
	assert.Equal(t, "Match Careers", a.DisplayName)

	_, ok = loaded.Find("unknown")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ActivityRegistry)
		message string
	}{
		{"valid", func(r *ActivityRegistry) {}, ""},
		{"duplicate", func(r *ActivityRegistry) { r.Activities = append(r.Activities, r.Activities[0]) }, "duplicate activity"},
		{"undocumented worker", func(r *ActivityRegistry) { r.Activities = r.Activities[:1] }, "not documented"},
		{"unknown task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = "send-fax" }, "has no worker"},
		{"bad timeout", func(r *ActivityRegistry) { r.Activities[0].Timeout = "soon" }, "invalid timeout"},
		{"unknown error code", func(r *ActivityRegistry) { r.Activities[0].ErrorCodes = []string{"BOOM"} }, "unknown error code"},
		{"missing display name", func(r *ActivityRegistry) { r.Activities[0].DisplayName = "" }, "displayName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistry()
			tt.mutate(reg)
			err := reg.Validate(taskTypes, errorCodes)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadRegistry_Missing(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
