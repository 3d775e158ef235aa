// cmd/worker-manager/health_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/engine"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/reference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func TestHealth(t *testing.T) {
	mux := newHealthMux(nil, false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		checks   map[string]func(context.Context) error
		expected int
		state    string
	}{
		{
			name:     "all dependencies up",
			checks:   map[string]func(context.Context) error{"redis": ok, "zeebe": ok},
			expected: http.StatusOK,
			state:    "ready",
		},
		{
			name: "redis down",
			checks: map[string]func(context.Context) error{
				"redis": func(context.Context) error { return errors.New("connection refused") },
				"zeebe": ok,
			},
			expected: http.StatusServiceUnavailable,
			state:    "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newHealthMux(tt.checks, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.expected, rec.Code)
			var body struct {
				Status       string            `json:"status"`
				Dependencies map[string]string `json:"dependencies"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.state, body.Status)
			assert.Equal(t, "ok", body.Dependencies["zeebe"])
		})
	}
}

func TestMetricsToggle(t *testing.T) {
	rec := httptest.NewRecorder()
	newHealthMux(nil, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	newHealthMux(nil, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReferenceCheck(t *testing.T) {
	empty, err := engine.New(config.EngineConfig{}, nil, nil, nil)
	require.NoError(t, err)
	err = referenceCheck(empty)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog is empty")

	catalog, err := reference.NewCatalog([]models.CareerRequirement{{CareerID: "nurse", Title: "Nurse"}})
	require.NoError(t, err)
	loaded, err := engine.New(config.EngineConfig{}, nil, catalog, nil)
	require.NoError(t, err)
	assert.NoError(t, referenceCheck(loaded)(context.Background()))

	mux := newHealthMux(map[string]func(context.Context) error{"reference": referenceCheck(empty)}, false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
