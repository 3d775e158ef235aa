// internal/reference/catalog_test.go
package reference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "careers": [
    {
      "careerId": "software-engineer",
      "title": "Software Engineer",
      "category": "Technology",
      "requirementVectors": {
        "RIASEC": {"Investigative": 0.9, "Realistic": 0.6},
        "aptitude": {"logical": 85, "numerical": 75}
      },
      "personalityTypes": {"INTJ": 95, "INTP": 90},
      "metadata": {"salaryRange": "90k-160k", "outlook": "growing"}
    },
    {
      "careerId": "counselor",
      "title": "School Counselor",
      "category": "Education",
      "requirementVectors": {
        "RIASEC": {"social": 0.95},
        "EQ": {"empathy": 0.9}
      }
    }
  ]
}`

// ==========================
// ParseCatalog
// ==========================

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	careers := catalog.Careers()
	assert.Equal(t, "software-engineer", careers[0].CareerID)
	assert.Equal(t, "counselor", careers[1].CareerID)

	se, ok := catalog.Get("software-engineer")
	require.True(t, ok)
	assert.Equal(t, 0.9, se.Requirements[models.InstrumentInterest]["investigative"])
	assert.Equal(t, 85.0, se.Requirements[models.InstrumentAptitude]["logical"])
	assert.Equal(t, "growing", se.Metadata["outlook"])

	_, ok = catalog.Get("astronaut")
	assert.False(t, ok)
}

func TestCatalog_CareersIsCopy(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	careers := catalog.Careers()
	careers[0].Title = "changed"

	again := catalog.Careers()
	assert.Equal(t, "Software Engineer", again[0].Title)
}

func TestCatalog_Version(t *testing.T) {
	a, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	b, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.NotEmpty(t, a.Version())
	assert.Equal(t, a.Version(), b.Version())

	careers := a.Careers()
	reversed, err := NewCatalog([]models.CareerRequirement{careers[1], careers[0]})
	require.NoError(t, err)
	assert.NotEqual(t, a.Version(), reversed.Version())

	var nilCatalog *Catalog
	assert.Empty(t, nilCatalog.Version())
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"careers": [`},
		{"missing careers", `{}`},
		{"missing title", `{"careers": [{"careerId": "x", "requirementVectors": {}}]}`},
		{"out of range requirement", `{"careers": [{"careerId": "x", "title": "X", "requirementVectors": {"EQ": {"empathy": 140}}}]}`},
		{"non numeric requirement", `{"careers": [{"careerId": "x", "title": "X", "requirementVectors": {"EQ": {"empathy": "high"}}}]}`},
		{"unknown instrument", `{"careers": [{"careerId": "x", "title": "X", "requirementVectors": {"ASTROLOGY": {"leo": 0.5}}}]}`},
		{"duplicate id", `{"careers": [{"careerId": "x", "title": "X", "requirementVectors": {}}, {"careerId": "x", "title": "Y", "requirementVectors": {}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careers.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	catalog, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, apperrors.ErrCodeCatalogLoadFailed, apperrors.CodeOf(err))
}

// ==========================
// Elasticsearch source
// ==========================

func newTestElasticsearch(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client
}

func TestLoadCatalogFromElasticsearch(t *testing.T) {
	var doc struct {
		Careers []json.RawMessage `json:"careers"`
	}
	require.NoError(t, json.Unmarshal([]byte(sampleCatalog), &doc))

	var gotPath string
	var query map[string]interface{}
	client := newTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&query))
		hits := make([]map[string]interface{}, 0, len(doc.Careers))
		for _, c := range doc.Careers {
			hits = append(hits, map[string]interface{}{"_source": c})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{
				"total": map[string]interface{}{"value": len(hits)},
				"hits":  hits,
			},
		})
	})

	catalog, err := LoadCatalogFromElasticsearch(context.Background(), client, "careers")
	require.NoError(t, err)
	assert.Equal(t, "/careers/_search", gotPath)
	assert.Equal(t, true, query["track_total_hits"])
	// careerId is text under dynamic mapping; sorting on it server side fails.
	assert.NotContains(t, query, "sort")

	require.Equal(t, 2, catalog.Len())
	careers := catalog.Careers()
	assert.Equal(t, "counselor", careers[0].CareerID)
	assert.Equal(t, "software-engineer", careers[1].CareerID)
}

func TestLoadCatalogFromElasticsearch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected apperrors.ErrorCode
	}{
		{"missing index", http.StatusNotFound, `{"error": {"type": "index_not_found_exception"}, "status": 404}`, apperrors.ErrCodeIndexNotFound},
		{"server error", http.StatusInternalServerError, `{"error": "boom", "status": 500}`, apperrors.ErrCodeSearchQueryFailed},
		{"invalid document", http.StatusOK, `{"hits": {"hits": [{"_source": {"careerId": "x"}}]}}`, apperrors.ErrCodeInvalidCatalog},
		{"truncated catalog", http.StatusOK, `{"hits": {"total": {"value": 12000}, "hits": []}}`, apperrors.ErrCodeCatalogLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := LoadCatalogFromElasticsearch(context.Background(), client, "careers")
			require.Error(t, err)
			assert.Equal(t, tt.expected, apperrors.CodeOf(err))
		})
	}
}
