// internal/reference/seed_test.go
package reference

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"sync"
	"testing"

	apperrors "career-assessment-workers/internal/common/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// SeedNormsPostgres
// ==========================

func TestSeedNormsPostgres(t *testing.T) {
	entries, err := ParseNormEntries([]byte(`
norms:
  - {instrument: riasec, dimension: Social, mean: 55, std_dev: 16}
  - {instrument: EQ, dimension: empathy, age_group: "18-24", mean: 60, std_dev: 12, basis: raw_average}
`))
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS normative_data").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(normsDelete)).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(normsInsert)).
		WithArgs("RIASEC", "social", "", "", 55.0, 16.0, "normalized").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(normsInsert)).
		WithArgs("EQ", "empathy", "18-24", "", 60.0, 12.0, "raw_average").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := SeedNormsPostgres(context.Background(), db, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedNormsPostgres_RollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM normative_data").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO normative_data").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = SeedNormsPostgres(context.Background(), db, []NormEntry{{Instrument: "MI", Dimension: "musical", Mean: 50, StdDev: 10}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedNormsPostgres_RejectsInvalidEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = SeedNormsPostgres(context.Background(), db, []NormEntry{{Instrument: "XYZ", Dimension: "a"}})
	assert.Equal(t, apperrors.ErrCodeInvalidNorms, apperrors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// IndexCatalog
// ==========================

func TestIndexCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	tests := []struct {
		name          string
		indexExists   bool
		expectedPaths []string
	}{
		{
			name:        "creates missing index with keyword mapping",
			indexExists: false,
			expectedPaths: []string{
				"HEAD /careers",
				"PUT /careers",
				"PUT /careers/_doc/software-engineer",
				"PUT /careers/_doc/counselor",
				"POST /careers/_refresh",
			},
		},
		{
			name:        "keeps existing index",
			indexExists: true,
			expectedPaths: []string{
				"HEAD /careers",
				"PUT /careers/_doc/software-engineer",
				"PUT /careers/_doc/counselor",
				"POST /careers/_refresh",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mu sync.Mutex
			var paths []string
			var mapping []byte
			client := newTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				defer mu.Unlock()
				paths = append(paths, r.Method+" "+r.URL.Path)
				switch {
				case r.Method == http.MethodHead && !tt.indexExists:
					w.WriteHeader(http.StatusNotFound)
				case r.Method == http.MethodHead:
					w.WriteHeader(http.StatusOK)
				case r.Method == http.MethodPut && r.URL.Path == "/careers":
					mapping, _ = io.ReadAll(r.Body)
					_, _ = w.Write([]byte(`{"acknowledged": true}`))
				default:
					_, _ = w.Write([]byte(`{"result": "created"}`))
				}
			})

			n, err := IndexCatalog(context.Background(), client, "careers", catalog)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, tt.expectedPaths, paths)

			if !tt.indexExists {
				var body struct {
					Mappings struct {
						Properties map[string]struct {
							Type string `json:"type"`
						} `json:"properties"`
					} `json:"mappings"`
				}
				require.NoError(t, json.Unmarshal(mapping, &body))
				assert.Equal(t, "keyword", body.Mappings.Properties["careerId"].Type)
				assert.Equal(t, "keyword", body.Mappings.Properties["category"].Type)
			}
		})
	}
}

func TestIndexCatalog_Errors(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	client := newTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "mapper_parsing_exception", "status": 400}`))
	})

	_, err = IndexCatalog(context.Background(), client, "careers", catalog)
	assert.Equal(t, apperrors.ErrCodeSearchQueryFailed, apperrors.CodeOf(err))

	_, err = IndexCatalog(context.Background(), client, "", catalog)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.CodeOf(err))
}
