// internal/reference/seed.go
package reference

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	normsTableDDL = `CREATE TABLE IF NOT EXISTS normative_data (
	instrument VARCHAR(16) NOT NULL,
	dimension  VARCHAR(64) NOT NULL,
	age_group  VARCHAR(32),
	region     VARCHAR(32),
	mean       DOUBLE PRECISION NOT NULL,
	std_dev    DOUBLE PRECISION NOT NULL,
	basis      VARCHAR(16) NOT NULL DEFAULT 'normalized'
)`
	normsDelete = `DELETE FROM normative_data`
	normsInsert = `INSERT INTO normative_data (instrument, dimension, age_group, region, mean, std_dev, basis) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)`
)

// catalogMapping keeps careerId and category as exact-match keywords. The
// requirement vectors are stored but not indexed.
const catalogMapping = `{
  "mappings": {
    "properties": {
      "careerId": {"type": "keyword"},
      "title": {"type": "text"},
      "category": {"type": "keyword"},
      "requirementVectors": {"type": "object", "enabled": false},
      "personalityTypes": {"type": "object", "enabled": false},
      "metadata": {"type": "object", "enabled": false}
    }
  }
}`

// SeedNormsPostgres replaces the normative_data rows with entries in one
// transaction.
func SeedNormsPostgres(ctx context.Context, db *sql.DB, entries []NormEntry) (int, error) {
	if _, err := NewNormTable(entries); err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, normsTableDDL); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("create normative_data", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, normsDelete); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("delete norms", err)
	}
	for _, e := range entries {
		code, _ := models.ParseInstrumentCode(string(e.Instrument))
		basis := e.Basis
		if basis == "" {
			basis = models.NormBasisNormalized
		}
		if _, err := tx.ExecContext(ctx, normsInsert,
			string(code), strings.ToLower(e.Dimension), e.AgeGroup, e.Region, e.Mean, e.StdDev, string(basis)); err != nil {
			return 0, apperrors.NewQueryExecutionFailedError("insert norm", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewQueryExecutionFailedError("commit norms", err)
	}
	return len(entries), nil
}

// IndexCatalog writes every career as a document keyed by careerId and
// refreshes the index so a following search sees them.
func IndexCatalog(ctx context.Context, es *elasticsearch.Client, index string, catalog *Catalog) (int, error) {
	if index == "" {
		return 0, apperrors.NewInvalidInputError("catalog index name is required")
	}

	if err := ensureCatalogIndex(ctx, es, index); err != nil {
		return 0, err
	}

	for _, career := range catalog.Careers() {
		body, err := json.Marshal(career)
		if err != nil {
			return 0, apperrors.NewInvalidCatalogError(err.Error())
		}

		res, err := esapi.IndexRequest{
			Index:      index,
			DocumentID: career.CareerID,
			Body:       bytes.NewReader(body),
		}.Do(ctx, es)
		if err != nil {
			return 0, apperrors.NewElasticsearchConnectionFailedError(err)
		}
		res.Body.Close()
		if res.IsError() {
			return 0, apperrors.NewSearchQueryFailedError("index career", fmt.Errorf("%s: %s", career.CareerID, res.Status()))
		}
	}

	res, err := esapi.IndicesRefreshRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return 0, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, apperrors.NewSearchQueryFailedError("refresh", fmt.Errorf("%s", res.Status()))
	}

	return catalog.Len(), nil
}

// ensureCatalogIndex creates index with catalogMapping when it is missing.
// An existing index is left as is.
func ensureCatalogIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return apperrors.NewSearchQueryFailedError("index exists", fmt.Errorf("%s: %s", index, res.Status()))
	}

	res, err = esapi.IndicesCreateRequest{
		Index: index,
		Body:  strings.NewReader(catalogMapping),
	}.Do(ctx, es)
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return apperrors.NewSearchQueryFailedError("create index", fmt.Errorf("%s: %s", index, res.String()))
	}
	return nil
}
