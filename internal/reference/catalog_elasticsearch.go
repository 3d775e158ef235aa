// internal/reference/catalog_elasticsearch.go
package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	apperrors "career-assessment-workers/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// MaxCatalogSize bounds a single catalog fetch. A larger index is rejected
// rather than loaded partially.
const MaxCatalogSize = 10000

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// LoadCatalogFromElasticsearch fetches every career document from index and
// validates it like a catalog file. Careers are ordered by careerId on the
// client, so the result does not depend on how careerId is mapped.
func LoadCatalogFromElasticsearch(ctx context.Context, es *elasticsearch.Client, index string) (*Catalog, error) {
	if index == "" {
		return nil, apperrors.NewInvalidInputError("catalog index name is required")
	}

	query := map[string]interface{}{
		"query":            map[string]interface{}{"match_all": map[string]interface{}{}},
		"track_total_hits": true,
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError("catalog", err)
	}

	size := MaxCatalogSize
	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, es)
	if err != nil {
		return nil, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewIndexNotFoundError(index)
	}
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError("catalog", fmt.Errorf("%s", res.String()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(index, err)
	}

	if r.Hits.Total.Value > len(r.Hits.Hits) {
		return nil, apperrors.NewCatalogLoadFailedError(index, fmt.Errorf(
			"index holds %d careers, only %d returned (limit %d)", r.Hits.Total.Value, len(r.Hits.Hits), MaxCatalogSize))
	}

	careers := make([]json.RawMessage, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		careers = append(careers, hit.Source)
	}
	doc, err := json.Marshal(map[string]interface{}{"careers": careers})
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(index, err)
	}

	catalog, err := ParseCatalog(doc)
	if err != nil {
		return nil, err
	}
	ordered := catalog.Careers()
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].CareerID < ordered[j].CareerID })
	return NewCatalog(ordered)
}
