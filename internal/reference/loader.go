// internal/reference/loader.go
package reference

import (
	"context"
	"database/sql"
	"fmt"

	"career-assessment-workers/internal/common/config"
	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

// Sources holds the connections a configured source may need. Unused
// fields may be nil.
type Sources struct {
	DB            *sql.DB
	Elasticsearch *elasticsearch.Client
}

// Load reads norms and catalog once from the configured sources.
func Load(ctx context.Context, cfg config.ReferenceConfig, src Sources, log logger.Logger) (*NormTable, *Catalog, error) {
	norms, err := loadNorms(ctx, cfg, src)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := loadCatalog(ctx, cfg, src)
	if err != nil {
		return nil, nil, err
	}

	log.Info("reference data loaded", map[string]interface{}{
		"normsSource":   cfg.NormsSource,
		"norms":         norms.Len(),
		"catalogSource": cfg.CatalogSource,
		"careers":       catalog.Len(),
	})
	return norms, catalog, nil
}

func loadNorms(ctx context.Context, cfg config.ReferenceConfig, src Sources) (*NormTable, error) {
	switch cfg.NormsSource {
	case "", config.SourceFile:
		if cfg.NormsPath == "" {
			return EmptyNormTable(), nil
		}
		return LoadNormsFile(cfg.NormsPath)
	case config.SourcePostgres:
		if src.DB == nil {
			return nil, apperrors.NewNormsLoadFailedError("postgres", fmt.Errorf("no database connection"))
		}
		return LoadNormsFromPostgres(ctx, src.DB)
	default:
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("unknown norms source %q", cfg.NormsSource))
	}
}

func loadCatalog(ctx context.Context, cfg config.ReferenceConfig, src Sources) (*Catalog, error) {
	switch cfg.CatalogSource {
	case "", config.SourceFile:
		return LoadCatalogFile(cfg.CatalogPath)
	case config.SourceElasticsearch:
		if src.Elasticsearch == nil {
			return nil, apperrors.NewCatalogLoadFailedError("elasticsearch", fmt.Errorf("no elasticsearch client"))
		}
		return LoadCatalogFromElasticsearch(ctx, src.Elasticsearch, cfg.CatalogIndex)
	default:
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("unknown catalog source %q", cfg.CatalogSource))
	}
}
