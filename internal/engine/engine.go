// internal/engine/engine.go
package engine

import (
	"context"

	"career-assessment-workers/internal/common/config"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/instruments"
	"career-assessment-workers/internal/matching"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
	"career-assessment-workers/internal/reference"
)

// Engine scores submissions and matches profiles against one immutable set
// of reference data. It is safe for concurrent use.
type Engine struct {
	registry *instruments.Registry
	matcher  *matching.Matcher
	catalog  *reference.Catalog
	defaults matching.Options
	strategy string
	logger   logger.Logger
}

// New builds an engine from the engine config section. Nil norms resolve
// every lookup to the default norm; a nil catalog matches nothing.
func New(cfg config.EngineConfig, norms *reference.NormTable, catalog *reference.Catalog, log logger.Logger) (*Engine, error) {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if norms == nil {
		norms = reference.EmptyNormTable()
	}
	if catalog == nil {
		catalog, _ = reference.NewCatalog(nil)
	}

	strategyName := cfg.MatchStrategy
	if strategyName == "" {
		strategyName = matching.StrategyDifference
	}
	strategy, err := matching.StrategyByName(strategyName)
	if err != nil {
		return nil, err
	}

	var weights matching.CategoryWeights
	if len(cfg.CategoryWeights) > 0 {
		weights, err = matching.CategoryWeightsFromMap(cfg.CategoryWeights)
		if err != nil {
			return nil, err
		}
	}

	matcher, err := matching.NewMatcher(matching.Config{
		Strategy:    strategy,
		Weights:     weights,
		Parallelism: cfg.Parallelism,
	}, log)
	if err != nil {
		return nil, err
	}

	registry := instruments.NewDefaultRegistry(
		psychometrics.NewStandardizer(norms),
		instruments.Options{
			AptitudeWeights: cfg.AptitudeWeights,
			IQTransform: instruments.IQTransform{
				Name:      cfg.IQTransform.Name,
				Intercept: cfg.IQTransform.Intercept,
				Slope:     cfg.IQTransform.Slope,
			},
		},
		log,
	)

	defaults := matching.DefaultOptions()
	if cfg.TopN != 0 {
		defaults.TopN = cfg.TopN
	}
	if cfg.MinMatchScore != 0 {
		defaults.MinScore = cfg.MinMatchScore
	}

	log.Info("assessment engine ready", map[string]interface{}{
		"norms":    norms.Len(),
		"careers":  catalog.Len(),
		"strategy": strategy.Name(),
		"topN":     defaults.TopN,
		"minScore": defaults.MinScore,
	})

	return &Engine{
		registry: registry,
		matcher:  matcher,
		catalog:  catalog,
		defaults: defaults,
		strategy: strategy.Name(),
		logger:   log,
	}, nil
}

// Score runs the full pipeline for one instrument submission.
func (e *Engine) Score(req models.ScoreRequest) (*models.InstrumentResult, error) {
	return e.registry.Score(req)
}

// BuildProfile composes instrument results into a matchable profile.
func (e *Engine) BuildProfile(userID string, results ...*models.InstrumentResult) *models.UserProfile {
	return models.NewUserProfile(userID, results...)
}

// Match ranks the loaded catalog against profile.
func (e *Engine) Match(ctx context.Context, profile *models.UserProfile, opts matching.Options) ([]models.MatchResult, error) {
	return e.matcher.Match(ctx, profile, e.catalog.Careers(), opts)
}

// DefaultMatchOptions returns the configured top-N and minimum score.
func (e *Engine) DefaultMatchOptions() matching.Options {
	return e.defaults
}

func (e *Engine) Strategy() string {
	return e.strategy
}

func (e *Engine) Catalog() *reference.Catalog {
	return e.catalog
}

// CatalogVersion identifies the career catalog rankings are computed from.
func (e *Engine) CatalogVersion() string {
	return e.catalog.Version()
}

func (e *Engine) Instruments() []models.InstrumentCode {
	return e.registry.Codes()
}
