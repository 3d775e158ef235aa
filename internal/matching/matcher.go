// internal/matching/matcher.go
package matching

import (
	"context"
	"sort"
	"strings"

	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopN        = 15
	DefaultMinScore    = 40.0
	DefaultParallelism = 8

	// MinConfidence is the floor of the consistency-based confidence.
	MinConfidence = 50.0
)

// Options narrows one match request.
type Options struct {
	TopN       int      `json:"topN"`     // <= 0 keeps every match
	MinScore   float64  `json:"minScore"` // matches below are dropped
	Categories []string `json:"categories,omitempty"`
}

func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, MinScore: DefaultMinScore}
}

// Config wires a Matcher.
type Config struct {
	Strategy    MatchStrategy
	Weights     CategoryWeights
	Parallelism int
}

// Matcher ranks a catalog of careers against a user profile.
type Matcher struct {
	strategy    MatchStrategy
	interest    MatchStrategy
	weights     CategoryWeights
	parallelism int
	logger      logger.Logger
}

func NewMatcher(cfg Config, log logger.Logger) (*Matcher, error) {
	if cfg.Strategy == nil {
		cfg.Strategy = DifferenceStrategy{}
	}
	if cfg.Weights == nil {
		cfg.Weights = DefaultCategoryWeights()
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultParallelism
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Matcher{
		strategy:    cfg.Strategy,
		interest:    CosineStrategy{},
		weights:     cfg.Weights,
		parallelism: cfg.Parallelism,
		logger:      log.WithFields(map[string]interface{}{"component": "matcher", "strategy": cfg.Strategy.Name()}),
	}, nil
}

// Score evaluates one career without ranking it.
func (m *Matcher) Score(profile *models.UserProfile, career models.CareerRequirement) models.MatchResult {
	breakdown := make(map[models.MatchCategory]float64, len(models.MatchCategories))
	for _, c := range models.MatchCategories {
		breakdown[c] = m.categoryScore(profile, career, c)
	}

	var overall float64
	values := make([]float64, 0, len(models.MatchCategories))
	for _, c := range models.MatchCategories {
		overall += breakdown[c] * m.weights[c]
		values = append(values, breakdown[c])
	}
	overall = psychometrics.Round(psychometrics.Clamp(overall, 0, 100), 1)

	explanation, strengths, challenges := Explain(career.Title, overall, breakdown)

	return models.MatchResult{
		CareerID:     career.CareerID,
		Title:        career.Title,
		Category:     career.Category,
		OverallScore: overall,
		Breakdown:    breakdown,
		Confidence:   Confidence(values),
		FitLabel:     FitLabel(overall),
		Explanation:  explanation,
		Strengths:    strengths,
		Challenges:   challenges,
		Metadata:     career.Metadata,
	}
}

func (m *Matcher) categoryScore(profile *models.UserProfile, career models.CareerRequirement, c models.MatchCategory) float64 {
	code := c.Instrument()
	requirement := career.Requirements[code]
	user := profile.Vector(code)

	switch c {
	case models.CategoryPersonality:
		if len(career.PersonalityTypes) > 0 {
			return PersonalitySimilarity(profile.PersonalityType(), career.PersonalityTypes)
		}
		if len(requirement) == 0 || len(user) == 0 {
			return psychometrics.NeutralSimilarity
		}
		return m.strategy.Similarity(user, requirement)
	case models.CategoryInterest:
		if len(requirement) == 0 || len(user) == 0 {
			return psychometrics.NeutralSimilarity
		}
		return m.interest.Similarity(user, requirement)
	default:
		if len(requirement) == 0 || len(user) == 0 {
			return psychometrics.NeutralSimilarity
		}
		return m.strategy.Similarity(user, requirement)
	}
}

// Confidence rewards even category scores: 100 minus their spread, floored at 50.
func Confidence(categoryScores []float64) float64 {
	c := 100 - psychometrics.PopulationStdDev(categoryScores)
	if c < MinConfidence {
		c = MinConfidence
	}
	return psychometrics.Round(c, 1)
}

// Match scores every career in parallel, filters, and returns a stable
// ranking. Ties keep catalog order, so parallelism never changes the result.
func (m *Matcher) Match(ctx context.Context, profile *models.UserProfile, catalog []models.CareerRequirement, opts Options) ([]models.MatchResult, error) {
	if profile == nil || len(profile.Results) == 0 {
		return nil, apperrors.NewInvalidProfileError("profile has no instrument results")
	}

	results := make([]models.MatchResult, len(catalog))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallelism)
	for i := range catalog {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = m.Score(profile, catalog[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := Rank(results, catalog, opts)

	m.logger.Debug("matched profile", map[string]interface{}{
		"userId":   profile.UserID,
		"careers":  len(catalog),
		"returned": len(ranked),
	})

	return ranked, nil
}

// Rank filters scored results (indexed like catalog), sorts them by
// descending score with catalog order as tie-break, truncates and numbers them.
func Rank(results []models.MatchResult, catalog []models.CareerRequirement, opts Options) []models.MatchResult {
	allowed := make(map[string]bool, len(opts.Categories))
	for _, c := range opts.Categories {
		allowed[strings.ToLower(strings.TrimSpace(c))] = true
	}

	kept := make([]models.MatchResult, 0, len(results))
	for i, r := range results {
		if r.OverallScore < opts.MinScore {
			continue
		}
		if len(allowed) > 0 && !allowed[strings.ToLower(catalog[i].Category)] {
			continue
		}
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].OverallScore > kept[j].OverallScore
	})

	if opts.TopN > 0 && len(kept) > opts.TopN {
		kept = kept[:opts.TopN]
	}
	for i := range kept {
		kept[i].Rank = i + 1
	}
	return kept
}
