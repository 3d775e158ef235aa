// internal/matching/strategy.go
package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"career-assessment-workers/internal/psychometrics"
)

// missingUserValue stands in for a required dimension the user has no score for.
const missingUserValue = 0.5

// MatchStrategy scores how well a user vector meets a requirement vector.
// User values are 0-100; requirement values are 0-1 or 0-100. The result is
// 0-100, NeutralSimilarity when the requirement is empty.
type MatchStrategy interface {
	Name() string
	Similarity(user, requirement map[string]float64) float64
}

const (
	StrategyDifference = "difference"
	StrategyThreshold  = "threshold"
	StrategyCosine     = "cosine"
)

// StrategyByName resolves a configured strategy.
func StrategyByName(name string) (MatchStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyDifference:
		return DifferenceStrategy{}, nil
	case StrategyThreshold:
		return ThresholdStrategy{}, nil
	case StrategyCosine:
		return CosineStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown match strategy %q", name)
	}
}

// DifferenceStrategy rewards closeness: 1 - |user - requirement| per dimension.
type DifferenceStrategy struct{}

func (DifferenceStrategy) Name() string { return StrategyDifference }

func (DifferenceStrategy) Similarity(user, requirement map[string]float64) float64 {
	pairs := alignVectors(user, requirement)
	if len(pairs) == 0 {
		return psychometrics.NeutralSimilarity
	}
	var sum float64
	for _, p := range pairs {
		sum += 1 - math.Abs(p.user-p.required)
	}
	return finish(sum / float64(len(pairs)) * 100)
}

// ThresholdStrategy gives full credit once a requirement is met and
// proportional credit below it.
type ThresholdStrategy struct{}

func (ThresholdStrategy) Name() string { return StrategyThreshold }

func (ThresholdStrategy) Similarity(user, requirement map[string]float64) float64 {
	pairs := alignVectors(user, requirement)
	if len(pairs) == 0 {
		return psychometrics.NeutralSimilarity
	}
	var sum float64
	for _, p := range pairs {
		switch {
		case p.required <= 0 || p.user >= p.required:
			sum += 1
		default:
			sum += p.user / p.required
		}
	}
	return finish(sum / float64(len(pairs)) * 100)
}

// CosineStrategy compares the shape of two vectors regardless of magnitude.
type CosineStrategy struct{}

func (CosineStrategy) Name() string { return StrategyCosine }

func (CosineStrategy) Similarity(user, requirement map[string]float64) float64 {
	pairs := alignVectors(user, requirement)
	if len(pairs) == 0 {
		return psychometrics.NeutralSimilarity
	}
	var dot, nu, nr float64
	for _, p := range pairs {
		dot += p.user * p.required
		nu += p.user * p.user
		nr += p.required * p.required
	}
	if nu <= 0 || nr <= 0 {
		return psychometrics.NeutralSimilarity
	}
	return finish(dot / (math.Sqrt(nu) * math.Sqrt(nr)) * 100)
}

type pair struct {
	user     float64
	required float64
}

// alignVectors pairs requirement dimensions with user scores, both on a 0-1
// scale, in sorted key order so floating-point sums are reproducible.
func alignVectors(user, requirement map[string]float64) []pair {
	if len(requirement) == 0 {
		return nil
	}
	required := NormalizeRequirement(requirement)

	keys := make([]string, 0, len(required))
	for k := range required {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lowered := make(map[string]float64, len(user))
	for k, v := range user {
		lowered[strings.ToLower(k)] = v
	}

	out := make([]pair, 0, len(keys))
	for _, k := range keys {
		u, ok := user[k]
		if !ok {
			u, ok = lowered[strings.ToLower(k)]
		}
		uv := missingUserValue
		if ok {
			uv = psychometrics.Clamp(u/100, 0, 1)
		}
		out = append(out, pair{user: uv, required: required[k]})
	}
	return out
}

// NormalizeRequirement brings a requirement vector to 0-1. A vector holding
// any value above 1 is read as 0-100 throughout.
func NormalizeRequirement(requirement map[string]float64) map[string]float64 {
	scale := 1.0
	for _, v := range requirement {
		if v > 1 {
			scale = 100
			break
		}
	}
	out := make(map[string]float64, len(requirement))
	for k, v := range requirement {
		out[k] = psychometrics.Clamp(v/scale, 0, 1)
	}
	return out
}

func finish(score float64) float64 {
	if !psychometrics.IsFinite(score) {
		return psychometrics.NeutralSimilarity
	}
	return psychometrics.Round(psychometrics.Clamp(score, 0, 100), 1)
}
