// internal/psychometrics/reliability.go
package psychometrics

import (
	"math"

	"career-assessment-workers/internal/models"
)

const (
	// ReliabilityStandard is the minimum acceptable alpha.
	ReliabilityStandard = 0.70

	// StandardizationSD is the T-score SD that SEM is expressed in.
	StandardizationSD = TScoreSD

	ciZ = 1.96
)

var reliabilityLevels = []struct {
	min   float64
	label string
}{
	{0.90, "Excellent"},
	{0.80, "Good"},
	{0.70, "Acceptable"},
	{0.60, "Questionable"},
	{0.50, "Poor"},
}

// CronbachAlpha treats each group as one scale component and every value as
// one item. Fewer than two items or zero total variance yields AlphaUndefined.
func CronbachAlpha(groups [][]float64) float64 {
	all := make([]float64, 0)
	for _, g := range groups {
		all = append(all, g...)
	}
	k := float64(len(all))
	if k < 2 {
		return AlphaUndefined
	}

	totalVar := SampleVariance(all)
	if totalVar <= epsilon {
		return AlphaUndefined
	}

	var groupVar float64
	for _, g := range groups {
		groupVar += SampleVariance(g)
	}

	alpha := (k / (k - 1)) * (1 - groupVar/totalVar)
	if !IsFinite(alpha) {
		return AlphaUndefined
	}
	return Clamp(alpha, 0, 1)
}

// ReliabilityLevel buckets alpha into a descriptive label.
func ReliabilityLevel(alpha float64) string {
	for _, lvl := range reliabilityLevels {
		if alpha >= lvl.min {
			return lvl.label
		}
	}
	return "Unacceptable"
}

// StandardError returns the SEM in T-score units.
func StandardError(alpha float64) float64 {
	return StandardizationSD * math.Sqrt(1-Clamp(alpha, 0, 1))
}

// ConfidenceInterval returns the 95% band around a T-score.
func ConfidenceInterval(tScore, sem float64) models.ConfidenceInterval {
	margin := ciZ * sem
	return models.ConfidenceInterval{
		Lower: Round(Clamp(tScore-margin, TScoreMin, TScoreMax), 1),
		Upper: Round(Clamp(tScore+margin, TScoreMin, TScoreMax), 1),
	}
}

// AnalyzeReliability builds the reliability report for one attempt.
func AnalyzeReliability(aggs map[string]*models.DimensionAggregate, scores map[string]models.DimensionScore, order []string) models.ReliabilityReport {
	groups := ItemGroups(aggs, order)
	alpha := CronbachAlpha(groups)
	sem := StandardError(alpha)

	items := 0
	for _, g := range groups {
		items += len(g)
	}

	cis := make(map[string]models.ConfidenceInterval, len(order))
	for _, dim := range order {
		s, ok := scores[dim]
		if !ok {
			continue
		}
		cis[dim] = ConfidenceInterval(s.TScore, sem)
	}

	return models.ReliabilityReport{
		CronbachAlpha:       Round(alpha, 3),
		Level:               ReliabilityLevel(alpha),
		SEM:                 Round(sem, 2),
		ConfidenceIntervals: cis,
		MeetsStandard:       alpha >= ReliabilityStandard,
		ItemCount:           items,
	}
}
