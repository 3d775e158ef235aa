// internal/psychometrics/normalize.go
package psychometrics

import "career-assessment-workers/internal/models"

// Normalize converts an aggregate to a 0-100 percentage of its maximum.
// noData is true when nothing was answered; the score is then NeutralScore.
func Normalize(agg *models.DimensionAggregate) (score float64, noData bool) {
	if !agg.HasData() {
		return NeutralScore, true
	}
	maxPossible := agg.MaxPossible
	if maxPossible < 1 {
		maxPossible = 1
	}
	return Round(Clamp(agg.Sum/maxPossible*100, 0, 100), 1), false
}

// RawAverage is the weighted sum divided by the answered item count.
func RawAverage(agg *models.DimensionAggregate) float64 {
	if !agg.HasData() {
		return 0
	}
	return agg.Sum / float64(agg.ItemCount)
}

// PoleShare expresses a pole total as a percentage of its dichotomy pair.
// An empty pair splits evenly.
func PoleShare(pole, opposite float64) float64 {
	total := pole + opposite
	if total <= 0 {
		return NeutralScore
	}
	return Round(pole/total*100, 1)
}
