// internal/matching/weights.go
package matching

import (
	"fmt"
	"math"

	"career-assessment-workers/internal/models"
)

const weightTolerance = 0.001

// CategoryWeights weight the per-category scores into the overall score.
type CategoryWeights map[models.MatchCategory]float64

// DefaultCategoryWeights favour interest, then aptitude.
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{
		models.CategoryInterest:      0.30,
		models.CategoryAptitude:      0.25,
		models.CategoryPersonality:   0.15,
		models.CategoryEmotional:     0.15,
		models.CategoryIntelligences: 0.15,
	}
}

// CategoryWeightsFromMap converts configured weights and validates them.
func CategoryWeightsFromMap(raw map[string]float64) (CategoryWeights, error) {
	w := make(CategoryWeights, len(raw))
	for k, v := range raw {
		w[models.MatchCategory(k)] = v
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w CategoryWeights) Sum() float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// Validate requires known categories, non-negative weights and a sum of 1.
func (w CategoryWeights) Validate() error {
	known := make(map[models.MatchCategory]bool, len(models.MatchCategories))
	for _, c := range models.MatchCategories {
		known[c] = true
	}
	for c, v := range w {
		if !known[c] {
			return fmt.Errorf("unknown match category %q", c)
		}
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight for %s must be non-negative", c)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("category weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}
