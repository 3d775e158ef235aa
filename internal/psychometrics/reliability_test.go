// internal/psychometrics/reliability_test.go
package psychometrics

import (
	"testing"

	"career-assessment-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCronbachAlpha(t *testing.T) {
	tests := []struct {
		name     string
		groups   [][]float64
		expected float64
	}{
		{"no items", nil, 0},
		{"single item", [][]float64{{4}}, 0},
		{"identical answers", [][]float64{{3, 3, 3}, {3, 3}}, 0},
		{"separated groups", [][]float64{{1, 1, 2}, {4, 5, 5}}, 0.977778},
		{"negative result clamps to zero", [][]float64{{1, 2, 3}, {2, 3, 4}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha := CronbachAlpha(tt.groups)
			assert.InDelta(t, tt.expected, alpha, 1e-6)
			assert.GreaterOrEqual(t, alpha, 0.0)
			assert.LessOrEqual(t, alpha, 1.0)
		})
	}
}

func TestReliabilityLevel(t *testing.T) {
	tests := []struct {
		alpha    float64
		expected string
	}{
		{0.95, "Excellent"},
		{0.85, "Good"},
		{0.70, "Acceptable"},
		{0.65, "Questionable"},
		{0.55, "Poor"},
		{0.10, "Unacceptable"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ReliabilityLevel(tt.alpha))
	}
}

func TestConfidenceInterval(t *testing.T) {
	sem := StandardError(0.75)
	assert.InDelta(t, 5.0, sem, 1e-9)

	ci := ConfidenceInterval(50, sem)
	assert.InDelta(t, 40.2, ci.Lower, 1e-9)
	assert.InDelta(t, 59.8, ci.Upper, 1e-9)

	ci = ConfidenceInterval(75, sem)
	assert.Equal(t, TScoreMax, ci.Upper)

	assert.InDelta(t, 10.0, StandardError(0), 1e-9)
}

func TestAnalyzeReliability(t *testing.T) {
	aggs := map[string]*models.DimensionAggregate{
		"a": {ItemCount: 3, ItemValues: []float64{1, 1, 2}},
		"b": {ItemCount: 3, ItemValues: []float64{4, 5, 5}},
		"c": {},
	}
	scores := map[string]models.DimensionScore{
		"a": {TScore: 40},
		"b": {TScore: 60},
		"c": {TScore: 50, NoData: true},
	}

	report := AnalyzeReliability(aggs, scores, []string{"a", "b", "c"})

	assert.InDelta(t, 0.978, report.CronbachAlpha, 1e-9)
	assert.Equal(t, "Excellent", report.Level)
	assert.True(t, report.MeetsStandard)
	assert.Equal(t, 6, report.ItemCount)
	assert.Len(t, report.ConfidenceIntervals, 3)
	assert.Less(t, report.ConfidenceIntervals["a"].Lower, 40.0)
}
