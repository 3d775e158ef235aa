// internal/matching/strategy_test.go
package matching

import (
	"testing"

	"career-assessment-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifferenceStrategy(t *testing.T) {
	s := DifferenceStrategy{}
	user := map[string]float64{"a": 80, "b": 40}

	tests := []struct {
		name        string
		requirement map[string]float64
		expected    float64
	}{
		{"fractional requirement", map[string]float64{"a": 0.8, "b": 0.6}, 90},
		{"raw requirement", map[string]float64{"a": 80, "b": 60}, 90},
		{"missing user dimension is midpoint", map[string]float64{"c": 0.5}, 100},
		{"empty requirement is neutral", nil, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Similarity(user, tt.requirement), 1e-9)
		})
	}
}

func TestThresholdStrategy(t *testing.T) {
	s := ThresholdStrategy{}
	user := map[string]float64{"a": 80, "b": 40}

	assert.InDelta(t, 83.3, s.Similarity(user, map[string]float64{"a": 0.8, "b": 0.6}), 1e-9)
	assert.Equal(t, 100.0, s.Similarity(user, map[string]float64{"a": 0.5, "b": 0}))
	assert.Equal(t, 50.0, s.Similarity(user, map[string]float64{}))
}

func TestCosineStrategy(t *testing.T) {
	s := CosineStrategy{}

	assert.Equal(t, 100.0, s.Similarity(map[string]float64{"a": 100, "b": 0}, map[string]float64{"a": 1, "b": 0}))
	assert.Equal(t, 0.0, s.Similarity(map[string]float64{"a": 100, "b": 0}, map[string]float64{"a": 0, "b": 1}))
	assert.Equal(t, 50.0, s.Similarity(map[string]float64{"a": 100}, map[string]float64{"a": 0}), "zero vector is neutral")
	assert.InDelta(t, 32.3, s.Similarity(
		map[string]float64{"investigative": 90, "social": 20},
		map[string]float64{"investigative": 0.1, "social": 0.9},
	), 1e-9)
}

func TestStrategyByName(t *testing.T) {
	for _, name := range []string{"", "difference", "Threshold", "cosine"} {
		s, err := StrategyByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, s)
	}
	_, err := StrategyByName("euclidean")
	assert.Error(t, err)
}

func TestNormalizeRequirement(t *testing.T) {
	assert.Equal(t, map[string]float64{"a": 0.7, "b": 0.01}, NormalizeRequirement(map[string]float64{"a": 70, "b": 1}))
	assert.Equal(t, map[string]float64{"a": 0.7, "b": 1}, NormalizeRequirement(map[string]float64{"a": 0.7, "b": 1}))
}

func TestPersonalitySimilarity(t *testing.T) {
	table := map[string]float64{"INTJ": 100, "ENTJ": 80}

	tests := []struct {
		name     string
		userType string
		table    map[string]float64
		expected float64
	}{
		{"exact type earns full score", "INTJ", table, 100},
		{"partial letters take the best entry", "INFJ", table, 75},
		{"fractional table", "ESFP", map[string]float64{"INTJ": 0.9}, 0},
		{"fractional table partial", "ISTJ", map[string]float64{"INTJ": 0.8}, 60},
		{"empty table is neutral", "INTJ", nil, 50},
		{"unknown type is neutral", "", table, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PersonalitySimilarity(tt.userType, tt.table), 1e-9)
		})
	}
}

func TestCategoryWeights(t *testing.T) {
	assert.NoError(t, DefaultCategoryWeights().Validate())
	assert.InDelta(t, 1.0, DefaultCategoryWeights().Sum(), 1e-9)

	_, err := CategoryWeightsFromMap(map[string]float64{"interest": 0.5})
	assert.Error(t, err)

	_, err = CategoryWeightsFromMap(map[string]float64{"interest": 0.5, "astrology": 0.5})
	assert.Error(t, err)

	w, err := CategoryWeightsFromMap(map[string]float64{
		"interest": 0.35, "aptitude": 0.20, "personality": 0.15,
		"emotional_intelligence": 0.15, "multiple_intelligences": 0.15,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.35, w[models.CategoryInterest])
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 100.0, Confidence([]float64{70, 70, 70, 70, 70}))
	assert.Equal(t, 75.5, Confidence([]float64{100, 100, 100, 50, 50}))
	assert.Equal(t, MinConfidence, Confidence([]float64{0, 100}))
}

func TestFitLabelAndExplain(t *testing.T) {
	assert.Equal(t, "Excellent", FitLabel(85))
	assert.Equal(t, "Strong", FitLabel(70))
	assert.Equal(t, "Good", FitLabel(60))
	assert.Equal(t, "Moderate", FitLabel(40))
	assert.Equal(t, "Limited", FitLabel(39.9))

	breakdown := map[models.MatchCategory]float64{
		models.CategoryInterest:      92,
		models.CategoryAptitude:      40,
		models.CategoryPersonality:   70,
		models.CategoryEmotional:     50,
		models.CategoryIntelligences: 65,
	}
	explanation, strengths, challenges := Explain("Architect", 68.4, breakdown)

	assert.Equal(t, "Architect: good fit with an overall score of 68.4. Strongest alignment: interests, personality. Areas to explore: aptitudes.", explanation)
	assert.Equal(t, []string{strengthPhrases[models.CategoryInterest], strengthPhrases[models.CategoryPersonality]}, strengths)
	assert.Equal(t, []string{challengePhrases[models.CategoryAptitude]}, challenges)

	again, _, _ := Explain("Architect", 68.4, breakdown)
	assert.Equal(t, explanation, again)
}
