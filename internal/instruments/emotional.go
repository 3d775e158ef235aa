// internal/instruments/emotional.go
package instruments

import (
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

// EQComponentWeights weight the components of the overall EQ score.
var EQComponentWeights = map[string]float64{
	"self_awareness":  0.22,
	"self_regulation": 0.20,
	"motivation":      0.18,
	"empathy":         0.20,
	"social_skills":   0.20,
}

// defaultEQWeight applies to a component missing from EQComponentWeights.
const defaultEQWeight = 0.20

var eqLevels = []struct {
	min   float64
	label string
}{
	{80, "Very High"},
	{65, "High"},
	{50, "Average"},
	{35, "Below Average"},
}

type emotionalInterpreter struct{}

// NewEmotionalScorer accepts components beyond the five standard ones; they
// are scored like the rest and weighted at defaultEQWeight.
func NewEmotionalScorer(std *psychometrics.Standardizer, log logger.Logger) Scorer {
	p := newPipeline(models.InstrumentEmotional, std, emotionalInterpreter{}, log)
	p.extraDims = true
	return p
}

func (emotionalInterpreter) interpret(a *attempt) models.Interpretation {
	components := make(map[string]float64, len(a.order))
	for _, dim := range a.order {
		components[dim] = a.score(dim).Normalized
	}
	overall := OverallEQ(components, a.order)

	return models.Interpretation{
		Emotional: &models.EmotionalInterpretation{
			Overall:    overall,
			Level:      EQLevel(overall),
			Components: components,
		},
	}
}

// OverallEQ is the weighted mean of component scores in the given order.
func OverallEQ(components map[string]float64, order []string) float64 {
	var sum, totalWeight float64
	for _, dim := range order {
		v, ok := components[dim]
		if !ok {
			continue
		}
		w, ok := EQComponentWeights[dim]
		if !ok {
			w = defaultEQWeight
		}
		sum += v * w
		totalWeight += w
	}
	if totalWeight <= 0 {
		return psychometrics.NeutralScore
	}
	return psychometrics.Round(sum/totalWeight, 1)
}

func EQLevel(overall float64) string {
	for _, lvl := range eqLevels {
		if overall >= lvl.min {
			return lvl.label
		}
	}
	return "Low"
}
