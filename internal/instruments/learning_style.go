// internal/instruments/learning_style.go
package instruments

import (
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

// MultimodalBand is the T-score gap within which modalities count as co-dominant.
const MultimodalBand = 4.0

const StyleMultimodal = "Multimodal"

type learningStyleInterpreter struct{}

func NewLearningStyleScorer(std *psychometrics.Standardizer, log logger.Logger) Scorer {
	return newPipeline(models.InstrumentLearningStyle, std, learningStyleInterpreter{}, log)
}

func (learningStyleInterpreter) interpret(a *attempt) models.Interpretation {
	ranked := rankByTScore(a)
	out := &models.LearningStyleInterpretation{}
	if len(ranked) == 0 {
		return models.Interpretation{LearningStyle: out}
	}

	topT := a.score(ranked[0]).TScore
	if len(ranked) == 1 {
		out.Style = ranked[0]
		out.Modalities = []string{ranked[0]}
		out.Strength = StyleStrength(0)
		return models.Interpretation{LearningStyle: out}
	}

	out.Gap = psychometrics.Round(topT-a.score(ranked[1]).TScore, 1)
	if out.Gap <= MultimodalBand {
		out.Style = StyleMultimodal
		for _, dim := range ranked {
			if psychometrics.Round(topT-a.score(dim).TScore, 1) <= MultimodalBand {
				out.Modalities = append(out.Modalities, dim)
			}
		}
		return models.Interpretation{LearningStyle: out}
	}

	out.Style = ranked[0]
	out.Modalities = []string{ranked[0]}
	out.Strength = StyleStrength(out.Gap)
	return models.Interpretation{LearningStyle: out}
}

// StyleStrength buckets the lead of a unimodal preference.
func StyleStrength(gap float64) string {
	switch {
	case gap >= 10:
		return "Very Strong"
	case gap >= 6:
		return "Strong"
	default:
		return "Mild"
	}
}
