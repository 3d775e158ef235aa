// internal/instruments/intelligences.go
package instruments

import (
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

const dominantIntelligences = 3

type intelligencesInterpreter struct{}

func NewIntelligencesScorer(std *psychometrics.Standardizer, log logger.Logger) Scorer {
	return newPipeline(models.InstrumentIntelligences, std, intelligencesInterpreter{}, log)
}

func (intelligencesInterpreter) interpret(a *attempt) models.Interpretation {
	return models.Interpretation{
		Intelligences: &models.IntelligencesInterpretation{
			Dominant: top(rankByTScore(a), dominantIntelligences),
		},
	}
}
