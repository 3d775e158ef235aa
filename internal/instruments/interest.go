// internal/instruments/interest.go
package instruments

import (
	"strings"

	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

const hollandCodeLength = 3

type interestInterpreter struct{}

// NewInterestScorer scores the RIASEC interest inventory into a Holland code.
func NewInterestScorer(std *psychometrics.Standardizer, log logger.Logger) Scorer {
	return newPipeline(models.InstrumentInterest, std, interestInterpreter{}, log)
}

func (interestInterpreter) interpret(a *attempt) models.Interpretation {
	topDims := top(rankByTScore(a), hollandCodeLength)

	var code strings.Builder
	for _, dim := range topDims {
		code.WriteString(models.InterestLetters[dim])
	}

	return models.Interpretation{
		Interest: &models.InterestInterpretation{
			HollandCode:   code.String(),
			TopDimensions: topDims,
		},
	}
}
