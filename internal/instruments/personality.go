// internal/instruments/personality.go
package instruments

import (
	"math"

	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

// Average preference clarity below these bounds downgrades validity.
const (
	ClarityQuestionableBelow = 40.0
	ClarityInvalidBelow      = 20.0
)

var clarityBands = []struct {
	min   float64
	label string
}{
	{70, "Very Clear"},
	{50, "Clear"},
	{30, "Moderate"},
}

type personalityInterpreter struct{}

// NewPersonalityScorer scores the four dichotomy pairs into a type.
func NewPersonalityScorer(std *psychometrics.Standardizer, log logger.Logger) Scorer {
	p := newPipeline(models.InstrumentPersonality, std, personalityInterpreter{}, log)
	p.pairShares = true
	return p
}

func (personalityInterpreter) interpret(a *attempt) models.Interpretation {
	out := &models.PersonalityInterpretation{
		Preferences: make([]models.PreferenceClarity, 0, len(a.order)/2),
	}

	var typ []byte
	var pciSum float64
	for i := 0; i+1 < len(a.order); i += 2 {
		poleA, poleB := a.order[i], a.order[i+1]
		sumA, sumB := a.aggregates[poleA].Sum, a.aggregates[poleB].Sum

		winner := poleA
		if sumB > sumA {
			winner = poleB
		}
		pci := PreferenceClarityIndex(sumA, sumB)
		pciSum += pci
		typ = append(typ, winner...)

		out.Preferences = append(out.Preferences, models.PreferenceClarity{
			Pair:     poleA + poleB,
			Winner:   winner,
			PoleA:    psychometrics.Round(sumA, 3),
			PoleB:    psychometrics.Round(sumB, 3),
			PCI:      pci,
			Category: ClarityCategory(pci),
		})
	}

	out.Type = string(typ)
	if n := len(out.Preferences); n > 0 {
		out.AveragePCI = psychometrics.Round(pciSum/float64(n), 1)
	}

	switch {
	case out.AveragePCI < ClarityInvalidBelow:
		a.validity.AddFlag(models.FlagLowPreferenceClarity, models.ValidityInvalid)
	case out.AveragePCI < ClarityQuestionableBelow:
		a.validity.AddFlag(models.FlagLowPreferenceClarity, models.ValidityQuestionable)
	}

	return models.Interpretation{Personality: out}
}

// PreferenceClarityIndex is the margin between two poles as a percentage of
// their total, 0 when both are empty.
func PreferenceClarityIndex(poleA, poleB float64) float64 {
	total := poleA + poleB
	if total <= 0 {
		return 0
	}
	return psychometrics.Round(math.Abs(poleA-poleB)/total*100, 1)
}

func ClarityCategory(pci float64) string {
	for _, b := range clarityBands {
		if pci >= b.min {
			return b.label
		}
	}
	return "Unclear"
}
