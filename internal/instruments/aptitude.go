// internal/instruments/aptitude.go
package instruments

import (
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/models"
	"career-assessment-workers/internal/psychometrics"
)

// aptitudeScaleMax is the top of a 3-point aptitude item.
const aptitudeScaleMax = 3.0

// DefaultAptitudeWeights combine the cognitive dimensions into the
// composite capability index.
var DefaultAptitudeWeights = map[string]float64{
	"logical":    0.25,
	"analytical": 0.20,
	"numerical":  0.20,
	"verbal":     0.20,
	"spatial":    0.15,
}

// IQTransform maps a 0-100 composite index onto the general-ability scale.
type IQTransform struct {
	Name      string
	Intercept float64
	Slope     float64
}

var (
	// StandardIQTransform puts composite 50 at 100 and spans 55-145.
	StandardIQTransform = IQTransform{Name: "standard", Intercept: 55, Slope: 0.9}

	// CompressedIQTransform spans 70-130.
	CompressedIQTransform = IQTransform{Name: "compressed", Intercept: 70, Slope: 0.6}
)

func (t IQTransform) Apply(composite float64) float64 {
	return psychometrics.Round(t.Intercept+t.Slope*composite, 0)
}

var iqClasses = []struct {
	min   float64
	label string
}{
	{130, "Very Superior"},
	{120, "Superior"},
	{110, "High Average"},
	{90, "Average"},
	{80, "Low Average"},
	{70, "Borderline"},
}

// IQClassification labels an estimate on the Wechsler bands.
func IQClassification(iq float64) string {
	for _, c := range iqClasses {
		if iq >= c.min {
			return c.label
		}
	}
	return "Extremely Low"
}

type aptitudeInterpreter struct {
	weights   map[string]float64
	transform IQTransform
}

// NewAptitudeScorer supports mixed binary and 3-point items. Nil weights
// and a zero transform select the defaults.
func NewAptitudeScorer(std *psychometrics.Standardizer, weights map[string]float64, transform IQTransform, log logger.Logger) Scorer {
	if len(weights) == 0 {
		weights = DefaultAptitudeWeights
	}
	if transform.Slope == 0 {
		transform = StandardIQTransform
	}
	p := newPipeline(models.InstrumentAptitude, std, aptitudeInterpreter{weights: weights, transform: transform}, log)
	p.scaleMax = aptitudeScaleMax
	p.maxDetector = psychometrics.MixedItemMaxDetector
	return p
}

func (ai aptitudeInterpreter) interpret(a *attempt) models.Interpretation {
	composite := CompositeIndex(a, ai.weights)
	iq := ai.transform.Apply(composite)

	ranked := rankByTScore(a)
	strongest := ""
	for _, dim := range ranked {
		if !a.score(dim).NoData {
			strongest = dim
			break
		}
	}

	return models.Interpretation{
		Aptitude: &models.AptitudeInterpretation{
			CompositeIndex:   composite,
			IQEstimate:       iq,
			Classification:   IQClassification(iq),
			TransformName:    ai.transform.Name,
			StrongestAbility: strongest,
		},
	}
}

// CompositeIndex is the weighted mean of normalized scores over dimensions
// with data. Without data it is NeutralScore.
func CompositeIndex(a *attempt, weights map[string]float64) float64 {
	var sum, totalWeight float64
	for _, dim := range a.order {
		s := a.score(dim)
		w := weights[dim]
		if s.NoData || w <= 0 {
			continue
		}
		sum += s.Normalized * w
		totalWeight += w
	}
	if totalWeight <= 0 {
		return psychometrics.NeutralScore
	}
	return psychometrics.Round(sum/totalWeight, 1)
}
