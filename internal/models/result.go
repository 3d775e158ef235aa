// internal/models/result.go
package models

// InstrumentResult is the complete scoring output for one instrument attempt.
type InstrumentResult struct {
	Instrument     InstrumentCode            `json:"instrumentCode"`
	DimensionOrder []string                  `json:"dimensionOrder"`
	Dimensions     map[string]DimensionScore `json:"dimensions"`
	Interpretation Interpretation            `json:"interpretation"`
	Reliability    ReliabilityReport         `json:"reliability"`
	Validity       ValidityReport            `json:"validity"`
}

// Interpretation carries exactly one instrument-specific categorical output.
type Interpretation struct {
	Interest      *InterestInterpretation      `json:"interest,omitempty"`
	Personality   *PersonalityInterpretation   `json:"personality,omitempty"`
	Emotional     *EmotionalInterpretation     `json:"emotional,omitempty"`
	Intelligences *IntelligencesInterpretation `json:"intelligences,omitempty"`
	Aptitude      *AptitudeInterpretation      `json:"aptitude,omitempty"`
	LearningStyle *LearningStyleInterpretation `json:"learningStyle,omitempty"`
}

type InterestInterpretation struct {
	HollandCode   string   `json:"hollandCode"`
	TopDimensions []string `json:"topDimensions"`
}

type PreferenceClarity struct {
	Pair     string  `json:"pair"`
	Winner   string  `json:"winner"`
	PoleA    float64 `json:"poleA"`
	PoleB    float64 `json:"poleB"`
	PCI      float64 `json:"pci"`
	Category string  `json:"category"`
}

type PersonalityInterpretation struct {
	Type        string              `json:"type"`
	Preferences []PreferenceClarity `json:"preferences"`
	AveragePCI  float64             `json:"averagePci"`
}

type EmotionalInterpretation struct {
	Overall    float64            `json:"overall"`
	Level      string             `json:"level"`
	Components map[string]float64 `json:"components"`
}

type IntelligencesInterpretation struct {
	Dominant []string `json:"dominant"`
}

type AptitudeInterpretation struct {
	CompositeIndex   float64 `json:"compositeIndex"`
	IQEstimate       float64 `json:"iqEstimate"`
	Classification   string  `json:"classification"`
	TransformName    string  `json:"transform"`
	StrongestAbility string  `json:"strongestAbility"`
}

type LearningStyleInterpretation struct {
	Style      string   `json:"style"`
	Modalities []string `json:"modalities"`
	Strength   string   `json:"strength,omitempty"`
	Gap        float64  `json:"gap"`
}

// StandardizedScores groups the standardized views keyed by dimension.
type StandardizedScores struct {
	TScores     map[string]float64 `json:"tScores"`
	ZScores     map[string]float64 `json:"zScores"`
	Percentiles map[string]int     `json:"percentiles"`
	Stanines    map[string]int     `json:"stanines"`
}

// ScoringOutput is the flattened scoring output exposed to callers.
type ScoringOutput struct {
	Instrument       InstrumentCode     `json:"instrumentCode"`
	RawScores        map[string]float64 `json:"rawScores"`
	NormalizedScores map[string]float64 `json:"normalizedScores"`
	Standardized     StandardizedScores `json:"standardized"`
	Interpretation   Interpretation     `json:"categoricalOutput"`
	Reliability      ReliabilityReport  `json:"reliability"`
	Validity         ValidityReport     `json:"validity"`
	NoData           []string           `json:"noData,omitempty"`
}

// Output flattens the result into the exposed scoring output shape.
func (r *InstrumentResult) Output() ScoringOutput {
	out := ScoringOutput{
		Instrument:       r.Instrument,
		RawScores:        make(map[string]float64, len(r.Dimensions)),
		NormalizedScores: make(map[string]float64, len(r.Dimensions)),
		Standardized: StandardizedScores{
			TScores:     make(map[string]float64, len(r.Dimensions)),
			ZScores:     make(map[string]float64, len(r.Dimensions)),
			Percentiles: make(map[string]int, len(r.Dimensions)),
			Stanines:    make(map[string]int, len(r.Dimensions)),
		},
		Interpretation: r.Interpretation,
		Reliability:    r.Reliability,
		Validity:       r.Validity,
	}
	for _, dim := range r.DimensionOrder {
		s := r.Dimensions[dim]
		out.RawScores[dim] = s.RawScore
		out.NormalizedScores[dim] = s.Normalized
		out.Standardized.TScores[dim] = s.TScore
		out.Standardized.ZScores[dim] = s.ZScore
		out.Standardized.Percentiles[dim] = s.Percentile
		out.Standardized.Stanines[dim] = s.Stanine
		if s.NoData {
			out.NoData = append(out.NoData, dim)
		}
	}
	return out
}
