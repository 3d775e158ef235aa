// internal/models/career.go
package models

// CareerRequirement is one immutable catalog entry.
// Requirement values are 0-1 fractions or 0-100 raw scores per vector.
type CareerRequirement struct {
	CareerID         string                                `json:"careerId"`
	Title            string                                `json:"title"`
	Category         string                                `json:"category"`
	Requirements     map[InstrumentCode]map[string]float64 `json:"requirementVectors"`
	PersonalityTypes map[string]float64                    `json:"personalityTypes,omitempty"`
	Metadata         map[string]interface{}                `json:"metadata,omitempty"`
}

// MatchCategory is one of the weighted congruence categories.
type MatchCategory string

const (
	CategoryInterest      MatchCategory = "interest"
	CategoryPersonality   MatchCategory = "personality"
	CategoryAptitude      MatchCategory = "aptitude"
	CategoryEmotional     MatchCategory = "emotional_intelligence"
	CategoryIntelligences MatchCategory = "multiple_intelligences"
)

// MatchCategories lists categories in explanation order.
var MatchCategories = []MatchCategory{
	CategoryInterest,
	CategoryAptitude,
	CategoryPersonality,
	CategoryEmotional,
	CategoryIntelligences,
}

// Instrument returns the instrument feeding a category.
func (c MatchCategory) Instrument() InstrumentCode {
	switch c {
	case CategoryInterest:
		return InstrumentInterest
	case CategoryPersonality:
		return InstrumentPersonality
	case CategoryAptitude:
		return InstrumentAptitude
	case CategoryEmotional:
		return InstrumentEmotional
	case CategoryIntelligences:
		return InstrumentIntelligences
	default:
		return ""
	}
}

// MatchResult is one ranked, explained career recommendation.
type MatchResult struct {
	Rank         int                       `json:"rank"`
	CareerID     string                    `json:"careerId"`
	Title        string                    `json:"title"`
	Category     string                    `json:"category"`
	OverallScore float64                   `json:"overallScore"`
	Breakdown    map[MatchCategory]float64 `json:"breakdown"`
	Confidence   float64                   `json:"confidence"`
	FitLabel     string                    `json:"fitLabel"`
	Explanation  string                    `json:"explanation"`
	Strengths    []string                  `json:"strengths"`
	Challenges   []string                  `json:"challenges"`
	Metadata     map[string]interface{}    `json:"metadata,omitempty"`
}
