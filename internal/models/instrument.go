// internal/models/instrument.go
package models

import (
	"fmt"
	"strings"
)

// InstrumentCode identifies one of the supported psychometric instruments.
type InstrumentCode string

const (
	InstrumentInterest      InstrumentCode = "RIASEC"
	InstrumentPersonality   InstrumentCode = "MBTI"
	InstrumentEmotional     InstrumentCode = "EQ"
	InstrumentIntelligences InstrumentCode = "MI"
	InstrumentAptitude      InstrumentCode = "APTITUDE"
	InstrumentLearningStyle InstrumentCode = "VARK"
)

// AllInstruments lists every supported instrument in presentation order.
var AllInstruments = []InstrumentCode{
	InstrumentInterest,
	InstrumentPersonality,
	InstrumentEmotional,
	InstrumentIntelligences,
	InstrumentAptitude,
	InstrumentLearningStyle,
}

var instrumentAliases = map[string]InstrumentCode{
	"riasec":                 InstrumentInterest,
	"holland":                InstrumentInterest,
	"interest":               InstrumentInterest,
	"mbti":                   InstrumentPersonality,
	"personality":            InstrumentPersonality,
	"eq":                     InstrumentEmotional,
	"emotional_intelligence": InstrumentEmotional,
	"mi":                     InstrumentIntelligences,
	"multiple_intelligences": InstrumentIntelligences,
	"aptitude":               InstrumentAptitude,
	"cognitive":              InstrumentAptitude,
	"vark":                   InstrumentLearningStyle,
	"learning_style":         InstrumentLearningStyle,
}

// ParseInstrumentCode resolves a caller-supplied code or alias.
func ParseInstrumentCode(s string) (InstrumentCode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if code, ok := instrumentAliases[key]; ok {
		return code, nil
	}
	return "", fmt.Errorf("unknown instrument code %q", s)
}

// Fixed, ordered dimension sets. Declaration order is the tie-break order
// used by every ranking interpreter.
var (
	InterestDimensions = []string{
		"realistic", "investigative", "artistic", "social", "enterprising", "conventional",
	}

	// Pole letters, pairs are adjacent.
	PersonalityDimensions = []string{"E", "I", "S", "N", "T", "F", "J", "P"}

	EmotionalDimensions = []string{
		"self_awareness", "self_regulation", "motivation", "empathy", "social_skills",
	}

	IntelligenceDimensions = []string{
		"linguistic", "logical_mathematical", "spatial", "bodily_kinesthetic",
		"musical", "interpersonal", "intrapersonal", "naturalistic",
	}

	AptitudeDimensions = []string{"logical", "analytical", "numerical", "verbal", "spatial"}

	LearningStyleDimensions = []string{"visual", "auditory", "reading_writing", "kinesthetic"}
)

// InterestLetters maps RIASEC dimensions to their Holland code initials.
var InterestLetters = map[string]string{
	"realistic":     "R",
	"investigative": "I",
	"artistic":      "A",
	"social":        "S",
	"enterprising":  "E",
	"conventional":  "C",
}

// Dimensions returns the declared dimension order for an instrument.
func (c InstrumentCode) Dimensions() []string {
	switch c {
	case InstrumentInterest:
		return InterestDimensions
	case InstrumentPersonality:
		return PersonalityDimensions
	case InstrumentEmotional:
		return EmotionalDimensions
	case InstrumentIntelligences:
		return IntelligenceDimensions
	case InstrumentAptitude:
		return AptitudeDimensions
	case InstrumentLearningStyle:
		return LearningStyleDimensions
	default:
		return nil
	}
}

// Demographics selects a normative subgroup. Empty fields mean "any".
type Demographics struct {
	AgeGroup string `json:"ageGroup,omitempty"`
	Region   string `json:"region,omitempty"`
}
