// internal/workers/assessment/match-careers/models.go
package matchcareers

import "career-assessment-workers/internal/models"

type Input struct {
	UserID string `json:"userId"`
	// Attempts selects the stored attempt per instrument code; instruments
	// not listed use attempt 1.
	Attempts   map[string]int `json:"attempts,omitempty"`
	TopN       *int           `json:"topN,omitempty"`
	MinScore   *float64       `json:"minScore,omitempty"`
	Categories []string       `json:"categories,omitempty"`
}

type Output struct {
	UserID             string               `json:"userId"`
	Matches            []models.MatchResult `json:"matches"`
	MatchCount         int                  `json:"matchCount"`
	Instruments        []string             `json:"instruments"`
	PersonalityType    string               `json:"personalityType,omitempty"`
	HollandCode        string               `json:"hollandCode,omitempty"`
	ProfileFingerprint string               `json:"profileFingerprint"`
	Cached             bool                 `json:"cached"`
}
