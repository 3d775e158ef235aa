// internal/matching/explain.go
package matching

import (
	"fmt"
	"strings"

	"career-assessment-workers/internal/models"
)

// Category scores at or above StrengthThreshold are strengths; below
// ChallengeThreshold they are challenges.
const (
	StrengthThreshold  = 70.0
	ChallengeThreshold = 50.0
)

var categoryNames = map[models.MatchCategory]string{
	models.CategoryInterest:      "interests",
	models.CategoryAptitude:      "aptitudes",
	models.CategoryPersonality:   "personality",
	models.CategoryEmotional:     "emotional intelligence",
	models.CategoryIntelligences: "intelligence profile",
}

var strengthPhrases = map[models.MatchCategory]string{
	models.CategoryInterest:      "Your interests match the core activities of this career",
	models.CategoryAptitude:      "Your cognitive strengths meet the demands of this role",
	models.CategoryPersonality:   "Your personality type suits the working style of this career",
	models.CategoryEmotional:     "Your emotional intelligence supports the interpersonal side of this role",
	models.CategoryIntelligences: "Your dominant intelligences are put to good use in this career",
}

var challengePhrases = map[models.MatchCategory]string{
	models.CategoryInterest:      "Some core activities may hold less interest for you",
	models.CategoryAptitude:      "Some required abilities may need further development",
	models.CategoryPersonality:   "The working style may differ from your natural preferences",
	models.CategoryEmotional:     "The interpersonal demands may call for stronger emotional skills",
	models.CategoryIntelligences: "The career leans on intelligences that are less dominant for you",
}

var fitLabels = []struct {
	min   float64
	label string
}{
	{85, "Excellent"},
	{70, "Strong"},
	{55, "Good"},
	{40, "Moderate"},
}

// FitLabel buckets an overall score.
func FitLabel(overall float64) string {
	for _, f := range fitLabels {
		if overall >= f.min {
			return f.label
		}
	}
	return "Limited"
}

// Explain derives strengths, challenges and a summary sentence from the
// category breakdown. Output depends only on its inputs.
func Explain(title string, overall float64, breakdown map[models.MatchCategory]float64) (explanation string, strengths, challenges []string) {
	strengths = []string{}
	challenges = []string{}
	var strong, weak []string

	for _, c := range models.MatchCategories {
		score, ok := breakdown[c]
		if !ok {
			continue
		}
		switch {
		case score >= StrengthThreshold:
			strengths = append(strengths, strengthPhrases[c])
			strong = append(strong, categoryNames[c])
		case score < ChallengeThreshold:
			challenges = append(challenges, challengePhrases[c])
			weak = append(weak, categoryNames[c])
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s fit with an overall score of %.1f.", title, strings.ToLower(FitLabel(overall)), overall)
	if len(strong) > 0 {
		fmt.Fprintf(&b, " Strongest alignment: %s.", strings.Join(strong, ", "))
	}
	if len(weak) > 0 {
		fmt.Fprintf(&b, " Areas to explore: %s.", strings.Join(weak, ", "))
	}
	return b.String(), strengths, challenges
}
