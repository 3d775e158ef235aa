// internal/matching/personality.go
package matching

import (
	"sort"
	"strings"

	"career-assessment-workers/internal/psychometrics"
)

const typeLetters = 4

// PersonalitySimilarity scores a four-letter type against a career's table
// of suited types. Each entry contributes (matching letters / 4) x its
// score; the best entry wins, so an exact hit earns the full table score.
// An empty table or unknown type is neutral.
func PersonalitySimilarity(userType string, table map[string]float64) float64 {
	userType = strings.ToUpper(strings.TrimSpace(userType))
	if len(userType) != typeLetters || len(table) == 0 {
		return psychometrics.NeutralSimilarity
	}
	scores := NormalizeRequirement(table)

	types := make([]string, 0, len(scores))
	for t := range scores {
		types = append(types, t)
	}
	sort.Strings(types)

	best := 0.0
	for _, t := range types {
		candidate := strings.ToUpper(strings.TrimSpace(t))
		if len(candidate) != typeLetters {
			continue
		}
		matches := 0
		for i := 0; i < typeLetters; i++ {
			if userType[i] == candidate[i] {
				matches++
			}
		}
		if s := float64(matches) / typeLetters * scores[t]; s > best {
			best = s
		}
	}
	return finish(best * 100)
}
