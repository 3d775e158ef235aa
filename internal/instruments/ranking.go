// internal/instruments/ranking.go
package instruments

import "sort"

// rankByTScore orders dimensions by descending T-score. Equal T-scores fall
// back to the unclamped z, then to declaration order.
func rankByTScore(a *attempt) []string {
	ranked := append([]string(nil), a.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := a.score(ranked[i]), a.score(ranked[j])
		if si.TScore != sj.TScore {
			return si.TScore > sj.TScore
		}
		return si.ZScore > sj.ZScore
	})
	return ranked
}

func top(ranked []string, n int) []string {
	if n > len(ranked) {
		n = len(ranked)
	}
	return append([]string(nil), ranked[:n]...)
}
