// internal/engine/ranker.go
package engine

import (
	"sort"

	"github.com/pharmastock/pharmastock/internal/domain"
)

// Rank sorts candidates descending by priority score and truncates to topN.
// The sort is stable so equal scores keep their input order, which makes runs
// on identical data reproducible.
func Rank(recs []domain.Recommendation, topN int) []domain.Recommendation {
	if topN <= 0 {
		topN = defaultTopN
	}

	ranked := make([]domain.Recommendation, len(recs))
	copy(ranked, recs)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
