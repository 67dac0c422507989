package matching

import (
	"sort"

	"github.com/costaverde/lead-matcher/internal/crm"
)

// minRelevance is the hard relevance floor: matches scoring at or below it
// are dropped, not demoted.
const minRelevance = 0.30

// defaultMatchLimit is used when the caller passes a non-positive limit.
const defaultMatchLimit = 10

// Rank scores every available property against the criteria, drops matches
// at or below the relevance floor, sorts by score descending and truncates
// to limit. The sort is stable: ties keep their inventory encounter order,
// there is deliberately no secondary key.
func Rank(c MatchCriteria, properties []*crm.Property, limit int) []PropertyMatch {
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	var out []PropertyMatch
	for _, p := range properties {
		if !p.IsAvailable {
			continue
		}
		m := ScoreProperty(p, c)
		if m.Score <= minRelevance {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
