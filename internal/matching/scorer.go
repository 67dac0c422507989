package matching

import (
	"fmt"
	"strings"

	"github.com/costaverde/lead-matcher/internal/crm"
)

// Tier is the discrete relevance bucket derived from a match score.
type Tier string

const (
	TierPerfect   Tier = "perfect"
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierPotential Tier = "potential"
)

// Tier thresholds, inclusive on the lower bound: a score of exactly 0.80 is
// perfect.
const (
	tierPerfectMin   = 0.80
	tierExcellentMin = 0.65
	tierGoodMin      = 0.45
)

// TierForScore maps a normalized score to its tier. The tiers partition
// [0,1] with no gaps or overlaps.
func TierForScore(score float64) Tier {
	switch {
	case score >= tierPerfectMin:
		return TierPerfect
	case score >= tierExcellentMin:
		return TierExcellent
	case score >= tierGoodMin:
		return TierGood
	default:
		return TierPotential
	}
}

// PropertyMatch is the scored pairing of one property with one set of
// criteria. Reasons explain which criteria awarded points; they are for
// humans, ranking uses the score alone.
type PropertyMatch struct {
	PropertyID string   `json:"property_id"`
	Title      string   `json:"title,omitempty"`
	URL        string   `json:"url,omitempty"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons,omitempty"`
	Tier       Tier     `json:"tier"`
}

// Point budget per criterion. The final score is the sum divided by 100,
// clamped into [0,1].
const (
	budgetPoints        = 30.0
	budgetPartialPoints = 15.0
	countryPoints       = 25.0
	propertyTypePoints  = 20.0
	locationPoints      = 15.0
	bedroomsPoints      = 15.0
	bedroomsNearPoints  = 8.0
	amenityPoints       = 3.0
	amenityPointsCap    = 10.0

	// A listing up to 20% over the stated maximum still earns partial
	// budget credit.
	overBudgetTolerance = 1.2
)

// ScoreProperty scores one available property against the criteria. Absent
// criteria neither award nor penalize. The caller is responsible for the
// availability gate: unavailable listings must not reach the scorer.
func ScoreProperty(p *crm.Property, c MatchCriteria) PropertyMatch {
	var points float64
	var reasons []string

	if c.Budget != nil && p.HasPrice() {
		switch {
		case p.Price >= c.Budget.Min && p.Price <= c.Budget.Max:
			points += budgetPoints
			reasons = append(reasons, "within budget")
		case p.Price <= c.Budget.Max*overBudgetTolerance:
			points += budgetPartialPoints
			reasons = append(reasons, "slightly above budget")
		}
	}

	if containsFold(c.Country, p.Country) {
		points += countryPoints
		reasons = append(reasons, fmt.Sprintf("country matches %s", p.Country))
	}

	if containsFold(c.Location, p.Location) {
		points += locationPoints
		reasons = append(reasons, fmt.Sprintf("location matches %s", p.Location))
	}

	for _, want := range c.PropertyTypes {
		if containsFold(want, p.PropertyType) {
			points += propertyTypePoints
			reasons = append(reasons, fmt.Sprintf("property type %s", p.PropertyType))
			break
		}
	}

	if len(c.Bedrooms) > 0 {
		if exact, near := bedroomsMatch(c.Bedrooms, p.Bedrooms); exact {
			points += bedroomsPoints
			reasons = append(reasons, fmt.Sprintf("has %d bedrooms", p.Bedrooms))
		} else if near {
			points += bedroomsNearPoints
			reasons = append(reasons, fmt.Sprintf("close on bedrooms (%d)", p.Bedrooms))
		}
	}

	if len(c.Amenities) > 0 {
		matched := matchAmenities(c.Amenities, p.Amenities)
		if len(matched) > 0 {
			pts := amenityPoints * float64(len(matched))
			if pts > amenityPointsCap {
				pts = amenityPointsCap
			}
			points += pts
			reasons = append(reasons, fmt.Sprintf("amenities: %s", strings.Join(matched, ", ")))
		}
	}

	// Country and location can award together, so the raw sum can nudge
	// past 100 on an across-the-board match. Clamp to keep the score in
	// [0,1].
	score := clamp01(points / 100)

	return PropertyMatch{
		PropertyID: p.ID,
		Title:      p.Title,
		URL:        p.URL,
		Score:      score,
		Reasons:    reasons,
		Tier:       TierForScore(score),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// containsFold reports whether a and b are non-empty and one is a
// case-insensitive substring of the other. The symmetric check covers both
// "France" in "Île de France" and the reverse.
func containsFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// bedroomsMatch reports an exact membership of have in the wanted counts,
// and failing that, whether have is within one of any wanted count.
func bedroomsMatch(wanted []int, have int) (exact, near bool) {
	for _, w := range wanted {
		if have == w {
			return true, false
		}
		if have == w-1 || have == w+1 {
			near = true
		}
	}
	return false, near
}

// matchAmenities returns the distinct property amenities that match any
// desired amenity, in the property's order.
func matchAmenities(wanted, have []string) []string {
	var matched []string
	seen := make(map[string]struct{})
	for _, amenity := range have {
		key := strings.ToLower(strings.TrimSpace(amenity))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		for _, want := range wanted {
			if containsFold(want, amenity) {
				seen[key] = struct{}{}
				matched = append(matched, amenity)
				break
			}
		}
	}
	return matched
}
