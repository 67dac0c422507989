package matching

import (
	"encoding/json"
	"os"
)

// SummaryByTier counts matches per tier, for quick reporting.
func SummaryByTier(matches []PropertyMatch) map[Tier]int {
	summary := make(map[Tier]int)
	for _, m := range matches {
		summary[m.Tier]++
	}
	return summary
}

// OpportunitySummary is a compact per-lead line for the batch report.
type OpportunitySummary struct {
	LeadID     string  `json:"lead_id"`
	LeadName   string  `json:"lead_name,omitempty"`
	Matches    int     `json:"matches"`
	TotalScore float64 `json:"total_score"`
	BestTier   Tier    `json:"best_tier,omitempty"`
}

// Summarize flattens opportunities into report lines, preserving order.
func Summarize(opportunities []LeadOpportunity) []OpportunitySummary {
	out := make([]OpportunitySummary, 0, len(opportunities))
	for _, o := range opportunities {
		s := OpportunitySummary{
			LeadID:     o.Lead.ID,
			LeadName:   o.Lead.Name,
			Matches:    len(o.Matches),
			TotalScore: o.TotalScore,
		}
		if len(o.Matches) > 0 {
			s.BestTier = o.Matches[0].Tier
		}
		out = append(out, s)
	}
	return out
}

// DumpToTmpFile writes the report as indented JSON to a temp file and
// returns its name.
func DumpToTmpFile(report any, pattern string) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", err
	}
	return file.Name(), nil
}
