package matching

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/costaverde/lead-matcher/internal/crm"
)

// Inventory is the read-only collaborator the engine consumes. Implementors
// must return only currently offerable properties and only active leads; the
// engine trusts both flags and re-derives neither.
type Inventory interface {
	FetchAvailableProperties(ctx context.Context) ([]*crm.Property, error)
	FetchActiveLeads(ctx context.Context) ([]*crm.Lead, error)
}

const (
	// perLeadMatches caps how many matches each lead contributes to an
	// opportunity in batch mode.
	perLeadMatches = 5

	// defaultOpportunityLimit is used when the caller passes a
	// non-positive limit to FindTopOpportunities.
	defaultOpportunityLimit = 50

	defaultWorkers = 4
)

// LeadOpportunity pairs a lead with its best available matches. TotalScore
// is the sum of match scores, not an average: a lead with several decent
// matches outranks a lead with one great one, volume of opportunity counts.
type LeadOpportunity struct {
	Lead       *crm.Lead       `json:"lead"`
	Matches    []PropertyMatch `json:"matches"`
	TotalScore float64         `json:"total_score"`
}

// Engine runs the matching computation on top of an Inventory. It holds no
// state between calls; concurrent use is safe as long as the Inventory is.
type Engine struct {
	inventory Inventory
	logger    *zap.Logger
	workers   int
}

func NewEngine(inventory Inventory, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		inventory: inventory,
		logger:    logger,
		workers:   defaultWorkers,
	}
}

// SetWorkers bounds the per-lead fan-out used by FindTopOpportunities.
func (e *Engine) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// FindMatches is the single-lead path: fetch the inventory snapshot, extract
// the lead's criteria and rank. An inventory fetch failure fails the whole
// call, there are no partial results.
func (e *Engine) FindMatches(ctx context.Context, lead *crm.Lead, limit int) ([]PropertyMatch, error) {
	if lead == nil || lead.ID == "" {
		return nil, fmt.Errorf("lead without id")
	}

	properties, err := e.inventory.FetchAvailableProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch available properties: %w", err)
	}

	criteria := ExtractCriteria(lead)
	matches := Rank(criteria, properties, limit)

	e.logger.Info("ranked matches for lead",
		zap.String("lead_id", lead.ID),
		zap.Int("initial", len(properties)),
		zap.Int("dropped", len(properties)-len(matches)),
		zap.Int("left", len(matches)),
	)

	return matches, nil
}

// FindTopOpportunities is the batch path: every active lead is ranked
// against one shared inventory snapshot, leads with no match above the
// relevance floor are excluded entirely and the rest are ordered by total
// score. A failed lead or inventory fetch aborts the whole run; a single
// malformed lead is skipped with a warning.
func (e *Engine) FindTopOpportunities(ctx context.Context, limit int) ([]LeadOpportunity, error) {
	if limit <= 0 {
		limit = defaultOpportunityLimit
	}

	leads, err := e.inventory.FetchActiveLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch active leads: %w", err)
	}

	properties, err := e.inventory.FetchAvailableProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch available properties: %w", err)
	}

	// One slot per lead keeps encounter order intact for the stable sort
	// below, regardless of which worker finishes first. The snapshot is
	// read-only, so the fan-out needs no further coordination.
	results := make([]*LeadOpportunity, len(leads))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, lead := range leads {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if lead == nil || lead.ID == "" {
				e.logger.Warn("skipping malformed lead", zap.Int("position", i))
				return nil
			}

			criteria := ExtractCriteria(lead)
			matches := Rank(criteria, properties, perLeadMatches)
			if len(matches) == 0 {
				return nil
			}

			var total float64
			for _, m := range matches {
				total += m.Score
			}

			results[i] = &LeadOpportunity{
				Lead:       lead,
				Matches:    matches,
				TotalScore: total,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]LeadOpportunity, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	if len(out) > limit {
		out = out[:limit]
	}

	e.logger.Info("ranked opportunities",
		zap.Int("active_leads", len(leads)),
		zap.Int("with_matches", len(out)),
		zap.Int("properties", len(properties)),
	)

	return out, nil
}
