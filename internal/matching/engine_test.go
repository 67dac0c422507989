package matching

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/costaverde/lead-matcher/internal/crm"
)

type stubInventory struct {
	properties []*crm.Property
	leads      []*crm.Lead

	propertiesErr error
	leadsErr      error
}

func (s *stubInventory) FetchAvailableProperties(context.Context) ([]*crm.Property, error) {
	if s.propertiesErr != nil {
		return nil, s.propertiesErr
	}
	return s.properties, nil
}

func (s *stubInventory) FetchActiveLeads(context.Context) ([]*crm.Lead, error) {
	if s.leadsErr != nil {
		return nil, s.leadsErr
	}
	return s.leads, nil
}

func TestFindMatches(t *testing.T) {
	t.Parallel()

	inventory := &stubInventory{
		properties: []*crm.Property{
			{ID: "p1", Price: 1_800_000, Country: "France", PropertyType: "Villa", Bedrooms: 4, IsAvailable: true},
			{ID: "p2", Price: 2_300_000, Country: "Spain", PropertyType: "Apartment", Bedrooms: 5, IsAvailable: true},
		},
	}
	engine := NewEngine(inventory, zap.NewNop())

	lead := &crm.Lead{
		ID:            "l1",
		BudgetMin:     "1000000",
		BudgetMax:     "2000000",
		Country:       "France",
		PropertyTypes: []string{"Villa"},
		Bedrooms:      []int{4},
	}

	matches, err := engine.FindMatches(context.Background(), lead, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// p1 scores 0.90; p2 scores 0.23 and falls below the floor.
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].PropertyID != "p1" || matches[0].Tier != TierPerfect {
		t.Fatalf("unexpected match: %+v", matches[0])
	}
}

func TestFindMatchesFetchFailure(t *testing.T) {
	t.Parallel()

	inventory := &stubInventory{propertiesErr: errors.New("store is down")}
	engine := NewEngine(inventory, zap.NewNop())

	if _, err := engine.FindMatches(context.Background(), &crm.Lead{ID: "l1"}, 10); err == nil {
		t.Fatalf("expected an error when the inventory fetch fails")
	}
}

func TestFindMatchesRejectsMalformedLead(t *testing.T) {
	t.Parallel()

	engine := NewEngine(&stubInventory{}, zap.NewNop())

	if _, err := engine.FindMatches(context.Background(), &crm.Lead{}, 10); err == nil {
		t.Fatalf("expected an error for a lead without id")
	}
}

// batchFixture produces lead A with one strong match and lead B with three
// modest ones, as well as an inventory shared by both.
func batchFixture() *stubInventory {
	return &stubInventory{
		leads: []*crm.Lead{
			{
				ID:            "lead-a",
				BudgetMin:     "1000000",
				BudgetMax:     "2000000",
				Country:       "France",
				PropertyTypes: []string{"Villa"},
				Bedrooms:      []int{4},
			},
			{
				ID:       "lead-b",
				Country:  "Spain",
				Bedrooms: []int{2},
			},
		},
		properties: []*crm.Property{
			// Only lead A: 30+25+20+15 = 0.90.
			{ID: "villa", Price: 1_800_000, Country: "France", PropertyType: "Villa", Bedrooms: 4, IsAvailable: true},
			// Only lead B, 25+15 = 0.40 each.
			{ID: "flat-1", Country: "Spain", PropertyType: "Apartment", Bedrooms: 2, IsAvailable: true},
			{ID: "flat-2", Country: "Spain", PropertyType: "Apartment", Bedrooms: 2, IsAvailable: true},
			{ID: "flat-3", Country: "Spain", PropertyType: "Apartment", Bedrooms: 2, IsAvailable: true},
		},
	}
}

func TestFindTopOpportunitiesVolumeBeatsQuality(t *testing.T) {
	t.Parallel()

	engine := NewEngine(batchFixture(), zap.NewNop())

	opportunities, err := engine.FindTopOpportunities(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(opportunities) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(opportunities))
	}

	// Lead B totals 1.20 across three matches, lead A only 0.90 from its
	// single perfect one: volume of opportunity wins.
	if opportunities[0].Lead.ID != "lead-b" {
		t.Fatalf("expected lead-b first, got %s", opportunities[0].Lead.ID)
	}
	if math.Abs(opportunities[0].TotalScore-1.20) > 1e-9 {
		t.Fatalf("expected total 1.20, got %v", opportunities[0].TotalScore)
	}
	if opportunities[1].Lead.ID != "lead-a" || math.Abs(opportunities[1].TotalScore-0.90) > 1e-9 {
		t.Fatalf("unexpected second opportunity: %+v", opportunities[1])
	}
}

func TestFindTopOpportunitiesExcludesLeadsWithoutMatches(t *testing.T) {
	t.Parallel()

	inventory := batchFixture()
	inventory.leads = append(inventory.leads, &crm.Lead{ID: "lead-c", Country: "Japan"})

	engine := NewEngine(inventory, zap.NewNop())

	opportunities, err := engine.FindTopOpportunities(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, o := range opportunities {
		if o.Lead.ID == "lead-c" {
			t.Fatalf("lead without matches must not be emitted")
		}
		if len(o.Matches) == 0 {
			t.Fatalf("empty match list emitted for %s", o.Lead.ID)
		}
	}
}

func TestFindTopOpportunitiesSkipsMalformedLead(t *testing.T) {
	t.Parallel()

	inventory := batchFixture()
	inventory.leads = append([]*crm.Lead{{}}, inventory.leads...)

	engine := NewEngine(inventory, zap.NewNop())

	opportunities, err := engine.FindTopOpportunities(context.Background(), 50)
	if err != nil {
		t.Fatalf("expected malformed lead to be skipped, got error: %v", err)
	}
	if len(opportunities) != 2 {
		t.Fatalf("expected 2 opportunities, got %d", len(opportunities))
	}
}

func TestFindTopOpportunitiesRespectsLimitAndPerLeadCap(t *testing.T) {
	t.Parallel()

	inventory := &stubInventory{}
	for i := 0; i < 8; i++ {
		inventory.leads = append(inventory.leads, &crm.Lead{
			ID:       string(rune('a' + i)),
			Country:  "Spain",
			Location: "Spain",
		})
	}
	for i := 0; i < 9; i++ {
		inventory.properties = append(inventory.properties, &crm.Property{
			ID:          string(rune('p' + i)),
			Country:     "Spain",
			Location:    "Spain",
			IsAvailable: true,
		})
	}

	engine := NewEngine(inventory, zap.NewNop())

	opportunities, err := engine.FindTopOpportunities(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(opportunities) != 3 {
		t.Fatalf("expected 3 opportunities, got %d", len(opportunities))
	}
	for _, o := range opportunities {
		if len(o.Matches) > perLeadMatches {
			t.Fatalf("per-lead cap exceeded: %d", len(o.Matches))
		}
	}
}

func TestFindTopOpportunitiesAbortsOnLeadFetchFailure(t *testing.T) {
	t.Parallel()

	inventory := batchFixture()
	inventory.leadsErr = errors.New("store is down")

	engine := NewEngine(inventory, zap.NewNop())

	if _, err := engine.FindTopOpportunities(context.Background(), 50); err == nil {
		t.Fatalf("expected an error when the lead fetch fails")
	}
}

func TestFindTopOpportunitiesAbortsOnInventoryFetchFailure(t *testing.T) {
	t.Parallel()

	inventory := batchFixture()
	inventory.propertiesErr = errors.New("store is down")

	engine := NewEngine(inventory, zap.NewNop())

	if _, err := engine.FindTopOpportunities(context.Background(), 50); err == nil {
		t.Fatalf("expected an error when the inventory fetch fails")
	}
}
