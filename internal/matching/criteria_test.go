package matching

import (
	"testing"

	"github.com/costaverde/lead-matcher/internal/crm"
)

func TestExtractCriteriaBudget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lead    *crm.Lead
		wantNil bool
		wantMin float64
		wantMax float64
	}{
		{
			name:    "both bounds parse",
			lead:    &crm.Lead{ID: "l1", BudgetMin: "1000000", BudgetMax: "2000000"},
			wantMin: 1000000,
			wantMax: 2000000,
		},
		{
			name:    "only maximum known",
			lead:    &crm.Lead{ID: "l2", BudgetMax: "€750000"},
			wantMin: 0,
			wantMax: 750000,
		},
		{
			name:    "only minimum known gets unbounded max",
			lead:    &crm.Lead{ID: "l3", BudgetMin: "500000"},
			wantMin: 500000,
			wantMax: unboundedBudget,
		},
		{
			name:    "neither parses",
			lead:    &crm.Lead{ID: "l4", BudgetMin: "tbd", BudgetMax: "call me"},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := ExtractCriteria(tt.lead)
			if tt.wantNil {
				if c.Budget != nil {
					t.Fatalf("expected no budget, got %+v", c.Budget)
				}
				return
			}
			if c.Budget == nil {
				t.Fatalf("expected a budget range")
			}
			if c.Budget.Min != tt.wantMin || c.Budget.Max != tt.wantMax {
				t.Fatalf("expected [%v, %v], got [%v, %v]", tt.wantMin, tt.wantMax, c.Budget.Min, c.Budget.Max)
			}
		})
	}
}

func TestExtractCriteriaOptionalFields(t *testing.T) {
	t.Parallel()

	lead := &crm.Lead{
		ID:            "l5",
		Location:      "Antibes",
		Country:       "France",
		PropertyTypes: []string{"Villa", "Townhouse"},
		Bedrooms:      []int{3, 4},
		Views:         []string{"Sea"},
		Amenities:     []string{"Pool"},
	}

	c := ExtractCriteria(lead)

	if c.Location != "Antibes" || c.Country != "France" {
		t.Fatalf("location/country not copied: %+v", c)
	}
	if len(c.PropertyTypes) != 2 {
		t.Fatalf("expected 2 property types, got %v", c.PropertyTypes)
	}
	if len(c.Bedrooms) != 2 {
		t.Fatalf("expected 2 bedroom counts, got %v", c.Bedrooms)
	}
	if len(c.Views) != 1 || len(c.Amenities) != 1 {
		t.Fatalf("views/amenities not copied: %+v", c)
	}
}

func TestExtractCriteriaEmptyLead(t *testing.T) {
	t.Parallel()

	c := ExtractCriteria(&crm.Lead{ID: "l6"})

	if c.Budget != nil || c.Location != "" || c.Country != "" {
		t.Fatalf("expected empty criteria, got %+v", c)
	}
	if c.PropertyTypes != nil || c.Bedrooms != nil || c.Views != nil || c.Amenities != nil {
		t.Fatalf("expected absent sets, got %+v", c)
	}
}
