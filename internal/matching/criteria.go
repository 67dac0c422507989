package matching

import (
	"math"

	"github.com/costaverde/lead-matcher/internal/crm"
)

// unboundedBudget is the sentinel maximum used when a lead states only a
// minimum budget.
const unboundedBudget = math.MaxFloat64

// BudgetRange is a closed price interval. Min is zero when only a maximum is
// known; Max is the unbounded sentinel when only a minimum is known.
type BudgetRange struct {
	Min      float64
	Max      float64
	Currency string
}

// MatchCriteria is the normalized search preference set derived from a lead.
// Every field is independently optional: a nil/empty field constrains
// nothing, awards nothing and penalizes nothing.
type MatchCriteria struct {
	Budget        *BudgetRange
	Location      string
	Country       string
	PropertyTypes []string
	Bedrooms      []int
	Views         []string
	Amenities     []string
}

// ExtractCriteria derives the normalized criteria from a canonical lead.
// Pure function, no I/O; unparseable budget fields simply leave the budget
// criterion absent.
func ExtractCriteria(lead *crm.Lead) MatchCriteria {
	c := MatchCriteria{
		Location: lead.Location,
		Country:  lead.Country,
	}

	min, minOK := ParseBudget(lead.BudgetMin)
	max, maxOK := ParseBudget(lead.BudgetMax)
	switch {
	case minOK && maxOK:
		c.Budget = &BudgetRange{Min: min, Max: max, Currency: lead.BudgetCurrency}
	case maxOK:
		c.Budget = &BudgetRange{Min: 0, Max: max, Currency: lead.BudgetCurrency}
	case minOK:
		c.Budget = &BudgetRange{Min: min, Max: unboundedBudget, Currency: lead.BudgetCurrency}
	}

	if len(lead.PropertyTypes) > 0 {
		c.PropertyTypes = lead.PropertyTypes
	}
	if len(lead.Bedrooms) > 0 {
		c.Bedrooms = lead.Bedrooms
	}
	if len(lead.Views) > 0 {
		c.Views = lead.Views
	}
	if len(lead.Amenities) > 0 {
		c.Amenities = lead.Amenities
	}

	return c
}
