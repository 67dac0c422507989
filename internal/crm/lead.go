package crm

// Lead is the canonical shape of a prospective buyer record. All the
// loosely-typed upstream variants (singular vs. plural fields, numbers as
// strings) are folded into this shape once, by the ingest package. Budget
// bounds stay free-text on purpose: agents type things like "1.5M EUR" or
// "950 000", parsing them is the matching engine's job.
type Lead struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Pipeline string `json:"pipeline,omitempty"`
	Stage    string `json:"stage,omitempty"`

	BudgetMin      string   `json:"budget_min,omitempty"`
	BudgetMax      string   `json:"budget_max,omitempty"`
	BudgetCurrency string   `json:"budget_currency,omitempty"`
	Location       string   `json:"location,omitempty"`
	Country        string   `json:"country,omitempty"`
	PropertyTypes  []string `json:"property_types,omitempty"`
	Bedrooms       []int    `json:"bedrooms,omitempty"`
	Views          []string `json:"views,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
}

type Leads struct {
	Items []*Lead
}

func (l *Leads) Len() int {
	return len(l.Items)
}

func (l *Leads) FindByID(id string) *Lead {
	for _, lead := range l.Items {
		if lead.ID == id {
			return lead
		}
	}
	return nil
}

// Active returns the leads still in play: buyers pipeline, stage before
// won/lost. The store already filters this way; the helper exists for
// callers holding an unfiltered list.
func (l *Leads) Active() *Leads {
	out := &Leads{}
	for _, lead := range l.Items {
		if lead.Pipeline == PipelineOwners {
			continue
		}
		if !IsActiveStage(lead.Stage) {
			continue
		}
		out.Items = append(out.Items, lead)
	}
	return out
}
