// Package ingest folds the loosely-typed records coming out of the upstream
// CRM export into the canonical crm shapes. Field aliases (property_type vs
// propertyType, budget vs budget_max), numbers-as-strings and single values
// where lists are expected are all resolved here, once, so the matching
// engine never has to look at raw records.
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"

	"github.com/costaverde/lead-matcher/internal/crm"
	"github.com/costaverde/lead-matcher/internal/matching"
)

// ErrMissingID marks a record that cannot be identified and must be skipped.
var ErrMissingID = errors.New("record has no id")

// rawLead mirrors the upstream export field names, including the legacy
// aliases. Weak decoding turns "4" into 4 and a bare value into a one
// element slice where needed.
type rawLead struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Phone    string `mapstructure:"phone"`
	Pipeline string `mapstructure:"pipeline"`
	Stage    string `mapstructure:"stage"`

	Budget         string `mapstructure:"budget"`
	BudgetMin      string `mapstructure:"budget_min"`
	BudgetMax      string `mapstructure:"budget_max"`
	BudgetCurrency string `mapstructure:"budget_currency"`

	Location string `mapstructure:"location"`
	Country  string `mapstructure:"country"`

	PropertyType  string   `mapstructure:"property_type"`
	PropertyTypes []string `mapstructure:"property_types"`

	Bedroom  int   `mapstructure:"bedroom"`
	Bedrooms []int `mapstructure:"bedrooms"`

	Views     []string `mapstructure:"views"`
	Amenities []string `mapstructure:"amenities"`
}

type rawProperty struct {
	ID           string   `mapstructure:"id"`
	Title        string   `mapstructure:"title"`
	Price        any      `mapstructure:"price"`
	Location     string   `mapstructure:"location"`
	Country      string   `mapstructure:"country"`
	PropertyType string   `mapstructure:"property_type"`
	Bedrooms     int      `mapstructure:"bedrooms"`
	Amenities    []string `mapstructure:"amenities"`
	Features     []string `mapstructure:"features"`
	URL          string   `mapstructure:"url"`
	MainImage    string   `mapstructure:"main_image"`
	IsAvailable  *bool    `mapstructure:"is_available"`
}

func decode(raw map[string]any, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return normalizeKey(mapKey) == normalizeKey(fieldName)
		},
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// normalizeKey matches camelCase export keys against snake_case tags:
// "propertyType", "property_type" and "PropertyType" are all the same key.
func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

// NormalizeLead turns one raw export record into a canonical lead. Records
// without an id get a generated one when assignID is set, otherwise they are
// rejected with ErrMissingID.
func NormalizeLead(raw map[string]any, assignID bool) (*crm.Lead, error) {
	var r rawLead
	if err := decode(raw, &r); err != nil {
		return nil, fmt.Errorf("decode lead: %w", err)
	}

	if r.ID == "" {
		if !assignID {
			return nil, ErrMissingID
		}
		r.ID = uuid.NewString()
	}

	lead := &crm.Lead{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Pipeline:       defaultString(r.Pipeline, crm.PipelineBuyers),
		Stage:          defaultString(r.Stage, crm.StageNew),
		BudgetMin:      r.BudgetMin,
		BudgetMax:      r.BudgetMax,
		BudgetCurrency: r.BudgetCurrency,
		Location:       r.Location,
		Country:        r.Country,
		Views:          cleanList(r.Views),
		Amenities:      cleanList(r.Amenities),
	}

	// The legacy export writes a single "budget" field meaning the upper
	// bound. It only applies when the explicit bound is absent.
	if lead.BudgetMax == "" {
		lead.BudgetMax = r.Budget
	}

	// Multi-valued field wins over the legacy singular one.
	lead.PropertyTypes = cleanList(r.PropertyTypes)
	if len(lead.PropertyTypes) == 0 && strings.TrimSpace(r.PropertyType) != "" {
		lead.PropertyTypes = []string{strings.TrimSpace(r.PropertyType)}
	}

	lead.Bedrooms = r.Bedrooms
	if len(lead.Bedrooms) == 0 && r.Bedroom > 0 {
		lead.Bedrooms = []int{r.Bedroom}
	}

	return lead, nil
}

// NormalizeProperty turns one raw listing record into a canonical property.
// A listing with no availability flag counts as available; amenities and the
// legacy "features" list are merged.
func NormalizeProperty(raw map[string]any, assignID bool) (*crm.Property, error) {
	var r rawProperty
	if err := decode(raw, &r); err != nil {
		return nil, fmt.Errorf("decode property: %w", err)
	}

	if r.ID == "" {
		if !assignID {
			return nil, ErrMissingID
		}
		r.ID = uuid.NewString()
	}

	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return &crm.Property{
		ID:           r.ID,
		Title:        r.Title,
		Price:        parsePrice(r.Price),
		Location:     r.Location,
		Country:      r.Country,
		PropertyType: r.PropertyType,
		Bedrooms:     r.Bedrooms,
		Amenities:    append(cleanList(r.Amenities), cleanList(r.Features)...),
		URL:          r.URL,
		MainImage:    r.MainImage,
		IsAvailable:  available,
	}, nil
}

// parsePrice accepts the asking price as a number or a free-text string.
// Anything unparseable comes out as zero, which the scorer treats as "price
// unknown" rather than an error.
func parsePrice(v any) float64 {
	switch p := v.(type) {
	case nil:
		return 0
	case float64:
		return p
	case float32:
		return float64(p)
	case int:
		return float64(p)
	case int64:
		return float64(p)
	case string:
		parsed, ok := matching.ParseBudget(p)
		if !ok {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func cleanList(in []string) []string {
	var out []string
	for _, v := range in {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
