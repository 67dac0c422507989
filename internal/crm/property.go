package crm

// Property is a canonical inventory listing. Price is normalized to a number
// at ingestion; zero or negative means the price could not be parsed and the
// budget criterion is not applicable to this listing.
type Property struct {
	ID           string   `json:"id"`
	Title        string   `json:"title,omitempty"`
	Price        float64  `json:"price,omitempty"`
	Location     string   `json:"location,omitempty"`
	Country      string   `json:"country,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	URL          string   `json:"url,omitempty"`
	MainImage    string   `json:"main_image,omitempty"`
	IsAvailable  bool     `json:"is_available"`
}

// HasPrice reports whether the listing carries a usable asking price.
func (p *Property) HasPrice() bool {
	return p.Price > 0
}

type Properties struct {
	Items []*Property
}

func (p *Properties) Len() int {
	return len(p.Items)
}

func (p *Properties) FindByID(id string) *Property {
	for _, prop := range p.Items {
		if prop.ID == id {
			return prop
		}
	}
	return nil
}

// Available returns only the listings currently offerable. Encounter order
// is preserved.
func (p *Properties) Available() *Properties {
	out := &Properties{}
	for _, prop := range p.Items {
		if prop.IsAvailable {
			out.Items = append(out.Items, prop)
		}
	}
	return out
}
