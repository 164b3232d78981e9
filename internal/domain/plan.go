package domain

// Plan is one normalized insurance offering. Plans come from the catalog or
// from the reply generator; the core never constructs them beyond Normalize.
type Plan struct {
	ID       PlanID   `json:"id"`
	Name     string   `json:"name"`
	Provider string   `json:"provider"`
	Category Category `json:"category"`

	// Price is the display string ("Desde $75.000 COP/mes"); BasePrice is the
	// numeric price when the source had one. Either may be empty/zero.
	Price     string  `json:"price,omitempty"`
	BasePrice float64 `json:"basePrice,omitempty"`

	Features []string `json:"features,omitempty"`
	Benefits []string `json:"benefits,omitempty"`

	Rating  string `json:"rating,omitempty"`
	Country string `json:"country,omitempty"`

	ExternalLink string `json:"externalLink,omitempty"`
	IsExternal   bool   `json:"isExternal,omitempty"`
}

// Normalize coalesces the features/benefits split some sources use. After
// Normalize, Features is authoritative and Benefits mirrors it.
func (p *Plan) Normalize() {
	if len(p.Features) == 0 && len(p.Benefits) > 0 {
		p.Features = p.Benefits
	}
	if len(p.Benefits) == 0 && len(p.Features) > 0 {
		p.Benefits = p.Features
	}
}

// NormalizePlans normalizes a slice in place and returns it.
func NormalizePlans(plans []Plan) []Plan {
	for i := range plans {
		plans[i].Normalize()
	}
	return plans
}
