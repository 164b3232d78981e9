package recommend

import (
	"math"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// PriceRange spans the positive parsed prices of a plan set. Plans whose
// price cannot be parsed (or is zero) are excluded from the range.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ComparisonSummary condenses a plan list into its extremes.
type ComparisonSummary struct {
	Cheapest        *domain.Plan `json:"cheapest"`
	MostFeatures    *domain.Plan `json:"mostFeatures"`
	HighestRated    *domain.Plan `json:"highestRated"`
	PriceRange      PriceRange   `json:"priceRange"`
	AverageFeatures int          `json:"averageFeatures"`
}

// Summarize computes the comparison extremes for a plan list. Ties keep the
// earlier plan. An empty input yields all-nil extremes and a zero range.
func Summarize(plans []domain.Plan) ComparisonSummary {
	if len(plans) == 0 {
		return ComparisonSummary{}
	}

	var (
		cheapest      = -1
		cheapestPrice float64
		mostFeatures  = 0
		highestRated  = 0
		featureTotal  int
		rng           PriceRange
		havePrice     bool
	)

	for i, p := range plans {
		price := planPrice(p)
		if price > 0 {
			if cheapest == -1 || price < cheapestPrice {
				cheapest = i
				cheapestPrice = price
			}
			if !havePrice || price < rng.Min {
				rng.Min = price
			}
			if price > rng.Max {
				rng.Max = price
			}
			havePrice = true
		}
		if len(p.Features) > len(plans[mostFeatures].Features) {
			mostFeatures = i
		}
		if planRating(p) > planRating(plans[highestRated]) {
			highestRated = i
		}
		featureTotal += len(p.Features)
	}

	// With no parseable price anywhere, fall back to the first plan so the
	// summary still names something.
	if cheapest == -1 {
		cheapest = 0
	}

	return ComparisonSummary{
		Cheapest:        &plans[cheapest],
		MostFeatures:    &plans[mostFeatures],
		HighestRated:    &plans[highestRated],
		PriceRange:      rng,
		AverageFeatures: int(math.Round(float64(featureTotal) / float64(len(plans)))),
	}
}
