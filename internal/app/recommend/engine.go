// Package recommend ranks candidate insurance plans for a free-text query.
// Everything here is a pure function over the caller-supplied plan list: no
// state, no I/O, and no error paths — malformed plan fields degrade to
// neutral defaults instead of aborting the batch.
package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// SortBy selects the ordering applied before dedup/truncation.
type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByPrice     SortBy = "price"
	SortByRating    SortBy = "rating"
	SortByFeatures  SortBy = "features"
)

// Query cues are hard-coded Spanish-first with English synonyms; a locale
// pack can override the package vars.
var (
	cheapCues   = []string{"barato", "económico", "economico", "bajo costo", "cheap", "low cost"}
	premiumCues = []string{"premium", "completo", "mejor cobertura", "best coverage", "full"}
)

const premiumPriceFloor = 100000

// Score computes the heuristic relevance of a plan for a query. Ties are
// possible and acceptable.
func Score(p domain.Plan, query string, category domain.Category) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	var score float64

	if category != "" && p.Category == category {
		score += 50
	}
	if q != "" {
		if strings.Contains(strings.ToLower(p.Name), q) {
			score += 20
		}
		if strings.Contains(strings.ToLower(p.Provider), q) {
			score += 15
		}
		for _, f := range p.Features {
			if strings.Contains(strings.ToLower(f), q) {
				score += 5
			}
		}
	}

	price := planPrice(p)
	if containsAny(q, cheapCues) {
		score += math.Max(0, 20-price/10000)
	}
	if containsAny(q, premiumCues) && price > premiumPriceFloor {
		score += 15
	}

	score += 2 * planRating(p)
	return score
}

func containsAny(s string, cues []string) bool {
	for _, c := range cues {
		if strings.Contains(s, c) {
			return true
		}
	}
	return false
}

// SortPlans orders a copy of plans by the given mode. Relevance needs the
// query/category that produced the scores; the other modes ignore them.
// Sorting is stable so equal keys keep their input order.
func SortPlans(plans []domain.Plan, by SortBy, query string, category domain.Category) []domain.Plan {
	out := make([]domain.Plan, len(plans))
	copy(out, plans)

	switch by {
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return planPrice(out[i]) < planPrice(out[j])
		})
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return planRating(out[i]) > planRating(out[j])
		})
	case SortByFeatures:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Features) > len(out[j].Features)
		})
	default: // relevance
		scores := make(map[domain.PlanID]float64, len(out))
		for _, p := range out {
			scores[p.ID] = Score(p, query, category)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return scores[out[i].ID] > scores[out[j].ID]
		})
	}
	return out
}

// UniqueByProvider walks the sorted list in order, keeps the first plan seen
// per provider, and stops at max distinct providers. A higher-scored second
// plan from an already-represented provider is dropped on purpose: the output
// should span companies, not flood from one.
func UniqueByProvider(sorted []domain.Plan, max int) []domain.Plan {
	if max <= 0 {
		max = DefaultMaxPlans
	}
	seen := make(map[string]bool, max)
	out := make([]domain.Plan, 0, max)
	for _, p := range sorted {
		if seen[p.Provider] {
			continue
		}
		seen[p.Provider] = true
		out = append(out, p)
		if len(out) >= max {
			break
		}
	}
	return out
}

// DefaultMaxPlans bounds a recommendation batch.
const DefaultMaxPlans = 4

// Options tune one RecommendPlans call.
type Options struct {
	MaxPlans        int
	UniqueProviders bool
	SortBy          SortBy
	Category        domain.Category
}

// DefaultOptions returns the standard recommendation settings.
func DefaultOptions() Options {
	return Options{
		MaxPlans:        DefaultMaxPlans,
		UniqueProviders: true,
		SortBy:          SortByRelevance,
	}
}

// RecommendPlans composes scoring, sorting, provider dedup and truncation.
// Deterministic for a fixed input; empty in, empty out.
func RecommendPlans(plans []domain.Plan, query string, opts Options) []domain.Plan {
	if len(plans) == 0 {
		return nil
	}
	if opts.MaxPlans <= 0 {
		opts.MaxPlans = DefaultMaxPlans
	}
	if opts.SortBy == "" {
		opts.SortBy = SortByRelevance
	}

	sorted := SortPlans(plans, opts.SortBy, query, opts.Category)
	if opts.UniqueProviders {
		return UniqueByProvider(sorted, opts.MaxPlans)
	}
	if len(sorted) > opts.MaxPlans {
		sorted = sorted[:opts.MaxPlans]
	}
	return sorted
}
