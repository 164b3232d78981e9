// Package comparison holds the manual multi-plan comparison set: a small,
// durable state machine independent of the chat flow.
package comparison

import "github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"

const (
	// MaxPlans caps the whole selection.
	MaxPlans = 8
	// MaxPlansPerCategory caps one category's share of it.
	MaxPlansPerCategory = 4
)

// Selection is an ordered set of plans chosen for side-by-side comparison.
// Invariants: size ≤ MaxPlans; per-category count ≤ MaxPlansPerCategory; all
// plans share one category while the selection is non-empty (category lock,
// released when the selection empties).
type Selection struct {
	plans []domain.Plan
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Add appends a plan at the end of the selection. It refuses — returning
// false, not an error — when the selection is full, the plan's category
// breaks the lock, that category is full, or the plan is already selected.
func (s *Selection) Add(plan domain.Plan) bool {
	if len(s.plans) >= MaxPlans {
		return false
	}
	if len(s.plans) > 0 && s.plans[0].Category != plan.Category {
		return false
	}
	if s.countByCategory(plan.Category) >= MaxPlansPerCategory {
		return false
	}
	if s.Contains(plan.ID) {
		return false
	}
	s.plans = append(s.plans, plan)
	return true
}

// Remove drops a plan by id; no-op when absent. Removing the last plan
// releases the category lock.
func (s *Selection) Remove(id domain.PlanID) {
	for i, p := range s.plans {
		if p.ID == id {
			s.plans = append(s.plans[:i], s.plans[i+1:]...)
			return
		}
	}
}

// Clear empties the selection unconditionally.
func (s *Selection) Clear() {
	s.plans = nil
}

// ClearCategory removes every plan of one category.
func (s *Selection) ClearCategory(category domain.Category) {
	kept := s.plans[:0]
	for _, p := range s.plans {
		if p.Category != category {
			kept = append(kept, p)
		}
	}
	s.plans = kept
}

// Plans returns the selection in selection order.
func (s *Selection) Plans() []domain.Plan {
	out := make([]domain.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *Selection) Contains(id domain.PlanID) bool {
	for _, p := range s.plans {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Selection) CanAddMore() bool {
	return len(s.plans) < MaxPlans
}

// CanAddToCategory reports whether one more plan of the category would be
// accepted, considering the lock and both capacities.
func (s *Selection) CanAddToCategory(category domain.Category) bool {
	if !s.CanAddMore() {
		return false
	}
	if len(s.plans) > 0 && s.plans[0].Category != category {
		return false
	}
	return s.countByCategory(category) < MaxPlansPerCategory
}

func (s *Selection) PlansByCategory(category domain.Category) []domain.Plan {
	var out []domain.Plan
	for _, p := range s.plans {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories present, in order of first
// appearance.
func (s *Selection) Categories() []domain.Category {
	seen := make(map[domain.Category]bool)
	var out []domain.Category
	for _, p := range s.plans {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Ready reports whether the selection is big enough to compare: two plans is
// the minimum meaningful comparison.
func (s *Selection) Ready() bool {
	return len(s.plans) >= 2
}

func (s *Selection) Len() int {
	return len(s.plans)
}

func (s *Selection) countByCategory(category domain.Category) int {
	n := 0
	for _, p := range s.plans {
		if p.Category == category {
			n++
		}
	}
	return n
}
