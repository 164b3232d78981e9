package comparison

import (
	"context"
	"sync"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/app/recommend"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/observability"
)

// SnapshotVersion is the persisted schema version. Snapshots carrying an
// older version are discarded on load rather than half-decoded.
const SnapshotVersion = 2

// Service manages one Selection per owner and keeps it durable. The live
// selection is authoritative; persistence is fire-and-forget (a store failure
// is logged, never surfaced, and never reverts the in-memory change).
type Service struct {
	mu         sync.Mutex
	selections map[domain.UserID]*Selection
	store      domain.SelectionStore
}

func NewService(store domain.SelectionStore) *Service {
	return &Service{
		selections: make(map[domain.UserID]*Selection),
		store:      store,
	}
}

// selection returns the live selection for an owner, loading the persisted
// snapshot the first time the owner shows up.
func (s *Service) selection(ctx context.Context, owner domain.UserID) *Selection {
	if sel, ok := s.selections[owner]; ok {
		return sel
	}

	sel := NewSelection()
	if s.store != nil {
		snap, err := s.store.LoadSelection(ctx, owner)
		switch {
		case err != nil:
			observability.LoggerFromContext(ctx).Warn("selection load failed, starting empty",
				"owner", owner, "error", err)
		case snap != nil && snap.Version == SnapshotVersion:
			for _, p := range snap.Plans {
				sel.Add(p)
			}
		case snap != nil:
			observability.LoggerFromContext(ctx).Info("discarding stale selection snapshot",
				"owner", owner, "version", snap.Version)
		}
	}
	s.selections[owner] = sel
	return sel
}

func (s *Service) persist(ctx context.Context, owner domain.UserID, sel *Selection) {
	if s.store == nil {
		return
	}
	snap := &domain.SelectionSnapshot{Version: SnapshotVersion, Plans: sel.Plans()}
	if err := s.store.SaveSelection(ctx, owner, snap); err != nil {
		observability.LoggerFromContext(ctx).Error("selection persist failed",
			"owner", owner, "error", err)
	}
}

// AddPlan tries to add a plan to the owner's selection; false means one of
// the capacity/lock invariants refused it.
func (s *Service) AddPlan(ctx context.Context, owner domain.UserID, plan domain.Plan) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan.Normalize()
	sel := s.selection(ctx, owner)
	if !sel.Add(plan) {
		return false
	}
	s.persist(ctx, owner, sel)
	return true
}

func (s *Service) RemovePlan(ctx context.Context, owner domain.UserID, id domain.PlanID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(ctx, owner)
	sel.Remove(id)
	s.persist(ctx, owner, sel)
}

func (s *Service) ClearPlans(ctx context.Context, owner domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(ctx, owner)
	sel.Clear()
	s.persist(ctx, owner, sel)
}

func (s *Service) ClearCategory(ctx context.Context, owner domain.UserID, category domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(ctx, owner)
	sel.ClearCategory(category)
	s.persist(ctx, owner, sel)
}

// View is a read-only snapshot of an owner's selection for the transport
// layer.
type View struct {
	Plans      []domain.Plan               `json:"plans"`
	Categories []domain.Category           `json:"categories"`
	CanAddMore bool                        `json:"canAddMore"`
	Ready      bool                        `json:"comparisonReady"`
	Summary    recommend.ComparisonSummary `json:"summary"`
}

func (s *Service) ViewSelection(ctx context.Context, owner domain.UserID) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.selection(ctx, owner)
	plans := sel.Plans()
	return View{
		Plans:      plans,
		Categories: sel.Categories(),
		CanAddMore: sel.CanAddMore(),
		Ready:      sel.Ready(),
		Summary:    recommend.Summarize(plans),
	}
}

func (s *Service) IsPlanSelected(ctx context.Context, owner domain.UserID, id domain.PlanID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection(ctx, owner).Contains(id)
}

func (s *Service) CanAddPlanToCategory(ctx context.Context, owner domain.UserID, category domain.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection(ctx, owner).CanAddToCategory(category)
}

func (s *Service) SelectedPlansByCategory(ctx context.Context, owner domain.UserID, category domain.Category) []domain.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection(ctx, owner).PlansByCategory(category)
}
