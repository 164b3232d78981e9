package memory

import (
	"context"
	"sync"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// SummaryStore keeps document summaries in memory, newest last.
type SummaryStore struct {
	mu        sync.RWMutex
	summaries map[domain.SummaryID]*domain.DocumentSummary
	byUserID  map[domain.UserID][]domain.SummaryID
}

func NewSummaryStore() *SummaryStore {
	return &SummaryStore{
		summaries: make(map[domain.SummaryID]*domain.DocumentSummary),
		byUserID:  make(map[domain.UserID][]domain.SummaryID),
	}
}

func (s *SummaryStore) SaveSummary(_ context.Context, summary *domain.DocumentSummary) error {
	if summary == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.summaries[summary.ID]; !exists {
		s.byUserID[summary.UserID] = append(s.byUserID[summary.UserID], summary.ID)
	}
	s.summaries[summary.ID] = summary
	return nil
}

// ListSummariesByUser returns the last `limit` summaries for a user. If
// limit <= 0, returns all.
func (s *SummaryStore) ListSummariesByUser(_ context.Context, userID domain.UserID, limit int) ([]*domain.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	if len(ids) == 0 {
		return []*domain.DocumentSummary{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	selected := ids[len(ids)-limit:]

	out := make([]*domain.DocumentSummary, 0, len(selected))
	for _, id := range selected {
		if sum, ok := s.summaries[id]; ok {
			out = append(out, sum)
		}
	}
	return out, nil
}

func (s *SummaryStore) DeleteSummary(_ context.Context, id domain.SummaryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum, ok := s.summaries[id]
	if !ok {
		return domain.ErrSummaryNotFound
	}
	delete(s.summaries, id)

	ids := s.byUserID[sum.UserID]
	for i, sid := range ids {
		if sid == id {
			s.byUserID[sum.UserID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
