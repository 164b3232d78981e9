package memory

import (
	"context"
	"sync"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// SelectionStore keeps comparison selections in memory.
type SelectionStore struct {
	mu         sync.RWMutex
	selections map[domain.UserID]*domain.SelectionSnapshot
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		selections: make(map[domain.UserID]*domain.SelectionSnapshot),
	}
}

func (s *SelectionStore) SaveSelection(_ context.Context, owner domain.UserID, snap *domain.SelectionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[owner] = snap
	return nil
}

func (s *SelectionStore) LoadSelection(_ context.Context, owner domain.UserID) (*domain.SelectionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.selections[owner]
	if !ok {
		return nil, nil
	}
	return snap, nil
}

func (s *SelectionStore) DeleteSelection(_ context.Context, owner domain.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.selections, owner)
	return nil
}
