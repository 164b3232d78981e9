package memory

import (
	"context"
	"sync"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

// SessionStore is an in-memory snapshot store for development and tests.
type SessionStore struct {
	mu        sync.RWMutex
	snapshots map[domain.SessionID]*domain.SessionSnapshot
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		snapshots: make(map[domain.SessionID]*domain.SessionSnapshot),
	}
}

func (s *SessionStore) SaveSession(_ context.Context, snap *domain.SessionSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snap.ID] = snap
	return nil
}

func (s *SessionStore) LoadSession(_ context.Context, id domain.SessionID) (*domain.SessionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return snap, nil
}

func (s *SessionStore) DeleteSession(_ context.Context, id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, id)
	return nil
}
