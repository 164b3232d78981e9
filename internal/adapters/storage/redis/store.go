// Package redisstore persists session snapshots and comparison selections as
// JSON blobs in Redis.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NicolasDuarte04/Briki-Web-App-sub001/internal/domain"
)

const (
	sessionTTL      = 24 * time.Hour
	sessionPrefix   = "briki:session:"
	selectionPrefix = "briki:selection:"
)

type Store struct {
	rdb *redis.Client
}

func NewStore(addr, password string) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Ping verifies the connection at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// ─────────────────────────────────────────────
// domain.SessionStore
// ─────────────────────────────────────────────

func (s *Store) SaveSession(ctx context.Context, snap *domain.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}
	key := sessionPrefix + string(snap.ID)
	if err := s.rdb.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session snapshot: %w", err)
	}
	return nil
}

func (s *Store) LoadSession(ctx context.Context, id domain.SessionID) (*domain.SessionSnapshot, error) {
	data, err := s.rdb.Get(ctx, sessionPrefix+string(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session snapshot: %w", err)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal session snapshot: %w", err)
	}
	return &snap, nil
}

func (s *Store) DeleteSession(ctx context.Context, id domain.SessionID) error {
	if err := s.rdb.Del(ctx, sessionPrefix+string(id)).Err(); err != nil {
		return fmt.Errorf("delete session snapshot: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────
// domain.SelectionStore
// ─────────────────────────────────────────────

// Selections carry no TTL: a comparison set survives until the user clears
// it, including across restarts.
func (s *Store) SaveSelection(ctx context.Context, owner domain.UserID, snap *domain.SelectionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal selection snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, selectionPrefix+string(owner), data, 0).Err(); err != nil {
		return fmt.Errorf("save selection snapshot: %w", err)
	}
	return nil
}

func (s *Store) LoadSelection(ctx context.Context, owner domain.UserID) (*domain.SelectionSnapshot, error) {
	data, err := s.rdb.Get(ctx, selectionPrefix+string(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load selection snapshot: %w", err)
	}

	var snap domain.SelectionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal selection snapshot: %w", err)
	}
	return &snap, nil
}

func (s *Store) DeleteSelection(ctx context.Context, owner domain.UserID) error {
	if err := s.rdb.Del(ctx, selectionPrefix+string(owner)).Err(); err != nil {
		return fmt.Errorf("delete selection snapshot: %w", err)
	}
	return nil
}
