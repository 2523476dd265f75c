package memory

import (
	"context"
	"sync"
	"time"
)

// TokenRevocationStore implements ports.TokenRevocationStore.
type TokenRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time // token ID -> expiry
	now     func() time.Time
}

// NewTokenRevocationStore creates an empty deny list.
func NewTokenRevocationStore() *TokenRevocationStore {
	return &TokenRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *TokenRevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (s *TokenRevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	return ok && exp.After(s.now()), nil
}
