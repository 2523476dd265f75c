package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenRevocationStore implements ports.TokenRevocationStore. Entries expire
// together with the token they deny.
type TokenRevocationStore struct {
	client *goredis.Client
	prefix string
}

// NewTokenRevocationStore creates a Redis-backed token deny list.
func NewTokenRevocationStore(client *goredis.Client) *TokenRevocationStore {
	return &TokenRevocationStore{
		client: client,
		prefix: "revoked:",
	}
}

// Revoke denies tokenID for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (s *TokenRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.prefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID is on the deny list.
func (s *TokenRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis token lookup: %w", err)
	}
	return n > 0, nil
}
