package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"credit-arcade/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// GameStore implements ports.GameStore using one JSON value per identity.
type GameStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewGameStore creates a Redis-backed game store. Records idle for longer
// than ttl expire; a zero ttl keeps them until reset.
func NewGameStore(client *goredis.Client, ttl time.Duration) *GameStore {
	return &GameStore{
		client: client,
		prefix: "mines:game:",
		ttl:    ttl,
	}
}

// Get returns nil, nil if the identity has no game.
func (s *GameStore) Get(ctx context.Context, identity string) (*domain.MinesGame, error) {
	val, err := s.client.Get(ctx, s.prefix+identity).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis game get: %w", err)
	}

	var game domain.MinesGame
	if err := json.Unmarshal(val, &game); err != nil {
		return nil, fmt.Errorf("decode game: %w", err)
	}
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("stored game for %s: %w", identity, err)
	}
	return &game, nil
}

// Save overwrites the identity's game and refreshes its TTL.
func (s *GameStore) Save(ctx context.Context, game *domain.MinesGame) error {
	val, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+game.Identity, val, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis game set: %w", err)
	}
	return nil
}

// Delete removes the identity's game. Deleting a missing game is not an error.
func (s *GameStore) Delete(ctx context.Context, identity string) error {
	if err := s.client.Del(ctx, s.prefix+identity).Err(); err != nil {
		return fmt.Errorf("redis game del: %w", err)
	}
	return nil
}
