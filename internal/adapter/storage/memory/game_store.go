package memory

import (
	"context"
	"sync"

	"credit-arcade/internal/core/domain"
)

// GameStore implements ports.GameStore. Stored games are cloned on the way
// in and out so callers never share state with the store.
type GameStore struct {
	mu    sync.RWMutex
	games map[string]*domain.MinesGame
}

// NewGameStore creates an empty in-memory game store.
func NewGameStore() *GameStore {
	return &GameStore{games: make(map[string]*domain.MinesGame)}
}

func (s *GameStore) Get(_ context.Context, identity string) (*domain.MinesGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[identity]
	if !ok {
		return nil, nil
	}
	return game.Clone(), nil
}

func (s *GameStore) Save(_ context.Context, game *domain.MinesGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.Identity] = game.Clone()
	return nil
}

func (s *GameStore) Delete(_ context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, identity)
	return nil
}
