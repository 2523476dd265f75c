package ports

//go:generate mockgen -source=stores.go -destination=mocks/mock_stores.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"credit-arcade/internal/core/domain"
)

// ErrLockHeld is returned by IdentityLocker.Lock when another request holds the lock.
var ErrLockHeld = errors.New("identity lock held")

// GameStore holds at most one Mines game per identity.
type GameStore interface {
	// Get returns nil, nil when the identity has no game.
	Get(ctx context.Context, identity string) (*domain.MinesGame, error)
	Save(ctx context.Context, game *domain.MinesGame) error
	Delete(ctx context.Context, identity string) error
}

// IdentityLocker serializes mutating operations per identity.
type IdentityLocker interface {
	// Lock acquires the identity's lock without waiting. The returned func releases it.
	Lock(ctx context.Context, identity string) (func(), error)
}

// GridGenerator places bombs on a board.
type GridGenerator interface {
	// GenerateBombs returns mineCount distinct sorted tiles in [0, gridSize).
	GenerateBombs(gridSize, mineCount int) ([]int, error)
}

// TokenRevocationStore is the deny list consulted for logged-out tokens.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp when the window resets
}
