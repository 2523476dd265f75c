package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"credit-arcade/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(identity string) (string, *TokenClaims, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Identity  string
	TokenID   string
	ExpiresAt time.Time
}

// --- Service Ports (Business Logic) ---

// MinesService is the Mines game engine. Callers pass an already verified identity.
type MinesService interface {
	Start(ctx context.Context, identity, bet string, mineCount int) (*StartResult, error)
	Reveal(ctx context.Context, identity string, tile int) (*RevealResult, error)
	Cashout(ctx context.Context, identity string) (*CashoutResult, error)
	Reset(ctx context.Context, identity string) error
	Current(ctx context.Context, identity string) (*domain.MinesGame, error)
}

// StartResult is returned by a successful Start.
type StartResult struct {
	Game    *domain.MinesGame
	Balance decimal.Decimal
}

// RevealResult is returned by a successful Reveal.
type RevealResult struct {
	Result    domain.RevealResult
	SafePicks int
	Game      *domain.MinesGame
}

// CashoutResult is returned by a successful Cashout.
type CashoutResult struct {
	SafePicks int
	Payout    decimal.Decimal
	Balance   decimal.Decimal
	Game      *domain.MinesGame
}

// AuthService exchanges Discord login codes for session tokens.
type AuthService interface {
	Login(ctx context.Context, identity, code string) (string, time.Time, error) // token, expiry, error
	Logout(ctx context.Context, claims *TokenClaims) error
}

// AccountService exposes the dashboard views of an identity's credits.
type AccountService interface {
	GetBalance(ctx context.Context, identity string) (decimal.Decimal, error)
	ListLedger(ctx context.Context, identity string, limit int) ([]domain.LedgerEntry, error)
}

// AuditService records audited actions asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
